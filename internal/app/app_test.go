package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modelcache/internal/adapters/config"
	"go.trai.ch/modelcache/internal/adapters/entries"
	"go.trai.ch/modelcache/internal/adapters/fingerprint"
	"go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/adapters/telemetry"
	"go.trai.ch/modelcache/internal/app"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports/mocks"
	"go.trai.ch/modelcache/internal/engine/configurator"
	"go.trai.ch/modelcache/internal/engine/session"
	"go.uber.org/mock/gomock"
)

const workfile = `
version: "1"
cache:
  metrics_file: .modelcache/metrics.prom
projects:
  ":lib": lib
  ":app":
    dir: app
    dependsOn: [":lib"]
`

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

// recorder collects the messages logged through a mock logger.
type recorder struct {
	mu    sync.Mutex
	infos []string
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.infos) == 0 {
		return ""
	}
	return r.infos[len(r.infos)-1]
}

func newApp(t *testing.T, root string) (*app.App, *recorder) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	rec := &recorder{}
	mockLogger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.infos = append(rec.infos, msg)
	}).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	hasher := fs.NewHasher()
	loader := config.NewLoader(mockLogger, hasher)
	entryStore := entries.NewStore()
	a := app.New(
		loader,
		session.NewManager(entryStore, fingerprint.NewStore(), hasher, mockLogger, telemetry.NewNoOpTracer()),
		configurator.New(loader, fs.NewResolver(fs.NewWalker()), hasher),
		entryStore,
		mockLogger,
	)
	return a.WithDir(root), rec
}

func newWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	createFile(t, root, domain.WorkFileName, workfile)
	createFile(t, root, "lib/"+domain.ProjectFileName, "inputs: [src]\ntasks:\n  build:\n    cmd: [make]\n")
	createFile(t, root, "lib/src/lib.go", "package lib")
	createFile(t, root, "app/"+domain.ProjectFileName, "tasks:\n  build:\n    cmd: [make]\n")
	return root
}

func TestApp_Configure(t *testing.T) {
	t.Parallel()
	root := newWorkspace(t)
	a, rec := newApp(t, root)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, a.Configure(ctx, &out, app.ConfigureOptions{JSON: true}))
	assert.Equal(t, "configured 2 projects: 0 models reused, 3 computed, 0 invalidated", rec.last())

	var result configurator.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Len(t, result.Projects, 2)
	assert.Equal(t, ":app", result.Projects[0].Path)
	assert.Equal(t, 2, result.Projects[0].TaskCount)

	_, err := os.Stat(filepath.Join(root, domain.CacheDirName, "metrics.prom"))
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, a.Configure(ctx, &out, app.ConfigureOptions{}))
	assert.Equal(t, "configured 2 projects: 3 models reused, 0 computed, 0 invalidated", rec.last())
	assert.Empty(t, out.String())

	require.NoError(t, a.Configure(ctx, &out, app.ConfigureOptions{NoCache: true}))
	assert.Equal(t, "configured 2 projects: 0 models reused, 3 computed, 0 invalidated", rec.last())
}

func TestApp_Configure_Invalidates(t *testing.T) {
	t.Parallel()
	root := newWorkspace(t)
	a, rec := newApp(t, root)
	ctx := context.Background()

	require.NoError(t, a.Configure(ctx, &bytes.Buffer{}, app.ConfigureOptions{}))
	createFile(t, root, "lib/src/lib.go", "package lib // v2")

	require.NoError(t, a.Configure(ctx, &bytes.Buffer{}, app.ConfigureOptions{}))
	assert.Equal(t, "configured 2 projects: 1 models reused, 2 computed, 2 invalidated", rec.last())
}

func TestApp_Configure_NoWorkfile(t *testing.T) {
	t.Parallel()
	a, _ := newApp(t, t.TempDir())

	err := a.Configure(context.Background(), &bytes.Buffer{}, app.ConfigureOptions{})
	assert.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}

func TestApp_Configure_Failure(t *testing.T) {
	t.Parallel()
	root := newWorkspace(t)
	createFile(t, root, "lib/"+domain.ProjectFileName, "inputs: [missing]\n")
	a, _ := newApp(t, root)

	err := a.Configure(context.Background(), &bytes.Buffer{}, app.ConfigureOptions{})
	assert.ErrorContains(t, err, domain.ErrConfigureFailed.Error())
}

func TestApp_Clean(t *testing.T) {
	t.Parallel()
	root := newWorkspace(t)
	a, rec := newApp(t, root)
	ctx := context.Background()

	require.NoError(t, a.Configure(ctx, &bytes.Buffer{}, app.ConfigureOptions{}))
	require.DirExists(t, filepath.Join(root, domain.CacheDirName))

	require.NoError(t, a.Clean(ctx))
	assert.NoDirExists(t, filepath.Join(root, domain.CacheDirName))
	assert.Equal(t, "removed model cache", rec.last())
}

// seedEntries stores a fixed entry snapshot in the cache dir of root.
func seedEntries(t *testing.T, root string) {
	t.Helper()
	details := domain.EntryDetails{
		Version:   domain.EntryDetailsVersion,
		SessionID: "session-1",
		BuildHash: "hash",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Models: []domain.ModelEntry{
			{Name: "workspace", Address: domain.BlockAddress{Offset: 8, Length: 120}},
			{Project: domain.NewPath(":app"), Name: "project", Address: domain.BlockAddress{Offset: 128, Length: 300}},
			{Project: domain.NewPath(":lib"), Name: "project", Address: domain.BlockAddress{Offset: 428, Length: 250}},
		},
	}
	require.NoError(t, entries.NewStore().Save(filepath.Join(root, domain.CacheDirName), details))
}

func TestApp_Inspect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		opts       app.InspectOptions
		goldenName string
	}{
		{name: "table", opts: app.InspectOptions{}, goldenName: "inspect_table"},
		{name: "json", opts: app.InspectOptions{JSON: true}, goldenName: "inspect_json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := newWorkspace(t)
			seedEntries(t, root)
			a, _ := newApp(t, root)

			var buf bytes.Buffer
			require.NoError(t, a.Inspect(context.Background(), &buf, tt.opts))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestApp_Inspect_Empty(t *testing.T) {
	t.Parallel()
	a, _ := newApp(t, newWorkspace(t))

	var buf bytes.Buffer
	require.NoError(t, a.Inspect(context.Background(), &buf, app.InspectOptions{}))
	assert.Equal(t, "no cached models", strings.TrimSpace(buf.String()))
}
