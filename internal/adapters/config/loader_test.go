package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modelcache/internal/adapters/config"
	"go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/modelcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger, fs.NewHasher()), mockLogger
}

func TestLoader_LoadWorkfile(t *testing.T) {
	t.Parallel()
	loader, _ := newLoader(t)
	root := t.TempDir()

	workfile := `
version: "1"
cache:
  dir: .cache/models
  codec: json
  compression: false
  metrics_file: metrics.prom
projects:
  ":lib": libs/lib
  ":app":
    dir: app
    dependsOn: [":lib"]
`
	createFile(t, root, domain.WorkFileName, workfile)
	createFile(t, root, "libs/lib/"+domain.ProjectFileName, "")
	createFile(t, root, "app/"+domain.ProjectFileName, "")

	wf, err := loader.LoadWorkfile(root)
	require.NoError(t, err)

	assert.Equal(t, root, wf.Root)
	assert.Equal(t, fs.NewHasher().HashString(workfile), wf.Hash)
	assert.Equal(t, ports.Settings{
		CacheDir:    ".cache/models",
		Codec:       "json",
		Compression: false,
		MetricsFile: "metrics.prom",
	}, wf.Settings)
	assert.Equal(t, map[domain.Path]ports.ProjectDecl{
		domain.NewPath(":lib"): {Dir: filepath.Join("libs", "lib"), DependsOn: []domain.Path{}},
		domain.NewPath(":app"): {Dir: "app", DependsOn: []domain.Path{domain.NewPath(":lib")}},
	}, wf.Projects)
}

func TestLoader_LoadWorkfile_Defaults(t *testing.T) {
	t.Parallel()
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.WorkFileName, "version: \"1\"\n")

	wf, err := loader.LoadWorkfile(root)
	require.NoError(t, err)
	assert.True(t, wf.Settings.Compression)
	assert.Empty(t, wf.Settings.Codec)
	assert.Empty(t, wf.Projects)
}

func TestLoader_LoadWorkfile_WarnsOnMissingProjectFile(t *testing.T) {
	t.Parallel()
	loader, mockLogger := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.WorkFileName, "projects:\n  \":app\": app\n")

	mockLogger.EXPECT().Warn("project.yaml missing in project :app, configuring it as empty")

	wf, err := loader.LoadWorkfile(root)
	require.NoError(t, err)
	assert.Contains(t, wf.Projects, domain.NewPath(":app"))
}

func TestLoader_LoadWorkfile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		workfile string
		wantErr  error
	}{
		{
			name:     "invalid yaml",
			workfile: "projects: [",
			wantErr:  domain.ErrConfigParseFailed,
		},
		{
			name:     "path without separator",
			workfile: "projects:\n  app: app\n",
			wantErr:  domain.ErrInvalidProjectPath,
		},
		{
			name:     "invalid segment",
			workfile: "projects:\n  \":a pp\": app\n",
			wantErr:  domain.ErrInvalidProjectPath,
		},
		{
			name:     "directory outside root",
			workfile: "projects:\n  \":app\": ../app\n",
			wantErr:  domain.ErrInvalidProjectPath,
		},
		{
			name:     "unknown dependency",
			workfile: "projects:\n  \":app\":\n    dir: app\n    dependsOn: [\":lib\"]\n",
			wantErr:  domain.ErrUnknownProjectDependency,
		},
		{
			name: "cycle",
			workfile: `projects:
  ":a":
    dir: a
    dependsOn: [":b"]
  ":b":
    dir: b
    dependsOn: [":a"]
`,
			wantErr: domain.ErrProjectCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loader, mockLogger := newLoader(t)
			mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
			root := t.TempDir()
			createFile(t, root, domain.WorkFileName, tt.workfile)

			_, err := loader.LoadWorkfile(root)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestLoader_LoadWorkfile_Missing(t *testing.T) {
	t.Parallel()
	loader, _ := newLoader(t)

	_, err := loader.LoadWorkfile(t.TempDir())
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}

func TestLoader_DiscoverRoot(t *testing.T) {
	t.Parallel()
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.WorkFileName, "")
	nested := filepath.Join(root, "app", "src")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	got, err := loader.DiscoverRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestLoader_DiscoverRoot_NotFound(t *testing.T) {
	t.Parallel()
	loader, _ := newLoader(t)

	_, err := loader.DiscoverRoot(t.TempDir())
	assert.ErrorContains(t, err, domain.ErrConfigNotFound.Error())
}

func TestLoader_ParseProjectFile(t *testing.T) {
	t.Parallel()
	loader, _ := newLoader(t)

	pf, err := loader.ParseProjectFile([]byte(`
description: The app
inputs: ["src/*.go", "go.mod", "go.mod"]
env: [GOOS, CGO_ENABLED]
tasks:
  test:
    cmd: [go, test, ./...]
  build:
    cmd: [go, build]
    dependsOn: [test]
`))
	require.NoError(t, err)

	assert.Equal(t, "The app", pf.Description)
	assert.Equal(t, []string{"go.mod", "src/*.go"}, pf.Inputs)
	assert.Equal(t, []string{"CGO_ENABLED", "GOOS"}, pf.Env)
	assert.Equal(t, []domain.TaskModel{
		{Name: "build", Command: []string{"go", "build"}, DependsOn: []string{"test"}},
		{Name: "test", Command: []string{"go", "test", "./..."}},
	}, pf.Tasks)
}

func TestLoader_ParseProjectFile_Empty(t *testing.T) {
	t.Parallel()
	loader, _ := newLoader(t)

	pf, err := loader.ParseProjectFile(nil)
	require.NoError(t, err)
	assert.Empty(t, pf.Tasks)
	assert.Empty(t, pf.Description)
}

func TestLoader_ParseProjectFile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "invalid yaml", content: "tasks: [", wantErr: domain.ErrConfigParseFailed},
		{name: "colon in task name", content: "tasks:\n  \"a:b\":\n    cmd: [x]\n", wantErr: domain.ErrInvalidTaskName},
		{name: "missing task dependency", content: "tasks:\n  build:\n    dependsOn: [lint]\n", wantErr: domain.ErrInvalidTaskName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loader, _ := newLoader(t)

			_, err := loader.ParseProjectFile([]byte(tt.content))
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}
