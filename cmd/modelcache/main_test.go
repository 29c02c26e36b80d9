package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/modelcache/internal/adapters/config"
	"go.trai.ch/modelcache/internal/adapters/entries"
	"go.trai.ch/modelcache/internal/adapters/fingerprint"
	"go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/adapters/telemetry"
	"go.trai.ch/modelcache/internal/app"
	"go.trai.ch/modelcache/internal/build"
	"go.trai.ch/modelcache/internal/core/ports/mocks"
	"go.trai.ch/modelcache/internal/engine/configurator"
	"go.trai.ch/modelcache/internal/engine/session"
	"go.uber.org/mock/gomock"
)

func newComponents(t *testing.T, dir string) (*app.Components, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	hasher := fs.NewHasher()
	loader := config.NewLoader(mockLogger, hasher)
	entryStore := entries.NewStore()
	application := app.New(
		loader,
		session.NewManager(entryStore, fingerprint.NewStore(), hasher, mockLogger, telemetry.NewNoOpTracer()),
		configurator.New(loader, fs.NewResolver(fs.NewWalker()), hasher),
		entryStore,
		mockLogger,
	).WithDir(dir)

	return &app.Components{App: application, Logger: mockLogger}, mockLogger
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	components, _ := newComponents(t, t.TempDir())
	provider := func(context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.Equal(t, build.Version+"\n", stdout.String())
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	components, mockLogger := newComponents(t, t.TempDir())
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	provider := func(context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"configure"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
