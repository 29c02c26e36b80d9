// Package app implements the application layer for modelcache.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.trai.ch/modelcache/internal/adapters/telemetry"
	"go.trai.ch/modelcache/internal/build"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/modelcache/internal/engine/configurator"
	"go.trai.ch/modelcache/internal/engine/session"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader       ports.ConfigLoader
	sessions     *session.Manager
	configurator *configurator.Configurator
	entries      ports.EntryStore
	logger       ports.Logger
	dir          string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sessions *session.Manager,
	cfg *configurator.Configurator,
	entries ports.EntryStore,
	log ports.Logger,
) *App {
	return &App{
		loader:       loader,
		sessions:     sessions,
		configurator: cfg,
		entries:      entries,
		logger:       log,
	}
}

// WithDir sets the directory the workspace is discovered from.
// It defaults to the working directory.
func (a *App) WithDir(dir string) *App {
	a.dir = dir
	return a
}

// ConfigureOptions configuration for the Configure method.
type ConfigureOptions struct {
	NoCache bool
	// JSON writes the configured models as JSON.
	JSON bool
	// Trace logs the duration of every span.
	Trace bool
}

// Configure evaluates every project of the workspace, reusing what the
// previous session cached.
func (a *App) Configure(ctx context.Context, w io.Writer, opts ConfigureOptions) error {
	wf, err := a.workfile()
	if err != nil {
		return err
	}

	if opts.Trace {
		otel.SetTracerProvider(telemetry.NewProvider(telemetry.NewBridge(a.logger, time.Millisecond)))
	}

	s, err := a.sessions.Open(ctx, session.Options{
		CacheDir:    domain.CacheDir(wf.Root, wf.Settings.CacheDir),
		BuildHash:   wf.Hash,
		Codec:       wf.Settings.Codec,
		Compression: wf.Settings.Compression,
		MetricsFile: a.metricsFile(wf),
		NoCache:     opts.NoCache,
		Values:      map[string]string{configurator.ToolVersionKey: build.Version},
	})
	if err != nil {
		return err
	}

	result, cfgErr := a.configurator.Configure(ctx, s.Cache(), wf)
	if err := errors.Join(cfgErr, s.Close(ctx)); err != nil {
		return err
	}

	a.logReport(s.Report(), len(result.Projects))

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return nil
}

func (a *App) logReport(r session.Report, projects int) {
	if r.Discarded != "" && r.Dropped > 0 {
		a.logger.Warn(fmt.Sprintf("previous session discarded: %s", r.Discarded))
	}
	a.logger.Info(fmt.Sprintf(
		"configured %d projects: %d models reused, %d computed, %d invalidated",
		projects, r.Stats.Promoted, r.Stats.Computed, len(r.Invalid),
	))
}

func (a *App) metricsFile(wf *ports.Workfile) string {
	if wf.Settings.MetricsFile == "" {
		return ""
	}
	return domain.CacheDir(wf.Root, wf.Settings.MetricsFile)
}

// Clean removes the model cache of the workspace.
func (a *App) Clean(_ context.Context) error {
	wf, err := a.workfile()
	if err != nil {
		return err
	}

	dir := domain.CacheDir(wf.Root, wf.Settings.CacheDir)
	a.logger.Info("removing model cache...")
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove model cache"), "path", dir)
	}
	a.logger.Info("removed model cache")
	return nil
}

func (a *App) workfile() (*ports.Workfile, error) {
	dir := a.dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = cwd
	}

	root, err := a.loader.DiscoverRoot(dir)
	if err != nil {
		return nil, err
	}
	wf, err := a.loader.LoadWorkfile(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return wf, nil
}
