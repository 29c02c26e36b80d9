// Package configurator produces the workspace and project models of a build
// through the model cache.
package configurator

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/modelcache/internal/adapters/fingerprint"
	fsadapter "go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/build"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/modelcache/internal/engine/modelcache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// WorkspaceModelName names the build-wide workspace model.
	WorkspaceModelName = "workspace"
	// ProjectModelName names the model of each project.
	ProjectModelName = "project"
	// ToolVersionKey is the host value every project model depends on.
	ToolVersionKey = "tool.version"
)

// Configurator evaluates projects.
type Configurator struct {
	loader   ports.ConfigLoader
	resolver *fsadapter.Resolver
	hasher   *fsadapter.Hasher
}

// New creates a Configurator.
func New(
	loader ports.ConfigLoader,
	resolver *fsadapter.Resolver,
	hasher *fsadapter.Hasher,
) *Configurator {
	return &Configurator{
		loader:   loader,
		resolver: resolver,
		hasher:   hasher,
	}
}

// Result holds the models of one configured workspace.
type Result struct {
	Workspace *domain.WorkspaceModel
	// Projects are sorted by path.
	Projects []*domain.ProjectModel
}

// Configure loads the workspace model and the model of every declared
// project. Projects are evaluated in parallel.
func (c *Configurator) Configure(
	ctx context.Context,
	cache *modelcache.Controller,
	wf *ports.Workfile,
) (*Result, error) {
	ws, err := Workspace(ctx, cache, wf)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigureFailed.Error())
	}

	paths := sortedProjects(wf)
	models := make([]*domain.ProjectModel, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			model, err := c.Project(gctx, cache, wf, path)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrConfigureFailed.Error()), "project", path.String())
			}
			models[i] = model
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{Workspace: ws, Projects: models}, nil
}

// Workspace returns the build-wide workspace model.
func Workspace(ctx context.Context, cache *modelcache.Controller, wf *ports.Workfile) (*domain.WorkspaceModel, error) {
	return modelcache.LoadOrCreate(ctx, cache, domain.Path{}, WorkspaceModelName,
		func(context.Context) (*domain.WorkspaceModel, error) {
			model := &domain.WorkspaceModel{
				Root:     wf.Root,
				Projects: make([]domain.WorkspaceProject, 0, len(wf.Projects)),
			}
			for _, path := range sortedProjects(wf) {
				model.Projects = append(model.Projects, domain.WorkspaceProject{
					Path: path.String(),
					Dir:  wf.Projects[path].Dir,
				})
			}
			return model, nil
		})
}

// Project returns the model of the project at path.
func (c *Configurator) Project(
	ctx context.Context,
	cache *modelcache.Controller,
	wf *ports.Workfile,
	path domain.Path,
) (*domain.ProjectModel, error) {
	return modelcache.LoadOrCreate(ctx, cache, path, ProjectModelName,
		func(ctx context.Context) (*domain.ProjectModel, error) {
			return c.evaluate(ctx, cache, wf, path)
		})
}

func (c *Configurator) evaluate(
	ctx context.Context,
	cache *modelcache.Controller,
	wf *ports.Workfile,
	path domain.Path,
) (*domain.ProjectModel, error) {
	decl, ok := wf.Projects[path]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownProjectDependency, "project", path.String())
	}
	dir := filepath.Join(wf.Root, decl.Dir)

	file, err := c.readProjectFile(ctx, path, dir)
	if err != nil {
		return nil, err
	}

	fingerprint.RecordValue(ctx, ToolVersionKey, build.Version)

	model := &domain.ProjectModel{
		Path:        path.String(),
		Dir:         decl.Dir,
		Description: file.Description,
		DependsOn:   make([]string, 0, len(decl.DependsOn)),
		Env:         make(map[string]string, len(file.Env)),
		Tasks:       file.Tasks,
		TaskCount:   len(file.Tasks),
	}

	for _, name := range file.Env {
		model.Env[name] = fingerprint.RecordEnv(ctx, name)
	}

	if model.Inputs, err = c.digestInputs(ctx, wf.Root, dir, file.Inputs); err != nil {
		return nil, zerr.With(err, "project", path.String())
	}

	for _, dep := range decl.DependsOn {
		model.DependsOn = append(model.DependsOn, dep.String())
	}
	for _, dep := range closure(wf, path) {
		fingerprint.DependOnProject(ctx, dep)
		depModel, err := c.Project(ctx, cache, wf, dep)
		if err != nil {
			return nil, zerr.With(err, "dependency", dep.String())
		}
		model.TaskCount += len(depModel.Tasks)
	}

	return model, nil
}

// readProjectFile parses the project file in dir. A missing file configures
// an empty project; creating it later invalidates the project.
func (c *Configurator) readProjectFile(ctx context.Context, path domain.Path, dir string) (*ports.ProjectFile, error) {
	filePath := filepath.Join(dir, domain.ProjectFileName)
	data, err := fingerprint.ReadFile(ctx, filePath)
	if err != nil {
		if _, statErr := os.Stat(filePath); !errors.Is(statErr, fs.ErrNotExist) {
			return nil, err
		}
		data = nil
	}

	file, err := c.loader.ParseProjectFile(data)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "project", path.String()), "file", filePath)
	}
	return file, nil
}

func (c *Configurator) digestInputs(ctx context.Context, root, dir string, patterns []string) ([]domain.InputDigest, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	files, err := c.resolver.ResolveInputs(patterns, dir)
	if err != nil {
		return nil, err
	}

	digests := make([]domain.InputDigest, 0, len(files))
	for _, file := range files {
		hash, err := c.hasher.HashFile(file)
		if err != nil {
			return nil, err
		}
		fingerprint.RecordFile(ctx, file, hash)

		rel, err := filepath.Rel(root, file)
		if err != nil {
			rel = file
		}
		digests = append(digests, domain.InputDigest{Path: filepath.ToSlash(rel), Hash: hash})
	}
	return digests, nil
}

// closure returns every project path transitively depends on, sorted.
// Workfile validation guarantees the graph is acyclic.
func closure(wf *ports.Workfile, path domain.Path) []domain.Path {
	seen := make(map[domain.Path]struct{})
	var visit func(p domain.Path)
	visit = func(p domain.Path) {
		for _, dep := range wf.Projects[p].DependsOn {
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			visit(dep)
		}
	}
	visit(path)

	deps := make([]domain.Path, 0, len(seen))
	for dep := range seen {
		deps = append(deps, dep)
	}
	sortPaths(deps)
	return deps
}

func sortedProjects(wf *ports.Workfile) []domain.Path {
	paths := make([]domain.Path, 0, len(wf.Projects))
	for path := range wf.Projects {
		paths = append(paths, path)
	}
	sortPaths(paths)
	return paths
}

func sortPaths(paths []domain.Path) {
	slices.SortFunc(paths, func(a, b domain.Path) int {
		return strings.Compare(a.String(), b.String())
	})
}
