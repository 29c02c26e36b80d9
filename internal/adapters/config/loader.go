// Package config provides the configuration loader for modelcache.
package config

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
	Hasher *fs.Hasher
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger, hasher *fs.Hasher) *Loader {
	return &Loader{Logger: logger, Hasher: hasher}
}

var validSegmentRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// DiscoverRoot walks up from cwd to the first directory holding a workfile.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	currentDir := filepath.Clean(cwd)
	for {
		if _, err := os.Stat(filepath.Join(currentDir, domain.WorkFileName)); err == nil {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

// LoadWorkfile reads and validates the workfile in root.
func (l *Loader) LoadWorkfile(root string) (*ports.Workfile, error) {
	path := filepath.Join(root, domain.WorkFileName)

	// #nosec G304 -- path is constructed from the discovered root
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var dto Workfile
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	projects, err := l.resolveProjects(root, dto.Projects)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return &ports.Workfile{
		Root:     root,
		Hash:     l.Hasher.HashBytes(data),
		Settings: buildSettings(dto.Cache),
		Projects: projects,
	}, nil
}

func buildSettings(dto CacheDTO) ports.Settings {
	settings := ports.Settings{
		CacheDir:    dto.Dir,
		Codec:       dto.Codec,
		Compression: true,
		MetricsFile: dto.MetricsFile,
	}
	if dto.Compression != nil {
		settings.Compression = *dto.Compression
	}
	return settings
}

func (l *Loader) resolveProjects(root string, dtos map[string]*ProjectDTO) (map[domain.Path]ports.ProjectDecl, error) {
	projects := make(map[domain.Path]ports.ProjectDecl, len(dtos))
	dirs := make(map[string]domain.Path, len(dtos))

	for _, name := range slices.Sorted(maps.Keys(dtos)) {
		project, err := parseProjectPath(name)
		if err != nil {
			return nil, err
		}
		if _, exists := projects[project]; exists {
			return nil, zerr.With(domain.ErrInvalidProjectPath, "duplicate_project", project.String())
		}

		dto := dtos[name]
		if dto == nil {
			dto = &ProjectDTO{}
		}
		dir := filepath.Clean(dto.Dir)
		if filepath.IsAbs(dir) || dir == ".." || strings.HasPrefix(dir, ".."+string(filepath.Separator)) {
			return nil, zerr.With(zerr.With(domain.ErrInvalidProjectPath, "project", project.String()), "dir", dto.Dir)
		}
		if other, exists := dirs[dir]; exists {
			l.Logger.Warn(fmt.Sprintf("projects %s and %s share directory %s", other, project, dir))
		}
		dirs[dir] = project

		if _, err := os.Stat(filepath.Join(root, dir, domain.ProjectFileName)); os.IsNotExist(err) {
			l.Logger.Warn(fmt.Sprintf("%s missing in project %s, configuring it as empty", domain.ProjectFileName, project))
		}

		deps := make([]domain.Path, 0, len(dto.DependsOn))
		for _, raw := range dto.DependsOn {
			dep, err := parseProjectPath(raw)
			if err != nil {
				return nil, zerr.With(err, "project", project.String())
			}
			deps = append(deps, dep)
		}
		sortPaths(deps)

		projects[project] = ports.ProjectDecl{Dir: dir, DependsOn: slices.Compact(deps)}
	}

	if err := validateDependencies(projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ParseProjectFile parses and validates the content of a project file.
// Empty content yields an empty project.
func (l *Loader) ParseProjectFile(data []byte) (*ports.ProjectFile, error) {
	var dto ProjectFileDTO
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &dto); err != nil {
			return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
		}
	}

	tasks := make([]domain.TaskModel, 0, len(dto.Tasks))
	for _, name := range slices.Sorted(maps.Keys(dto.Tasks)) {
		if err := validateTaskName(name); err != nil {
			return nil, err
		}
		task := dto.Tasks[name]
		if task == nil {
			task = &TaskDTO{}
		}
		for _, dep := range task.DependsOn {
			if _, ok := dto.Tasks[dep]; !ok {
				err := zerr.With(domain.ErrInvalidTaskName, "task_name", name)
				return nil, zerr.With(err, "missing_dependency", dep)
			}
		}
		tasks = append(tasks, domain.TaskModel{
			Name:      name,
			Command:   task.Cmd,
			DependsOn: canonicalizeStrings(task.DependsOn),
		})
	}

	return &ports.ProjectFile{
		Description: dto.Description,
		Inputs:      canonicalizeStrings(dto.Inputs),
		Env:         canonicalizeStrings(dto.Env),
		Tasks:       tasks,
	}, nil
}

func parseProjectPath(raw string) (domain.Path, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.Path{}, zerr.With(domain.ErrInvalidProjectPath, "project", raw)
	}
	if !strings.HasPrefix(raw, domain.PathSeparator) {
		return domain.Path{}, zerr.With(domain.ErrInvalidProjectPath, "project", raw)
	}
	project := domain.NewPath(raw)
	for _, segment := range project.Segments() {
		if !validSegmentRegex.MatchString(segment) {
			return domain.Path{}, zerr.With(domain.ErrInvalidProjectPath, "project", raw)
		}
	}
	return project, nil
}

// validateDependencies rejects unknown dependencies and dependency cycles.
func validateDependencies(projects map[domain.Path]ports.ProjectDecl) error {
	for project, decl := range projects {
		for _, dep := range decl.DependsOn {
			if _, ok := projects[dep]; !ok {
				err := zerr.With(domain.ErrUnknownProjectDependency, "project", project.String())
				return zerr.With(err, "missing_dependency", dep.String())
			}
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[domain.Path]int, len(projects))

	var visit func(p domain.Path, stack []string) error
	visit = func(p domain.Path, stack []string) error {
		switch state[p] {
		case visiting:
			return zerr.With(domain.ErrProjectCycle, "cycle", strings.Join(append(stack, p.String()), " -> "))
		case done:
			return nil
		}
		state[p] = visiting
		for _, dep := range projects[p].DependsOn {
			if err := visit(dep, append(stack, p.String())); err != nil {
				return err
			}
		}
		state[p] = done
		return nil
	}

	roots := make([]domain.Path, 0, len(projects))
	for p := range projects {
		roots = append(roots, p)
	}
	sortPaths(roots)
	for _, p := range roots {
		if err := visit(p, nil); err != nil {
			return err
		}
	}
	return nil
}

// validateTaskName checks that the task name is usable in a project.
func validateTaskName(name string) error {
	if name == "" {
		return zerr.With(domain.ErrInvalidTaskName, "task_name", name)
	}
	if strings.Contains(name, domain.PathSeparator) {
		err := zerr.With(domain.ErrInvalidTaskName, "invalid_character", domain.PathSeparator)
		return zerr.With(err, "task_name", name)
	}
	return nil
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

func sortPaths(paths []domain.Path) {
	slices.SortFunc(paths, func(a, b domain.Path) int {
		return strings.Compare(a.String(), b.String())
	})
}
