// Package fingerprint tracks the inputs each project's models are computed from
// and decides, between sessions, which projects changed.
package fingerprint

import (
	"cmp"
	"context"
	"errors"
	"io/fs"
	"os"
	"slices"
	"sync"

	fsadapter "go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
)

var _ ports.FingerprintController = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithValue registers the current value for key. Inputs recorded with
// RecordValue are checked against it.
func WithValue(key, value string) Option {
	return func(c *Controller) {
		c.values[key] = value
	}
}

// Controller implements ports.FingerprintController.
type Controller struct {
	hasher *fsadapter.Hasher
	values map[string]string

	mu        sync.Mutex
	collected map[domain.Path]map[inputID]domain.FingerprintInput
	previous  *domain.FingerprintSet
	checked   *domain.CheckedFingerprint
}

// NewController creates a controller with no collected fingerprints.
func NewController(hasher *fsadapter.Hasher, opts ...Option) *Controller {
	c := &Controller{
		hasher:    hasher,
		values:    make(map[string]string),
		collected: make(map[domain.Path]map[inputID]domain.FingerprintInput),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CollectFingerprintForProject runs compute inside a scope for project.
// Inputs recorded by a failed compute are discarded.
func (c *Controller) CollectFingerprintForProject(
	ctx context.Context,
	project domain.Path,
	compute func(ctx context.Context) error,
) error {
	scoped, s := enter(ctx, project)
	if err := compute(scoped); err != nil {
		return err
	}

	inputs := s.exit()

	c.mu.Lock()
	defer c.mu.Unlock()
	dst, ok := c.collected[project]
	if !ok {
		dst = make(map[inputID]domain.FingerprintInput, len(inputs))
		c.collected[project] = dst
	}
	for id, in := range inputs {
		dst[id] = in
	}
	return nil
}

// Check compares each recorded input of previous against its current state.
// A project using another invalid project is invalid as well.
func (c *Controller) Check(ctx context.Context, previous *domain.FingerprintSet) (*domain.CheckedFingerprint, error) {
	checked := domain.NewCheckedFingerprint()
	if previous == nil {
		c.remember(nil, checked)
		return checked, nil
	}

	projects := domain.NewProjectSet()
	for project := range previous.Projects {
		projects.Add(project)
	}

	for _, project := range projects.Sorted() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, in := range previous.Projects[project] {
			if reason, changed := c.changed(in, projects); changed {
				checked.Invalidate(project, reason)
				break
			}
		}
	}

	propagate(previous, checked)
	c.remember(previous, checked)
	return checked, nil
}

func (c *Controller) remember(previous *domain.FingerprintSet, checked *domain.CheckedFingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.previous = previous
	c.checked = checked
}

func (c *Controller) changed(in domain.FingerprintInput, known domain.ProjectSet) (string, bool) {
	switch in.Kind {
	case domain.InputFile:
		hash, err := c.hasher.HashFile(in.Key)
		switch {
		case err == nil && in.Hash == "":
			return "file created: " + in.Key, true
		case err != nil && in.Hash == "" && isNotExist(in.Key):
			return "", false
		case err != nil:
			return "file removed or unreadable: " + in.Key, true
		case hash != in.Hash:
			return "file changed: " + in.Key, true
		}
	case domain.InputEnv:
		value, ok := os.LookupEnv(in.Key)
		if envHash(value, ok) != in.Hash {
			return "environment variable changed: " + in.Key, true
		}
	case domain.InputValue:
		value, ok := c.values[in.Key]
		if !ok || c.hasher.HashString(value) != in.Hash {
			return "value changed: " + in.Key, true
		}
	case domain.InputProject:
		if !known.Contains(domain.NewPath(in.Key)) {
			return "dependency has no fingerprint: " + in.Key, true
		}
	default:
		return "unknown input kind: " + string(in.Kind), true
	}
	return "", false
}

func isNotExist(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}

// propagate invalidates every project that depends, directly or transitively,
// on an invalid project.
func propagate(previous *domain.FingerprintSet, checked *domain.CheckedFingerprint) {
	for changed := true; changed; {
		changed = false
		for project, inputs := range previous.Projects {
			if checked.ProjectsInvalid.Contains(project) {
				continue
			}
			for _, in := range inputs {
				dep := domain.NewPath(in.Key)
				if in.Kind == domain.InputProject && dep != project && checked.ProjectsInvalid.Contains(dep) {
					checked.Invalidate(project, "dependency invalid: "+in.Key)
					changed = true
					break
				}
			}
		}
	}
}

// Result returns the fingerprints to persist. A project that stayed valid
// keeps its previous inputs, joined with the inputs collected in this session;
// an invalid project keeps only what was collected.
func (c *Controller) Result() domain.FingerprintSet {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := make(map[domain.Path]map[inputID]domain.FingerprintInput)
	if c.previous != nil {
		for project, inputs := range c.previous.Projects {
			if c.checked != nil && c.checked.ProjectsInvalid.Contains(project) {
				continue
			}
			dst := make(map[inputID]domain.FingerprintInput, len(inputs))
			for _, in := range inputs {
				dst[inputID{kind: in.Kind, key: in.Key}] = in
			}
			merged[project] = dst
		}
	}
	for project, inputs := range c.collected {
		dst, ok := merged[project]
		if !ok {
			dst = make(map[inputID]domain.FingerprintInput, len(inputs))
			merged[project] = dst
		}
		for id, in := range inputs {
			dst[id] = in
		}
	}

	out := domain.NewFingerprintSet()
	for project, inputs := range merged {
		list := make([]domain.FingerprintInput, 0, len(inputs))
		for _, in := range inputs {
			list = append(list, in)
		}
		sortInputs(list)
		out.Projects[project] = list
	}
	return out
}

func sortInputs(inputs []domain.FingerprintInput) {
	slices.SortFunc(inputs, func(a, b domain.FingerprintInput) int {
		return cmp.Or(cmp.Compare(a.Kind, b.Kind), cmp.Compare(a.Key, b.Key))
	})
}
