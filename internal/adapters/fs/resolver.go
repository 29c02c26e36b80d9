package fs

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver resolves input patterns to concrete files.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveInputs resolves glob patterns relative to root into a sorted list of
// unique file paths. Matched directories are expanded to the files they contain.
// A pattern that matches nothing is an error.
func (r *Resolver) ResolveInputs(inputs []string, root string) ([]string, error) {
	unique := make(map[string]struct{})

	for _, input := range inputs {
		pattern := filepath.Join(root, input)

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", pattern)
		}
		if len(matches) == 0 {
			return nil, zerr.With(domain.ErrInputNotFound, "path", pattern)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", match)
			}
			if !info.IsDir() {
				unique[match] = struct{}{}
				continue
			}
			for file := range r.walker.WalkFiles(match, nil) {
				unique[file] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(unique))
	for path := range unique {
		result = append(result, path)
	}
	slices.Sort(result)

	return result, nil
}
