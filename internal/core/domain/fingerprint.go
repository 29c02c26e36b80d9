package domain

import (
	"maps"
	"slices"
)

// ProjectSet is a set of project identity paths.
type ProjectSet map[Path]struct{}

// NewProjectSet creates a set holding the given projects.
func NewProjectSet(projects ...Path) ProjectSet {
	s := make(ProjectSet, len(projects))
	for _, p := range projects {
		s.Add(p)
	}
	return s
}

// Add inserts p into the set.
func (s ProjectSet) Add(p Path) {
	s[p] = struct{}{}
}

// Contains reports whether p is a member. A nil set contains nothing.
func (s ProjectSet) Contains(p Path) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the members in lexical order.
func (s ProjectSet) Sorted() []Path {
	paths := slices.Collect(maps.Keys(s))
	slices.SortFunc(paths, func(a, b Path) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		default:
			return 0
		}
	})
	return paths
}

// CheckedFingerprint is the outcome of checking the previous session's
// fingerprints against the current inputs.
type CheckedFingerprint struct {
	// ProjectsInvalid holds the projects whose cached models must not be reused.
	ProjectsInvalid ProjectSet
	// Reasons explains, per invalid project, which input changed first.
	Reasons map[Path]string
}

// NewCheckedFingerprint creates an empty result with nothing invalid.
func NewCheckedFingerprint() *CheckedFingerprint {
	return &CheckedFingerprint{
		ProjectsInvalid: NewProjectSet(),
		Reasons:         make(map[Path]string),
	}
}

// Invalidate marks project invalid and keeps the first reason given.
func (c *CheckedFingerprint) Invalidate(project Path, reason string) {
	c.ProjectsInvalid.Add(project)
	if _, ok := c.Reasons[project]; !ok {
		c.Reasons[project] = reason
	}
}

// InputKind classifies a fingerprint input.
type InputKind string

const (
	// InputFile is the content of a file, keyed by its path.
	InputFile InputKind = "file"
	// InputEnv is the value of an environment variable, keyed by its name.
	InputEnv InputKind = "env"
	// InputValue is an arbitrary value supplied by the model producer.
	InputValue InputKind = "value"
	// InputProject is a dependency on another project's fingerprint.
	InputProject InputKind = "project"
)

// FingerprintInput is one input observed while computing a project's models.
type FingerprintInput struct {
	Kind InputKind `json:"kind"`
	Key  string    `json:"key"`
	Hash string    `json:"hash,omitzero"`
}

// FingerprintSet maps each project to the inputs its models were computed from.
type FingerprintSet struct {
	Version  int                         `json:"version"`
	Projects map[Path][]FingerprintInput `json:"projects"`
}

// NewFingerprintSet creates an empty set.
func NewFingerprintSet() FingerprintSet {
	return FingerprintSet{
		Version:  EntryDetailsVersion,
		Projects: make(map[Path][]FingerprintInput),
	}
}
