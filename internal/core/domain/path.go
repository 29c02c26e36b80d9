// Package domain contains the core domain types of the model cache.
package domain

import (
	"strings"
	"unique"
)

// PathSeparator separates the segments of a project identity path.
const PathSeparator = ":"

// Path is a hierarchical project identity path such as ":app:lib".
// The root project is ":". The zero value denotes "no project" and is used
// for build-wide models.
type Path struct {
	h unique.Handle[string]
}

// RootPath is the identity path of the root project.
var RootPath = Path{h: unique.Make(PathSeparator)}

// NewPath creates a normalized Path from s.
// Empty segments are dropped and a leading separator is added, so "app:lib",
// ":app:lib" and ":app::lib:" are all the same path. An empty or all-blank
// string yields the zero Path; a string of separators yields RootPath.
func NewPath(s string) Path {
	if strings.TrimSpace(s) == "" {
		return Path{}
	}
	segments := splitSegments(s)
	if len(segments) == 0 {
		return RootPath
	}
	return Path{h: unique.Make(PathSeparator + strings.Join(segments, PathSeparator))}
}

func splitSegments(s string) []string {
	parts := strings.Split(s, PathSeparator)
	segments := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// IsZero reports whether p is the "no project" path.
func (p Path) IsZero() bool {
	var zero unique.Handle[string]
	return p.h == zero
}

// String returns the textual form of the path, or "" for the zero Path.
func (p Path) String() string {
	if p.IsZero() {
		return ""
	}
	return p.h.Value()
}

// Segments returns the path segments, excluding the root.
func (p Path) Segments() []string {
	if p.IsZero() {
		return nil
	}
	return splitSegments(p.h.Value())
}

// Name returns the last segment of the path.
// The root path and the zero path have an empty name.
func (p Path) Name() string {
	segments := p.Segments()
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// Parent returns the enclosing project path.
// The parent of the root is the zero Path, as is the parent of the zero Path.
func (p Path) Parent() Path {
	segments := p.Segments()
	switch {
	case p.IsZero(), p == RootPath:
		return Path{}
	case len(segments) == 1:
		return RootPath
	default:
		return NewPath(strings.Join(segments[:len(segments)-1], PathSeparator))
	}
}

// Child returns the path of the child project called name.
func (p Path) Child(name string) Path {
	if p.IsZero() {
		return NewPath(name)
	}
	return NewPath(p.h.Value() + PathSeparator + name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	*p = NewPath(string(text))
	return nil
}
