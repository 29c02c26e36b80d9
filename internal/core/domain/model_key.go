package domain

// buildScope is how a key without project path is rendered.
const buildScope = "<build>"

// ModelKey is the logical identity of a cached model.
// Two keys are equal when their project paths and names are equal, so ModelKey
// can be used directly as a map key.
type ModelKey struct {
	// Project owns the model. The zero Path marks a build-wide model.
	Project Path
	// Name identifies the model within its project.
	Name string
}

// NewModelKey creates a ModelKey.
func NewModelKey(project Path, name string) ModelKey {
	return ModelKey{Project: project, Name: name}
}

// HasProject reports whether the model is owned by a project.
func (k ModelKey) HasProject() bool {
	return !k.Project.IsZero()
}

// String renders the key as "<project>/<name>", using "<build>" for
// build-wide models.
func (k ModelKey) String() string {
	scope := buildScope
	if k.HasProject() {
		scope = k.Project.String()
	}
	return scope + "/" + k.Name
}

// Less orders keys by project path first and name second.
// Build-wide keys sort before project keys.
func (k ModelKey) Less(other ModelKey) bool {
	if k.Project != other.Project {
		return k.Project.String() < other.Project.String()
	}
	return k.Name < other.Name
}
