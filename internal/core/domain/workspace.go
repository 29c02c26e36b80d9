package domain

// WorkspaceProject is one project declared by the workspace.
type WorkspaceProject struct {
	Path string `msgpack:"path" json:"path"`
	Dir  string `msgpack:"dir" json:"dir"`
}

// WorkspaceModel is the build-wide model describing the workspace layout.
type WorkspaceModel struct {
	Root     string             `msgpack:"root" json:"root"`
	Projects []WorkspaceProject `msgpack:"projects" json:"projects"`
}

// InputDigest is the content hash of one resolved input file.
type InputDigest struct {
	Path string `msgpack:"path" json:"path"`
	Hash string `msgpack:"hash" json:"hash"`
}

// TaskModel is a task declared by a project.
type TaskModel struct {
	Name      string   `msgpack:"name" json:"name"`
	Command   []string `msgpack:"cmd" json:"cmd"`
	DependsOn []string `msgpack:"depends_on" json:"depends_on"`
}

// ProjectModel is the evaluated configuration of one project.
type ProjectModel struct {
	Path        string            `msgpack:"path" json:"path"`
	Dir         string            `msgpack:"dir" json:"dir"`
	Description string            `msgpack:"description" json:"description"`
	DependsOn   []string          `msgpack:"depends_on" json:"depends_on"`
	Env         map[string]string `msgpack:"env" json:"env"`
	Inputs      []InputDigest     `msgpack:"inputs" json:"inputs"`
	Tasks       []TaskModel       `msgpack:"tasks" json:"tasks"`
	// TaskCount includes the tasks of every project this one depends on.
	TaskCount int `msgpack:"task_count" json:"task_count"`
}
