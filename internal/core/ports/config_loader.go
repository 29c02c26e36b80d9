package ports

import "go.trai.ch/modelcache/internal/core/domain"

// Settings are the cache settings declared by the workfile.
type Settings struct {
	// CacheDir overrides the cache directory, relative to the workspace root.
	CacheDir string
	// Codec names the model codec ("msgpack" or "json").
	Codec string
	// Compression enables zstd compression of stored blocks.
	Compression bool
	// MetricsFile, when set, receives the session metrics in text format.
	MetricsFile string
}

// Workfile is the parsed workspace configuration.
type Workfile struct {
	// Root is the absolute workspace root directory.
	Root string
	// Hash identifies the exact content of the workfile.
	Hash string
	// Settings are the cache settings.
	Settings Settings
	// Projects holds the declared projects by identity path.
	Projects map[domain.Path]ProjectDecl
}

// ProjectDecl is a project as declared by the workfile.
type ProjectDecl struct {
	// Dir is the project directory relative to the workspace root.
	Dir string
	// DependsOn lists the projects whose models this project uses.
	DependsOn []domain.Path
}

// ProjectFile is the parsed configuration of one project.
type ProjectFile struct {
	Description string
	Inputs      []string
	Env         []string
	Tasks       []domain.TaskModel
}

// ConfigLoader discovers and parses workspace configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// DiscoverRoot walks up from cwd to find the directory holding the workfile.
	DiscoverRoot(cwd string) (string, error)

	// LoadWorkfile reads and validates the workfile in root.
	LoadWorkfile(root string) (*Workfile, error)

	// ParseProjectFile parses the content of a project file.
	ParseProjectFile(data []byte) (*ProjectFile, error)
}
