package domain

import "go.trai.ch/zerr"

var (
	// ErrCacheClosed is returned when the model cache is used after Close.
	ErrCacheClosed = zerr.New("model cache is closed")

	// ErrNilModel is returned when a model producer returns a nil value.
	ErrNilModel = zerr.New("model producer returned a nil model")

	// ErrModelWriteFailed is returned when a computed model cannot be written to the block store.
	ErrModelWriteFailed = zerr.New("failed to write model")

	// ErrModelReadFailed is returned when a recorded model cannot be read back from the block store.
	ErrModelReadFailed = zerr.New("failed to read model")

	// ErrModelTypeMismatch is returned when a shared computation produced a value of another type.
	ErrModelTypeMismatch = zerr.New("model has unexpected type")

	// ErrStoreOpenFailed is returned when the block store cannot be created.
	ErrStoreOpenFailed = zerr.New("failed to open block store")

	// ErrBlockCorrupt is returned when a block fails validation.
	ErrBlockCorrupt = zerr.New("block is corrupt")

	// ErrBlockOutOfRange is returned when an address points outside the block file.
	ErrBlockOutOfRange = zerr.New("block address out of range")

	// ErrStoreClosed is returned when the block store is used after Close.
	ErrStoreClosed = zerr.New("block store is closed")

	// ErrUnknownCodec is returned when a codec name is not recognized.
	ErrUnknownCodec = zerr.New("unknown codec")

	// ErrEntriesReadFailed is returned when the entry details cannot be read.
	ErrEntriesReadFailed = zerr.New("failed to read entry details")

	// ErrEntriesUnmarshalFailed is returned when the entry details cannot be unmarshaled.
	ErrEntriesUnmarshalFailed = zerr.New("failed to unmarshal entry details")

	// ErrEntriesMarshalFailed is returned when the entry details cannot be marshaled.
	ErrEntriesMarshalFailed = zerr.New("failed to marshal entry details")

	// ErrEntriesWriteFailed is returned when the entry details cannot be written.
	ErrEntriesWriteFailed = zerr.New("failed to write entry details")

	// ErrFingerprintReadFailed is returned when the fingerprints cannot be read.
	ErrFingerprintReadFailed = zerr.New("failed to read fingerprints")

	// ErrFingerprintUnmarshalFailed is returned when the fingerprints cannot be unmarshaled.
	ErrFingerprintUnmarshalFailed = zerr.New("failed to unmarshal fingerprints")

	// ErrFingerprintWriteFailed is returned when the fingerprints cannot be written.
	ErrFingerprintWriteFailed = zerr.New("failed to write fingerprints")

	// ErrCacheDirCreateFailed is returned when the cache directory cannot be created.
	ErrCacheDirCreateFailed = zerr.New("failed to create cache directory")

	// ErrMetricsWriteFailed is returned when the metrics file cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics")

	// ErrConfigNotFound is returned when no workfile can be found.
	ErrConfigNotFound = zerr.New("could not find workfile")

	// ErrConfigReadFailed is returned when a config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidProjectPath is returned when a project path is malformed.
	ErrInvalidProjectPath = zerr.New("project path segments can only contain alphanumeric characters, hyphens and underscores")

	// ErrUnknownProjectDependency is returned when a project depends on an undeclared project.
	ErrUnknownProjectDependency = zerr.New("project depends on an unknown project")

	// ErrProjectCycle is returned when project dependencies form a cycle.
	ErrProjectCycle = zerr.New("project dependency cycle detected")

	// ErrInvalidTaskName is returned when a task name contains invalid characters.
	ErrInvalidTaskName = zerr.New("invalid task name")

	// ErrInputNotFound is returned when a declared input matches no file.
	ErrInputNotFound = zerr.New("input not found")

	// ErrInputReadFailed is returned when a recorded input file cannot be read.
	ErrInputReadFailed = zerr.New("failed to read input file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrConfigureFailed is returned when configuring the workspace fails.
	ErrConfigureFailed = zerr.New("workspace configuration failed")
)
