package domain

import "path/filepath"

const (
	// CacheDirName is the name of the cache directory under the workspace root.
	CacheDirName = ".modelcache"

	// BlockFileName is the name of the append-only block file.
	BlockFileName = "models.bin"

	// EntriesFileName is the name of the entry details file.
	EntriesFileName = "entries.json"

	// FingerprintsFileName is the name of the fingerprint file.
	FingerprintsFileName = "fingerprints.json"

	// WorkFileName is the name of the workspace configuration file.
	WorkFileName = "modelcache.work.yaml"

	// ProjectFileName is the name of a project configuration file.
	ProjectFileName = "project.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// CacheDir returns the cache directory for the workspace at root.
// A non-empty override is used instead of the default, relative to root unless
// it is absolute.
func CacheDir(root, override string) string {
	if override == "" {
		return filepath.Join(root, CacheDirName)
	}
	if filepath.IsAbs(override) {
		return filepath.Clean(override)
	}
	return filepath.Join(root, override)
}

// BlockFilePath returns the block file path inside cacheDir.
func BlockFilePath(cacheDir string) string {
	return filepath.Join(cacheDir, BlockFileName)
}

// EntriesFilePath returns the entry details path inside cacheDir.
func EntriesFilePath(cacheDir string) string {
	return filepath.Join(cacheDir, EntriesFileName)
}

// FingerprintsFilePath returns the fingerprint file path inside cacheDir.
func FingerprintsFilePath(cacheDir string) string {
	return filepath.Join(cacheDir, FingerprintsFileName)
}
