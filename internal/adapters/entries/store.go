// Package entries persists the model entry details of a session.
package entries

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EntryStore = (*Store)(nil)

// Store implements ports.EntryStore using a JSON file in the cache directory.
type Store struct{}

// NewStore creates a new entry store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the entry details stored in cacheDir.
func (s *Store) Load(cacheDir string) (*domain.EntryDetails, error) {
	path := domain.EntriesFilePath(cacheDir)

	//nolint:gosec // Path is constructed from the trusted cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEntriesReadFailed.Error()), "path", path)
	}

	var details domain.EntryDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEntriesUnmarshalFailed.Error()), "path", path)
	}
	if details.Version != domain.EntryDetailsVersion {
		return nil, zerr.With(
			zerr.With(domain.ErrEntriesUnmarshalFailed, "version", details.Version),
			"path", path,
		)
	}

	return &details, nil
}

// Save stores the entry details in cacheDir.
func (s *Store) Save(cacheDir string, details domain.EntryDetails) error {
	data, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrEntriesMarshalFailed.Error())
	}

	if err := writeFileAtomic(domain.EntriesFilePath(cacheDir), data); err != nil {
		return zerr.Wrap(err, domain.ErrEntriesWriteFailed.Error())
	}
	return nil
}

// writeFileAtomic replaces path with data via a temporary file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error())
	}

	tmp, err := os.CreateTemp(dir, ".entries-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Best effort, gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
