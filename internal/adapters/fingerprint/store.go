package fingerprint

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

var _ ports.FingerprintStore = (*Store)(nil)

// Store implements ports.FingerprintStore using a JSON file in the cache directory.
type Store struct{}

// NewStore creates a new fingerprint store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the fingerprints stored in cacheDir.
func (s *Store) Load(cacheDir string) (*domain.FingerprintSet, error) {
	path := domain.FingerprintsFilePath(cacheDir)

	//nolint:gosec // Path is constructed from the trusted cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFingerprintReadFailed.Error()), "path", path)
	}

	var set domain.FingerprintSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFingerprintUnmarshalFailed.Error()), "path", path)
	}
	if set.Projects == nil {
		set.Projects = make(map[domain.Path][]domain.FingerprintInput)
	}
	return &set, nil
}

// Save stores the fingerprints in cacheDir.
func (s *Store) Save(cacheDir string, set domain.FingerprintSet) error {
	for _, inputs := range set.Projects {
		sortInputs(inputs)
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrFingerprintWriteFailed.Error())
	}

	if err := os.MkdirAll(cacheDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error())
	}

	path := domain.FingerprintsFilePath(cacheDir)
	tmp := filepath.Join(cacheDir, "."+domain.FingerprintsFileName+".tmp")
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFingerprintWriteFailed.Error()), "path", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFingerprintWriteFailed.Error()), "path", path)
	}
	return nil
}
