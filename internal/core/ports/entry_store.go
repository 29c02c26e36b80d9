package ports

import "go.trai.ch/modelcache/internal/core/domain"

// EntryStore persists the entry details of a session for the next one.
//
//go:generate mockgen -source=entry_store.go -destination=mocks/mock_entry_store.go -package=mocks
type EntryStore interface {
	// Load reads the entry details stored in cacheDir.
	// Returns nil, nil if not found.
	Load(cacheDir string) (*domain.EntryDetails, error)

	// Save stores the entry details in cacheDir.
	Save(cacheDir string, details domain.EntryDetails) error
}
