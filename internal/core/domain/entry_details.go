package domain

import (
	"slices"
	"time"
)

// EntryDetailsVersion is the current format version of persisted entry details.
const EntryDetailsVersion = 1

// ModelEntry is one persisted (identity, address) pair.
type ModelEntry struct {
	Project Path         `json:"project,omitzero"`
	Name    string       `json:"name"`
	Address BlockAddress `json:"address"`
}

// Key returns the identity of the entry.
func (e ModelEntry) Key() ModelKey {
	return NewModelKey(e.Project, e.Name)
}

// EntryDetails is the metadata a session persists for the next one.
type EntryDetails struct {
	Version   int          `json:"version"`
	SessionID string       `json:"session_id,omitzero"`
	BuildHash string       `json:"build_hash,omitzero"`
	CreatedAt time.Time    `json:"created_at,omitzero"`
	Models    []ModelEntry `json:"models"`
}

// NewEntryDetails builds entry details from a snapshot of the current table.
// Models are sorted by key so the persisted form is deterministic.
func NewEntryDetails(snapshot map[ModelKey]BlockAddress) EntryDetails {
	models := make([]ModelEntry, 0, len(snapshot))
	for key, addr := range snapshot {
		models = append(models, ModelEntry{Project: key.Project, Name: key.Name, Address: addr})
	}
	SortEntries(models)
	return EntryDetails{
		Version: EntryDetailsVersion,
		Models:  models,
	}
}

// ModelMap returns the models as a map keyed by identity.
func (d *EntryDetails) ModelMap() map[ModelKey]BlockAddress {
	if d == nil {
		return nil
	}
	m := make(map[ModelKey]BlockAddress, len(d.Models))
	for _, e := range d.Models {
		m[e.Key()] = e.Address
	}
	return m
}

// SortEntries sorts entries by key.
func SortEntries(entries []ModelEntry) {
	slices.SortFunc(entries, func(a, b ModelEntry) int {
		switch ka, kb := a.Key(), b.Key(); {
		case ka.Less(kb):
			return -1
		case kb.Less(ka):
			return 1
		default:
			return 0
		}
	})
}
