// Package modelcache memoizes intermediate models by identity within a session
// and reuses the models of the previous session whose project stayed valid.
package modelcache

import (
	"maps"
	"sync"
	"sync/atomic"

	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Stats counts how the models of a session were served.
type Stats struct {
	// Hits were found in the current table.
	Hits int64
	// Promoted were taken over from the previous session.
	Promoted int64
	// Computed were produced and stored in this session.
	Computed int64
	// Failed computations, writes or reads.
	Failed int64
}

// Controller is the model cache table of one session.
//
// Both tables are guarded by mu. Every insert happens under the write lock,
// so it is visible to every lookup that acquires the lock afterwards.
type Controller struct {
	fingerprints ports.FingerprintController
	codec        ports.Codec
	tracer       ports.Tracer
	metrics      ports.CacheMetrics
	store        *storeHolder

	mu       sync.RWMutex
	current  map[domain.ModelKey]domain.BlockAddress
	previous map[domain.ModelKey]domain.BlockAddress
	// unreadable holds addresses whose block failed to read. They stay in
	// current so the failure repeats instead of recomputing, but are left
	// out of the snapshot so the next session starts without them.
	unreadable map[domain.ModelKey]domain.BlockAddress

	// flights coalesces concurrent computations of the same identity.
	flights singleflight.Group
	closed  atomic.Bool

	hits, promoted, computed, failed atomic.Int64
}

// New creates an empty cache table. The block store is opened through
// openStore on the first read or write.
func New(
	fingerprints ports.FingerprintController,
	codec ports.Codec,
	openStore StoreFactory,
	tracer ports.Tracer,
	metrics ports.CacheMetrics,
) *Controller {
	return &Controller{
		fingerprints: fingerprints,
		codec:        codec,
		tracer:       tracer,
		metrics:      metrics,
		store:        &storeHolder{open: openStore},
		current:      make(map[domain.ModelKey]domain.BlockAddress),
		previous:     make(map[domain.ModelKey]domain.BlockAddress),
		unreadable:   make(map[domain.ModelKey]domain.BlockAddress),
	}
}

// Restore seeds the previous table from the entries of the last session.
// Entries owned by an invalid project are dropped; build-wide entries are
// always kept. No block is read. Restore is meant to be called once, before
// the first lookup.
func (c *Controller) Restore(details *domain.EntryDetails, invalid domain.ProjectSet) (kept, dropped int) {
	if details == nil {
		c.metrics.Restored(0, 0)
		return 0, 0
	}

	c.mu.Lock()
	for _, entry := range details.Models {
		key := entry.Key()
		if key.HasProject() && invalid.Contains(key.Project) {
			dropped++
			continue
		}
		c.previous[key] = entry.Address
		kept++
	}
	c.mu.Unlock()

	c.metrics.Restored(kept, dropped)
	return kept, dropped
}

// locate returns the address recorded for key. An entry found only in the
// previous table is promoted into the current one.
func (c *Controller) locate(key domain.ModelKey) (domain.BlockAddress, ports.LoadSource, bool) {
	c.mu.RLock()
	addr, ok := c.current[key]
	c.mu.RUnlock()
	if ok {
		return addr, ports.SourceCurrent, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if addr, ok := c.current[key]; ok {
		return addr, ports.SourceCurrent, true
	}
	addr, ok = c.previous[key]
	if !ok {
		return domain.BlockAddress{}, "", false
	}
	c.current[key] = addr
	return addr, ports.SourcePrevious, true
}

func (c *Controller) record(key domain.ModelKey, addr domain.BlockAddress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current[key] = addr
}

func (c *Controller) markUnreadable(key domain.ModelKey, addr domain.BlockAddress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unreadable[key] = addr
}

// Snapshot returns a copy of the current table without the entries whose
// block could not be read.
func (c *Controller) Snapshot() map[domain.ModelKey]domain.BlockAddress {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := maps.Clone(c.current)
	for key, addr := range c.unreadable {
		if snapshot[key] == addr {
			delete(snapshot, key)
		}
	}
	return snapshot
}

// Entries returns the current table as entries sorted by key.
func (c *Controller) Entries() []domain.ModelEntry {
	return domain.NewEntryDetails(c.Snapshot()).Models
}

// PreviousLen returns the number of entries restored from the last session.
func (c *Controller) PreviousLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.previous)
}

// Stats returns the counters of this session so far.
func (c *Controller) Stats() Stats {
	return Stats{
		Hits:     c.hits.Load(),
		Promoted: c.promoted.Load(),
		Computed: c.computed.Load(),
		Failed:   c.failed.Load(),
	}
}

// StoreOpened reports whether the block store was created.
func (c *Controller) StoreOpened() bool {
	return c.store.opened()
}

// Close releases the block store if it was opened. Lookups fail with
// domain.ErrCacheClosed afterwards. Calling Close again does nothing.
func (c *Controller) Close() error {
	c.closed.Store(true)
	return c.store.close()
}
