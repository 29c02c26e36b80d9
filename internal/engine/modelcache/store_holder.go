package modelcache

import (
	"sync"

	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// StoreFactory opens the block store on first use.
type StoreFactory func() (ports.BlockStore, error)

// storeHolder creates the block store at most once and closes it at most once.
// A failed open is not remembered, so the next access tries again.
type storeHolder struct {
	open StoreFactory

	mu     sync.Mutex
	store  ports.BlockStore
	closed bool
}

func (h *storeHolder) get() (ports.BlockStore, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, domain.ErrCacheClosed
	}
	if h.store == nil {
		store, err := h.open()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
		}
		h.store = store
	}
	return h.store, nil
}

func (h *storeHolder) opened() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store != nil
}

// close releases the store if it was ever opened.
func (h *storeHolder) close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	if h.store == nil {
		return nil
	}
	return h.store.Close()
}
