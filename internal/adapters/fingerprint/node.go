package fingerprint

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modelcache/internal/core/ports"
)

// StoreNodeID is the unique identifier for the fingerprint store Graft node.
const StoreNodeID graft.ID = "adapter.fingerprint_store"

func init() {
	graft.Register(graft.Node[ports.FingerprintStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FingerprintStore, error) {
			return NewStore(), nil
		},
	})
}
