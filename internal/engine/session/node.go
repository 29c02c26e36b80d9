package session

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modelcache/internal/adapters/entries"
	"go.trai.ch/modelcache/internal/adapters/fingerprint"
	"go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/adapters/logger"
	"go.trai.ch/modelcache/internal/adapters/telemetry"
	"go.trai.ch/modelcache/internal/core/ports"
)

// NodeID is the unique identifier for the session manager Graft node.
const NodeID graft.ID = "engine.session"

func init() {
	graft.Register(graft.Node[*Manager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			entries.NodeID,
			fingerprint.StoreNodeID,
			fs.HasherNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Manager, error) {
			entryStore, err := graft.Dep[ports.EntryStore](ctx)
			if err != nil {
				return nil, err
			}
			fpStore, err := graft.Dep[ports.FingerprintStore](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(entryStore, fpStore, hasher, log, tracer), nil
		},
	})
}
