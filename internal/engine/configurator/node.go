package configurator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modelcache/internal/adapters/config"
	"go.trai.ch/modelcache/internal/adapters/fs"
	"go.trai.ch/modelcache/internal/core/ports"
)

// NodeID is the unique identifier for the configurator Graft node.
const NodeID graft.ID = "engine.configurator"

func init() {
	graft.Register(graft.Node[*Configurator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, fs.ResolverNodeID, fs.HasherNodeID},
		Run: func(ctx context.Context) (*Configurator, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*fs.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, resolver, hasher), nil
		},
	})
}
