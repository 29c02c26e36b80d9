package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modelcache/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/modelcache/internal/adapters/entries" //nolint:depguard // Wired in app layer
	"go.trai.ch/modelcache/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/modelcache/internal/core/ports"
	"go.trai.ch/modelcache/internal/engine/configurator"
	"go.trai.ch/modelcache/internal/engine/session"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the CLI needs to run.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			session.NodeID,
			configurator.NodeID,
			entries.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := graft.Dep[*session.Manager](ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := graft.Dep[*configurator.Configurator](ctx)
	if err != nil {
		return nil, err
	}
	entryStore, err := graft.Dep[ports.EntryStore](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, sessions, cfg, entryStore, log), nil
}
