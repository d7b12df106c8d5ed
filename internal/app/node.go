package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/railfare/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/railfare/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/railfare/internal/adapters/stations" //nolint:depguard // Wired in app layer
	"go.trai.ch/railfare/internal/adapters/store"    //nolint:depguard // Wired in app layer
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
	"go.trai.ch/railfare/internal/engine/fare"
	"go.trai.ch/railfare/internal/engine/query"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	Config *domain.Config
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			query.NodeID,
			fare.NodeID,
			stations.NodeID,
			store.NodeID,
			config.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	svc, err := graft.Dep[*query.Service](ctx)
	if err != nil {
		return nil, err
	}
	engine, err := graft.Dep[*fare.Engine](ctx)
	if err != nil {
		return nil, err
	}
	index, err := graft.Dep[*stations.Index](ctx)
	if err != nil {
		return nil, err
	}
	st, err := graft.Dep[ports.Store](ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(svc, engine, index, st, cfg, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}
	return &Components{
		App:    app,
		Logger: log,
		Config: cfg,
	}, nil
}
