package query

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/railfare/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/adapters/railway"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/adapters/runnumber" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/adapters/stations"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/adapters/store"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

// NodeID is the unique identifier for the query service Graft node.
const NodeID graft.ID = "engine.query"

func init() {
	graft.Register(graft.Node[*Service]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cache.NodeID,
			railway.NodeID,
			stations.NodeID,
			runnumber.NodeID,
			store.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Service, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			tree, err := graft.Dep[*cache.Tree](ctx)
			if err != nil {
				return nil, err
			}
			upstream, err := graft.Dep[ports.Upstream](ctx)
			if err != nil {
				return nil, err
			}
			index, err := graft.Dep[*stations.Index](ctx)
			if err != nil {
				return nil, err
			}
			runs, err := graft.Dep[ports.RunNumberLookup](ctx)
			if err != nil {
				return nil, err
			}
			st, err := graft.Dep[ports.Store](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewService(upstream, index, runs, st, tree, cfg.Cache, tracer, log), nil
		},
	})
}
