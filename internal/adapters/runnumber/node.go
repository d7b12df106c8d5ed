package runnumber

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/railfare/internal/adapters/logger"
	"go.trai.ch/railfare/internal/adapters/railway"
	"go.trai.ch/railfare/internal/adapters/store"
	"go.trai.ch/railfare/internal/core/ports"
)

// NodeID is the unique identifier for the run-number lookup Graft node.
const NodeID graft.ID = "adapter.runnumber"

func init() {
	graft.Register(graft.Node[ports.RunNumberLookup]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{store.NodeID, railway.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.RunNumberLookup, error) {
			st, err := graft.Dep[ports.Store](ctx)
			if err != nil {
				return nil, err
			}
			upstream, err := graft.Dep[ports.Upstream](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(st, upstream, log), nil
		},
	})
}
