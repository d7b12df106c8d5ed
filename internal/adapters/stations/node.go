package stations

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/railfare/internal/adapters/logger"
	"go.trai.ch/railfare/internal/adapters/railway"
	"go.trai.ch/railfare/internal/adapters/store"
	"go.trai.ch/railfare/internal/core/ports"
)

// NodeID is the unique identifier for the station index Graft node.
const NodeID graft.ID = "adapter.stations"

func init() {
	graft.Register(graft.Node[*Index]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{store.NodeID, railway.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Index, error) {
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
			return NewIndex(st, upstream, log), nil
		},
	})
}
