package admission

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/railfare/internal/adapters/cache"
	"go.trai.ch/railfare/internal/adapters/config"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

// NodeID is the unique identifier for the admission limiter Graft node.
const NodeID graft.ID = "adapter.admission"

func init() {
	graft.Register(graft.Node[ports.Limiter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cache.NodeID, config.NodeID},
		Run: func(ctx context.Context) (ports.Limiter, error) {
			tree, err := graft.Dep[*cache.Tree](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(tree, cfg), nil
		},
	})
}
