package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/railfare/internal/adapters/config"
	"go.trai.ch/railfare/internal/core/domain"
)

// NodeID is the unique identifier for the cache Graft node.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[*Tree]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (*Tree, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			t := NewFromConfig(cfg.Cache)
			t.Start(ctx)
			return t, nil
		},
	})
}
