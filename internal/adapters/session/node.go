package session

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/railfare/internal/adapters/admission"
	"go.trai.ch/railfare/internal/adapters/config"
	"go.trai.ch/railfare/internal/adapters/logger"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

// NodeID is the unique identifier for the session manager Graft node.
const NodeID graft.ID = "adapter.session"

func init() {
	graft.Register(graft.Node[ports.SessionProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, admission.NodeID},
		Run: func(ctx context.Context) (ports.SessionProvider, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			limiter, err := graft.Dep[ports.Limiter](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(NewCookieSource(cfg.Upstream, limiter), log, cfg.Session.Window), nil
		},
	})
}
