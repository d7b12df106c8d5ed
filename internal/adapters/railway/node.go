package railway

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/railfare/internal/adapters/admission"
	"go.trai.ch/railfare/internal/adapters/config"
	"go.trai.ch/railfare/internal/adapters/logger"
	"go.trai.ch/railfare/internal/adapters/session"
	"go.trai.ch/railfare/internal/adapters/telemetry"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/core/ports"
)

// NodeID is the unique identifier for the upstream client Graft node.
const NodeID graft.ID = "adapter.railway"

func init() {
	graft.Register(graft.Node[ports.Upstream]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			admission.NodeID,
			session.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Upstream, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			limiter, err := graft.Dep[ports.Limiter](ctx)
			if err != nil {
				return nil, err
			}
			sessions, err := graft.Dep[ports.SessionProvider](ctx)
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
			return NewClient(cfg.Upstream, limiter, sessions, tracer, log), nil
		},
	})
}
