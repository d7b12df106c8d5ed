package fare

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/railfare/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/adapters/stations"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/railfare/internal/core/ports"
	"go.trai.ch/railfare/internal/engine/query"
)

// NodeID is the unique identifier for the fare engine Graft node.
const NodeID graft.ID = "engine.fare"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			query.NodeID,
			stations.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			svc, err := graft.Dep[*query.Service](ctx)
			if err != nil {
				return nil, err
			}
			index, err := graft.Dep[*stations.Index](ctx)
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
			return NewEngine(svc, index, tracer, log), nil
		},
	})
}
