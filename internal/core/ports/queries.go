package ports

import (
	"context"

	"go.trai.ch/railfare/internal/core/domain"
)

//go:generate mockgen -source=queries.go -destination=mocks/mock_queries.go -package=mocks

// Queries is the query surface shared by the in-process application and the
// daemon client.
type Queries interface {
	// Tickets returns the filtered offerings between two stations.
	Tickets(ctx context.Context, q domain.TicketQuery) ([]domain.TrainInfo, error)
	// Schedule returns the stop list of a run.
	Schedule(ctx context.Context, q domain.ScheduleQuery) (*domain.TrainSchedule, error)
	// Fare resolves the fare of a run between two of its stops. An incomplete
	// fare is returned together with an error wrapping domain.ErrIncompleteFare.
	Fare(ctx context.Context, q domain.FareQuery) (*domain.FareResult, error)
	// Stations searches the station roster.
	Stations(ctx context.Context, keyword string, exact bool, limit int) ([]domain.Station, error)
}
