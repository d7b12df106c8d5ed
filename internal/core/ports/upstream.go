package ports

import (
	"context"

	"go.trai.ch/railfare/internal/core/domain"
)

//go:generate mockgen -source=upstream.go -destination=mocks/mock_upstream.go -package=mocks

// Upstream is the fetch layer in front of the railway service. Every call is
// admitted by the per-endpoint limiter and carries the current session.
type Upstream interface {
	// QueryTickets returns the offerings between two station codes on a departure date.
	QueryTickets(ctx context.Context, fromCode, toCode, date string) ([]domain.TrainInfo, error)
	// QuerySchedule returns the stop list of a run number on a date.
	QuerySchedule(ctx context.Context, runNumber, date string) (*domain.TrainSchedule, error)
	// SearchRunNumbers returns the runs whose code starts with runCode on a date.
	SearchRunNumbers(ctx context.Context, runCode, date string) ([]domain.RunNumberRecord, error)
	// FetchStations returns the full station roster.
	FetchStations(ctx context.Context) ([]domain.Station, error)
}

// CredentialSource fetches a fresh upstream session credential.
type CredentialSource interface {
	FetchCredential(ctx context.Context) (string, error)
}
