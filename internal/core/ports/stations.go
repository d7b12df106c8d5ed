package ports

import (
	"context"

	"go.trai.ch/railfare/internal/core/domain"
)

//go:generate mockgen -source=stations.go -destination=mocks/mock_stations.go -package=mocks

// StationLookup resolves station names and codes.
type StationLookup interface {
	// LookupByName returns the station with exactly this name.
	LookupByName(ctx context.Context, name string) (*domain.Station, error)
	// LookupByNames returns the stations for the given names. Unknown names are
	// omitted, so callers compare lengths to detect gaps.
	LookupByNames(ctx context.Context, names []string) ([]domain.Station, error)
	// LookupByCodeOrName accepts either a telecode or a station name.
	LookupByCodeOrName(ctx context.Context, token string) (*domain.Station, error)
	// Search returns stations matching a keyword on name, pinyin, abbreviation or city.
	Search(ctx context.Context, keyword string, exact bool, limit int) ([]domain.Station, error)
}

// RunNumberLookup resolves public run codes to upstream run numbers.
type RunNumberLookup interface {
	// Lookup returns the runs for code on date. exact restricts to codes equal to code,
	// otherwise codes starting with code are returned.
	Lookup(ctx context.Context, code, date string, exact bool) ([]domain.RunNumberRecord, error)
}
