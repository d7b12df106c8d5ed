package ports

import (
	"time"

	"go.trai.ch/railfare/internal/core/domain"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// Store persists stations, run numbers and query snapshots.
type Store interface {
	// Stations returns the stored roster and its digest. A missing roster is not an error.
	Stations() ([]domain.Station, uint64, error)
	// PutStations replaces the stored roster.
	PutStations(stations []domain.Station) (uint64, error)
	// StationsPath is the file the roster is stored in.
	StationsPath() string

	// RunNumbers returns the stored runs for date whose code equals code, or starts
	// with it when exact is false.
	RunNumbers(date, code string, exact bool) ([]domain.RunNumberRecord, error)
	// PutRunNumbers stores records, skipping any (date, run code) pair already present.
	// It returns how many records were added.
	PutRunNumbers(records []domain.RunNumberRecord) (int, error)

	// PutSnapshot stores a snapshot, replacing one with the same date, query key and category.
	PutSnapshot(snapshot domain.Snapshot) error
	// Snapshot returns the stored snapshot or nil when absent.
	Snapshot(date, queryKey, category string) (*domain.Snapshot, error)

	// Cleanup removes run numbers and snapshots older than the retention windows.
	Cleanup(now time.Time, retention domain.RetentionConfig) (domain.CleanupReport, error)
}
