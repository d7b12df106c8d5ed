package ports

import (
	"io"
	"time"

	"go.trai.ch/railfare/internal/core/domain"
)

//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks

// Renderer presents query results and progress.
type Renderer interface {
	// OnSpanStart is called when a traced operation begins.
	OnSpanStart(spanID, parentID, name string, startTime time.Time)
	// OnSpanEnd is called when a traced operation finishes.
	OnSpanEnd(spanID string, endTime time.Time, err error)

	RenderTickets(w io.Writer, trains []domain.TrainInfo) error
	RenderSchedule(w io.Writer, schedule *domain.TrainSchedule) error
	RenderFare(w io.Writer, result *domain.FareResult) error
	RenderStations(w io.Writer, stations []domain.Station) error
}
