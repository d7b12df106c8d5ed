package linear

import (
	"encoding/json"
	"io"
	"time"

	"go.trai.ch/railfare/internal/core/domain"
)

// JSONRenderer implements ports.Renderer by writing results as indented JSON.
// Span events are ignored.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// OnSpanStart does nothing.
func (*JSONRenderer) OnSpanStart(_, _, _ string, _ time.Time) {}

// OnSpanEnd does nothing.
func (*JSONRenderer) OnSpanEnd(_ string, _ time.Time, _ error) {}

// RenderTickets writes trains.
func (*JSONRenderer) RenderTickets(w io.Writer, trains []domain.TrainInfo) error {
	if trains == nil {
		trains = []domain.TrainInfo{}
	}
	return encode(w, trains)
}

// RenderSchedule writes schedule.
func (*JSONRenderer) RenderSchedule(w io.Writer, schedule *domain.TrainSchedule) error {
	return encode(w, schedule)
}

// RenderFare writes result.
func (*JSONRenderer) RenderFare(w io.Writer, result *domain.FareResult) error {
	return encode(w, result)
}

// RenderStations writes stations.
func (*JSONRenderer) RenderStations(w io.Writer, stations []domain.Station) error {
	if stations == nil {
		stations = []domain.Station{}
	}
	return encode(w, stations)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
