package codec

import "go.trai.ch/railfare/internal/core/domain"

// RawRunNumber is one entry of a run-number search response.
type RawRunNumber struct {
	RunNumber   string `json:"train_no"`
	RunCode     string `json:"station_train_code"`
	Date        string `json:"date"`
	FromStation string `json:"from_station"`
	ToStation   string `json:"to_station"`
}

// ParseRunNumbers converts search results into run-number records for date.
// Entries without a run number or run code are skipped.
func ParseRunNumbers(raw []RawRunNumber, date string) []domain.RunNumberRecord {
	out := make([]domain.RunNumberRecord, 0, len(raw))
	for _, r := range raw {
		if r.RunNumber == "" || r.RunCode == "" {
			continue
		}
		d := date
		if r.Date != "" {
			d = domain.ExpandCompactDate(r.Date)
		}
		out = append(out, domain.RunNumberRecord{
			Date:        d,
			RunNumber:   r.RunNumber,
			RunCode:     r.RunCode,
			FromStation: r.FromStation,
			ToStation:   r.ToStation,
		})
	}
	return out
}
