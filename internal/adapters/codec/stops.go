package codec

import (
	"bytes"
	"strconv"
	"strings"

	"go.trai.ch/railfare/internal/core/domain"
)

const minutesPerDay = 24 * 60

// RawStop is one entry of a schedule query response.
type RawStop struct {
	StationName   string  `json:"station_name"`
	ArriveTime    string  `json:"arrive_time"`
	StartTime     string  `json:"start_time"`
	RunningTime   string  `json:"running_time"`
	ArriveDayDiff DayDiff `json:"arrive_day_diff"`
	RunCode       string  `json:"station_train_code"`
}

// DayDiff accepts a day offset encoded either as a JSON number or a string.
type DayDiff int

// UnmarshalJSON implements json.Unmarshaler.
func (d *DayDiff) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return domain.Annotate(domain.ErrDecodeRecord, "arrive_day_diff", s)
	}
	*d = DayDiff(n)
	return nil
}

// ParseStops converts a schedule response into stop infos in route order.
func ParseStops(raw []RawStop) ([]domain.StopInfo, error) {
	stops := make([]domain.StopInfo, 0, len(raw))
	for i, r := range raw {
		if r.StationName == "" {
			return nil, domain.Annotate(domain.ErrDecodeRecord, "stop", i, "reason", "missing station name")
		}
		stopover, err := StopoverMinutes(r.ArriveTime, r.StartTime)
		if err != nil {
			return nil, domain.Annotate(err, "stop", i, "station", r.StationName)
		}
		running := r.RunningTime
		if running == "" {
			running = Placeholder
		}
		stops = append(stops, domain.StopInfo{
			StationName:     r.StationName,
			ArriveTime:      r.ArriveTime,
			DepartTime:      r.StartTime,
			StopoverMinutes: stopover,
			RunningTime:     running,
			DayOffset:       int(r.ArriveDayDiff),
			RunCode:         r.RunCode,
		})
	}
	return stops, nil
}

// StopoverMinutes returns how long a train dwells between arrive and depart,
// both "HH:MM". A departure earlier than the arrival crosses midnight. Either
// value missing yields zero.
func StopoverMinutes(arrive, depart string) (int, error) {
	if arrive == domain.NoTime || depart == domain.NoTime || arrive == "" || depart == "" {
		return 0, nil
	}
	a, err := ClockMinutes(arrive)
	if err != nil {
		return 0, err
	}
	d, err := ClockMinutes(depart)
	if err != nil {
		return 0, err
	}
	if d < a {
		d += minutesPerDay
	}
	return d - a, nil
}

// ClockMinutes converts "HH:MM" into minutes after midnight.
func ClockMinutes(clock string) (int, error) {
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, domain.Annotate(domain.ErrDecodeRecord, "clock", clock)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 47 {
		return 0, domain.Annotate(domain.ErrDecodeRecord, "clock", clock)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, domain.Annotate(domain.ErrDecodeRecord, "clock", clock)
	}
	return hours*60 + minutes, nil
}
