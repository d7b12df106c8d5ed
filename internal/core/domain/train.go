package domain

import (
	"slices"
	"strings"
	"time"
)

// DateLayout is the canonical travel date layout.
const DateLayout = "2006-01-02"

// CompactDateLayout is the date layout used inside upstream records.
const CompactDateLayout = "20060102"

// NoTime marks a missing arrival or departure clock value in a stop list.
const NoTime = "----"

// ParseDate parses a travel date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Annotate(ErrInvalidQuery, "date", s)
	}
	return t, nil
}

// ShiftDate returns date moved by days.
func ShiftDate(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}

// ExpandCompactDate converts a YYYYMMDD value into DateLayout. Values that do
// not parse are returned unchanged.
func ExpandCompactDate(s string) string {
	t, err := time.Parse(CompactDateLayout, s)
	if err != nil {
		return s
	}
	return t.Format(DateLayout)
}

// Ticket is one seat class offered on a train for a station pair.
type Ticket struct {
	SeatType string `json:"seat_type"`
	SeatCode string `json:"seat_code"`
	Price    Price  `json:"price"`
	Stock    string `json:"stock"`
}

// StopInfo describes one stop of a run.
type StopInfo struct {
	StationName     string `json:"station_name"`
	ArriveTime      string `json:"arrive_time"`
	DepartTime      string `json:"depart_time"`
	StopoverMinutes int    `json:"stopover_minutes"`
	RunningTime     string `json:"running_time"`
	DayOffset       int    `json:"day_offset"`
	RunCode         string `json:"run_code"`
}

// DepartDayOffset returns the day offset of the departure from this stop. A
// departure clock earlier than the arrival clock falls on the following day.
func (s StopInfo) DepartDayOffset() int {
	if s.ArriveTime == "" || s.ArriveTime == NoTime || s.DepartTime == "" || s.DepartTime == NoTime {
		return s.DayOffset
	}
	if s.DepartTime < s.ArriveTime {
		return s.DayOffset + 1
	}
	return s.DayOffset
}

// TrainSchedule is the ordered stop list of a run on a date.
type TrainSchedule struct {
	RunNumber string     `json:"run_number"`
	RunCode   string     `json:"run_code"`
	Date      string     `json:"date"`
	Stops     []StopInfo `json:"stops"`

	index map[string]int
}

// NewTrainSchedule builds a schedule and indexes its stops by station name.
func NewTrainSchedule(runNumber, date string, stops []StopInfo) *TrainSchedule {
	s := &TrainSchedule{
		RunNumber: runNumber,
		Date:      date,
		Stops:     stops,
	}
	if len(stops) > 0 {
		s.RunCode = stops[0].RunCode
	}
	s.reindex()
	return s
}

func (s *TrainSchedule) reindex() {
	s.index = make(map[string]int, len(s.Stops))
	for i, stop := range s.Stops {
		if _, ok := s.index[stop.StationName]; !ok {
			s.index[stop.StationName] = i
		}
	}
}

// IndexOf returns the position of the stop named name.
func (s *TrainSchedule) IndexOf(name string) (int, bool) {
	if s.index == nil {
		s.reindex()
	}
	i, ok := s.index[name]
	return i, ok
}

// Stop returns the stop named name.
func (s *TrainSchedule) Stop(name string) (StopInfo, bool) {
	i, ok := s.IndexOf(name)
	if !ok {
		return StopInfo{}, false
	}
	return s.Stops[i], true
}

// Between returns the stops strictly between positions from and to.
func (s *TrainSchedule) Between(from, to int) []StopInfo {
	if to-from < 2 {
		return nil
	}
	return slices.Clone(s.Stops[from+1 : to])
}

// TrainInfo is one train offering for a station pair on a departure date.
type TrainInfo struct {
	RunNumber   string     `json:"run_number"`
	RunCode     string     `json:"run_code"`
	TrainDate   string     `json:"train_date"`
	DepartDate  string     `json:"depart_date"`
	StartCode   string     `json:"start_station_code"`
	EndCode     string     `json:"end_station_code"`
	FromStation string     `json:"from_station"`
	FromCode    string     `json:"from_station_code"`
	ToStation   string     `json:"to_station"`
	ToCode      string     `json:"to_station_code"`
	DepartTime  string     `json:"depart_time"`
	ArriveTime  string     `json:"arrive_time"`
	Duration    string     `json:"duration"`
	Bookable    bool       `json:"bookable"`
	Tickets     []Ticket   `json:"tickets"`
	FromStop    *StopInfo  `json:"from_stop,omitempty"`
	ToStop      *StopInfo  `json:"to_stop,omitempty"`
	Stops       []StopInfo `json:"stops,omitempty"`
}

// Key returns the identity of the offering.
func (t *TrainInfo) Key() string {
	return strings.Join([]string{t.RunCode, t.TrainDate, t.FromStation, t.ToStation}, "|")
}

// LowestPrice returns the cheapest seat price. ok is false when no seat class is priced.
func (t *TrainInfo) LowestPrice() (Price, bool) {
	var lowest Price
	found := false
	for _, ticket := range t.Tickets {
		if ticket.Price <= 0 {
			continue
		}
		if !found || ticket.Price < lowest {
			lowest = ticket.Price
			found = true
		}
	}
	return lowest, found
}

// Matches reports whether the offering is the given run between the given station codes.
func (t *TrainInfo) Matches(runNumber, fromCode, toCode string) bool {
	return t.RunNumber == runNumber && t.FromCode == fromCode && t.ToCode == toCode
}

// RunNumberRecord maps a public run code to the upstream run number on a date.
type RunNumberRecord struct {
	Date        string `json:"date"`
	RunNumber   string `json:"run_number"`
	RunCode     string `json:"run_code"`
	FromStation string `json:"from_station"`
	ToStation   string `json:"to_station"`
}
