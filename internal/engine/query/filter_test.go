package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/engine/query"
)

func TestCompileRunCodePattern(t *testing.T) {
	tests := []struct {
		pattern string
		match   []string
		reject  []string
	}{
		{pattern: "G*", match: []string{"G", "G1", "G6123"}, reject: []string{"D1", "GX1"}},
		{pattern: "_1", match: []string{"G1", "K1", "71"}, reject: []string{"G11", "1"}},
		{pattern: "G_2", match: []string{"G12", "G92"}, reject: []string{"GA2", "G2"}},
		{pattern: "k1234", match: []string{"K1234"}, reject: []string{"K12345", "K123"}},
		{pattern: "C7*", match: []string{"C7", "C701"}, reject: []string{"C8"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := query.CompileRunCodePattern(tt.pattern)
			require.NoError(t, err)
			for _, code := range tt.match {
				assert.True(t, re.MatchString(code), "%s should match %s", tt.pattern, code)
			}
			for _, code := range tt.reject {
				assert.False(t, re.MatchString(code), "%s should not match %s", tt.pattern, code)
			}
		})
	}
}

func train(code, from, to, depart string) domain.TrainInfo {
	return domain.TrainInfo{
		RunCode:     code,
		FromStation: from,
		ToStation:   to,
		DepartTime:  depart,
		FromStop:    &domain.StopInfo{StationName: from, DepartTime: depart},
	}
}

func codesOf(trains []domain.TrainInfo) []string {
	out := make([]string, 0, len(trains))
	for _, t := range trains {
		out = append(out, t.RunCode)
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	trains := []domain.TrainInfo{
		train("G2", "广州南", "阳江", "09:10"),
		train("K1234", "广州", "阳江", "08:00"),
		train("D7", "广州南", "阳江北", "12:30"),
		train("G100", "广州东", "阳江", "--:--"),
	}

	tests := []struct {
		name     string
		query    domain.TicketQuery
		fromName string
		toName   string
		want     []string
	}{
		{name: "no conditions sorts by departure", want: []string{"G100", "K1234", "G2", "D7"}},
		{name: "pattern union", query: domain.TicketQuery{Trains: []string{"G*", "K1234"}}, want: []string{"G100", "K1234", "G2"}},
		{name: "one station matches either end", query: domain.TicketQuery{Stations: []string{"阳江北"}}, want: []string{"D7"}},
		{name: "two stations need both ends", query: domain.TicketQuery{Stations: []string{"广州南", "阳江"}}, want: []string{"G2"}},
		{name: "time window", query: domain.TicketQuery{DepartAfter: "08:30", DepartBefore: "12:00"}, want: []string{"G2"}},
		{name: "substring names", fromName: "广州", toName: "阳江", want: []string{"G100", "K1234", "G2", "D7"}},
		{name: "exact names", query: domain.TicketQuery{Exact: true}, fromName: "广州南", toName: "阳江", want: []string{"G2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := query.NewFilter(&tt.query, tt.fromName, tt.toName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, codesOf(f.Apply(trains)))
		})
	}
}

func TestFilter_ApplyDropsRepeatedOfferings(t *testing.T) {
	first := train("G2", "广州南", "阳江", "09:10")
	first.TrainDate = "2026-10-20"
	repeat := first
	repeat.Tickets = nil
	nextDay := first
	nextDay.TrainDate = "2026-10-21"

	f, err := query.NewFilter(&domain.TicketQuery{}, "", "")
	require.NoError(t, err)

	got := f.Apply([]domain.TrainInfo{first, repeat, nextDay})
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, "2026-10-21", got[1].TrainDate)
}

func TestNewFilter_InvalidClock(t *testing.T) {
	_, err := query.NewFilter(&domain.TicketQuery{DepartAfter: "8h"}, "", "")
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
}
