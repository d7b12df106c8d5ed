package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestFareQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   domain.FareQuery
		wantErr bool
	}{
		{name: "run code", query: domain.FareQuery{Date: "2026-10-20", RunCode: "K1234", From: "广州南", To: "阳江"}},
		{name: "run number", query: domain.FareQuery{Date: "2026-10-20", RunNumber: "6i000K123400", From: "广州南", To: "阳江"}},
		{name: "missing run", query: domain.FareQuery{Date: "2026-10-20", From: "广州南", To: "阳江"}, wantErr: true},
		{name: "same ends", query: domain.FareQuery{Date: "2026-10-20", RunCode: "K1234", From: "阳江", To: "阳江"}, wantErr: true},
		{name: "bad date", query: domain.FareQuery{Date: "20261020", RunCode: "K1234", From: "广州南", To: "阳江"}, wantErr: true},
		{
			name:    "empty waypoint",
			query:   domain.FareQuery{Date: "2026-10-20", RunCode: "K1234", From: "广州南", To: "阳江", Waypoints: []string{""}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, domain.ErrInvalidQuery)
			assert.True(t, domain.IsResolution(err))
		})
	}
}

func TestTicketQuery_ValidateReportsFields(t *testing.T) {
	q := domain.TicketQuery{Date: "2026-10-20", From: "广州南", DepartAfter: "8h"}

	err := q.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidQuery)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Contains(t, zErr.Metadata()["fields"], "To:required")
	assert.Contains(t, zErr.Metadata()["fields"], "DepartAfter:datetime")
}

func TestTicketQuery_ValidateNilKeepsSentinel(t *testing.T) {
	var q *domain.TicketQuery

	err := q.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
	assert.True(t, domain.IsResolution(err))

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.NotEmpty(t, zErr.Metadata()["cause"])
}
