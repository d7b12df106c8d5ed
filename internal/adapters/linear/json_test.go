package linear_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/railfare/internal/adapters/linear"
	"go.trai.ch/railfare/internal/core/domain"
)

func TestJSONRenderer_Fare(t *testing.T) {
	r := linear.NewJSONRenderer()
	var buf bytes.Buffer

	require.NoError(t, r.RenderFare(&buf, &domain.FareResult{
		Train:      fareTrain(),
		Legs:       []domain.TrainInfo{leg("广州南", "江门", 1200), leg("江门", "阳江", 3000)},
		TotalPrice: 4200,
		RawPrice:   4500,
		Complete:   true,
	}))

	var decoded domain.FareResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, domain.Price(4200), decoded.TotalPrice)
	assert.Len(t, decoded.Legs, 2)
	assert.Contains(t, buf.String(), `"total_price": 42.00`)
	assert.Contains(t, buf.String(), "广州南")
}

func TestJSONRenderer_EmptyListsAreArrays(t *testing.T) {
	r := linear.NewJSONRenderer()

	var trains, stations bytes.Buffer
	require.NoError(t, r.RenderTickets(&trains, nil))
	require.NoError(t, r.RenderStations(&stations, nil))

	assert.Equal(t, "[]\n", trains.String())
	assert.Equal(t, "[]\n", stations.String())
}
