package ranking_test

import (
	"parkflow/internal/domains/lot/model"
	"parkflow/internal/domains/lot/ranking"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"
)

func lotAt(id string, lat, lng float64) model.Lot {
	return model.Lot{
		ID:        id,
		Name:      "Lot " + id,
		Latitude:  null.FloatFrom(lat),
		Longitude: null.FloatFrom(lng),
	}
}

func ids(ranked []ranking.Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Lot.ID
	}

	return out
}

func TestDistance(t *testing.T) {
	jakarta := ranking.Position{Lat: -6.2088, Lng: 106.8456}
	bandung := ranking.Position{Lat: -6.9175, Lng: 107.6191}

	assert.Zero(t, ranking.Distance(jakarta, jakarta))
	assert.InDelta(t, ranking.Distance(jakarta, bandung), ranking.Distance(bandung, jakarta), 1e-9)
	assert.InDelta(t, 116.0, ranking.Distance(jakarta, bandung), 2.0)

	oneDegree := ranking.Distance(ranking.Position{}, ranking.Position{Lat: 1})
	assert.InDelta(t, 111.19, oneDegree, 0.01)
}

func TestByDistance(t *testing.T) {
	user := ranking.Position{Lat: 0, Lng: 0}

	tests := []struct {
		name string
		lots []model.Lot
		want []string
	}{
		{
			name: "nearest first",
			lots: []model.Lot{lotAt("far", 0, 2), lotAt("near", 0, 0.5), lotAt("mid", 1, 0)},
			want: []string{"near", "mid", "far"},
		},
		{
			name: "missing coordinates excluded",
			lots: []model.Lot{
				{ID: "nowhere", Latitude: null.FloatFrom(1)},
				lotAt("here", 0, 0),
				{ID: "blank"},
			},
			want: []string{"here"},
		},
		{
			name: "ties keep input order",
			lots: []model.Lot{lotAt("b", 0, 1), lotAt("a", 1, 0), lotAt("c", 0, -1)},
			want: []string{"b", "a", "c"},
		},
		{
			name: "empty input",
			lots: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ranking.ByDistance(user, tt.lots)

			assert.Equal(t, tt.want, ids(got))

			for i := 1; i < len(got); i++ {
				assert.LessOrEqual(t, got[i-1].DistanceKm, got[i].DistanceKm)
			}
		})
	}
}

func TestByDistance_DoesNotReorderInputAndIsRepeatable(t *testing.T) {
	lots := []model.Lot{lotAt("far", 0, 2), lotAt("near", 0, 0.5)}
	before := slices.Clone(lots)
	user := ranking.Position{}

	first := ranking.ByDistance(user, lots)
	second := ranking.ByDistance(user, lots)

	assert.Equal(t, before, lots)
	assert.Equal(t, first, second)
}

func TestByQuery(t *testing.T) {
	lots := []model.Lot{
		{ID: "1", Name: "Central Plaza", Address: "Jl. Sudirman, Jakarta"},
		{ID: "2", Name: "Harbor Park", Address: "Tanjung Priok, Jakarta"},
		{ID: "3", Name: "Mall Parking", Address: "Dago, Bandung"},
		{ID: "4", Name: "Bandung", Address: "Cihampelas, Bandung"},
	}

	t.Run("matches first and exact match focused", func(t *testing.T) {
		res := ranking.ByQuery("  BANDUNG ", lots)

		got := make([]string, len(res.Lots))
		for i, l := range res.Lots {
			got[i] = l.ID
		}

		assert.Equal(t, []string{"3", "4", "1", "2"}, got)
		require.NotNil(t, res.Focus)
		assert.Equal(t, "4", res.Focus.ID)
	})

	t.Run("first match focused without exact match", func(t *testing.T) {
		res := ranking.ByQuery("jakarta", lots)

		require.NotNil(t, res.Focus)
		assert.Equal(t, "1", res.Focus.ID)
	})

	t.Run("no match", func(t *testing.T) {
		res := ranking.ByQuery("surabaya", lots)

		assert.Nil(t, res.Focus)
		assert.Equal(t, lots, res.Lots)
	})

	t.Run("empty query", func(t *testing.T) {
		res := ranking.ByQuery("   ", lots)

		assert.Nil(t, res.Focus)
		assert.Equal(t, lots, res.Lots)
	})
}

func TestSuggestions(t *testing.T) {
	lots := []model.Lot{
		{Address: "Dago, Bandung"},
		{Address: "Dago, Bandung"},
		{Address: ""},
		{Address: "Sudirman, Jakarta"},
		{Address: "Cihampelas, Bandung"},
		{Address: "Braga, Bandung"},
		{Address: "Buah Batu, Bandung"},
		{Address: "Setiabudi, Bandung"},
		{Address: "Pasteur, Bandung"},
	}

	assert.Equal(t, []string{"Dago, Bandung", "Sudirman, Jakarta"}, ranking.Suggestions("", lots, 2))
	assert.Equal(t, []string{"Sudirman, Jakarta"}, ranking.Suggestions("jakarta", lots, 0))
	assert.Len(t, ranking.Suggestions("bandung", lots, 0), ranking.DefaultSuggestionLimit)
	assert.Empty(t, ranking.Suggestions("medan", lots, 3))
}
