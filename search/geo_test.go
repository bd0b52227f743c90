package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"poirec-server/models"
	"poirec-server/store/storetest"
)

func poiAt(id string, lat, lon float64) models.POI {
	return models.POI{ID: id, Title: id, Latitude: lat, Longitude: lon}
}

func ids(pois []models.POI) []string {
	out := make([]string, len(pois))
	for i, p := range pois {
		out[i] = p.ID
	}
	return out
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(0, 0, 3, 4), 1e-12)
	assert.Equal(t, 0.0, Distance(55.67, 12.56, 55.67, 12.56))
	assert.Equal(t, Distance(1, 2, 3, 4), Distance(3, 4, 1, 2))
}

func TestFilterByRange(t *testing.T) {
	candidates := []models.POI{
		poiAt("far", 0, 2.5),
		poiAt("edge", 0, 3),
		poiAt("near", 0, 1),
		poiAt("outside", 10, 10),
		poiAt("near-twin", 1, 0),
	}

	t.Run("strictly inside and sorted", func(t *testing.T) {
		got := FilterByRange(candidates, 0, 0, 3)
		assert.Equal(t, []string{"near", "near-twin", "far"}, ids(got))
		for _, p := range got {
			assert.Less(t, Distance(0, 0, p.Latitude, p.Longitude), 3.0)
		}
	})

	t.Run("zero range", func(t *testing.T) {
		assert.Empty(t, FilterByRange(candidates, 0, 0, 0))
	})

	t.Run("negative range", func(t *testing.T) {
		assert.Empty(t, FilterByRange(candidates, 0, 0, -1))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, FilterByRange(nil, 0, 0, 10))
	})

	t.Run("copenhagen fixtures", func(t *testing.T) {
		got := FilterByRange(storetest.POIs(), 55.67, 12.57, 1)
		assert.Equal(t, []string{"poi-absalon", "poi-test", "poi-europa"}, ids(got))
	})
}
