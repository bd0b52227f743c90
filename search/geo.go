package search

import (
	"cmp"
	"math"
	"slices"

	"poirec-server/models"
)

// Distance is the planar Euclidean distance between two coordinates in
// degrees. POIs are city-scale, so no geodesic correction is applied.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Sqrt(math.Pow(lat1-lat2, 2) + math.Pow(lon1-lon2, 2))
}

// FilterByRange keeps the POIs strictly closer than rng to (lat, lon),
// closest first. POIs at equal distance keep their input order. A
// non-positive range yields an empty result.
func FilterByRange(candidates []models.POI, lat, lon, rng float64) []models.POI {
	type ranged struct {
		poi  models.POI
		dist float64
	}

	inRange := make([]ranged, 0, len(candidates))
	for _, p := range candidates {
		d := Distance(lat, lon, p.Latitude, p.Longitude)
		if d < rng {
			inRange = append(inRange, ranged{poi: p, dist: d})
		}
	}
	slices.SortStableFunc(inRange, func(a, b ranged) int {
		return cmp.Compare(a.dist, b.dist)
	})

	result := make([]models.POI, len(inRange))
	for i, r := range inRange {
		result[i] = r.poi
	}
	return result
}
