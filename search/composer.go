package search

import (
	"context"
	"fmt"
	"strings"

	"poirec-server/models"
)

// Composer runs multi-criteria POI searches.
type Composer struct {
	pois     POIStore
	taxonomy *Taxonomy
}

func NewComposer(pois POIStore, categories CategoryStore) *Composer {
	return &Composer{pois: pois, taxonomy: NewTaxonomy(categories)}
}

// Search applies q to the POI store. Failures are reported in a fixed order:
// a partial geo triple (ErrInvalidArguments) before an unknown category
// (ErrCategoryNotFound) before an empty result (ErrNoMatchingPoi).
//
// With a geo triple the result is ordered closest first; otherwise it keeps
// the store's enumeration order. It is truncated to q.Limit, default 50.
func (c *Composer) Search(ctx context.Context, q Query) ([]models.POI, error) {
	lat, hasLat := q.Latitude.Get()
	lon, hasLon := q.Longitude.Get()
	dist, hasDist := q.Distance.Get()
	geo := hasLat && hasLon && hasDist
	if !geo && (hasLat || hasLon || hasDist) {
		return nil, fmt.Errorf("%w: latitude, longitude and distance required together", ErrInvalidArguments)
	}

	if q.Categories.IsSet() {
		if _, err := c.taxonomy.ResolveAll(ctx, q.Categories.Values()); err != nil {
			return nil, err
		}
	}
	if q.NotCategories.IsSet() {
		if _, err := c.taxonomy.ResolveAll(ctx, q.NotCategories.Values()); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := c.pois.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch pois: %w", err)
	}

	if geo {
		result = FilterByRange(result, lat, lon, dist)
	}
	if q.Prices.IsSet() {
		result = keep(result, func(p models.POI) bool {
			return q.Prices.Contains(p.PriceTier)
		})
	}
	if name, ok := q.Name.Get(); ok && name != "" {
		result = keep(result, func(p models.POI) bool {
			return strings.Contains(p.Title, name)
		})
	}
	if q.Categories.IsSet() {
		result = keep(result, func(p models.POI) bool {
			return belongsToAny(p, q.Categories)
		})
	}
	if q.NotCategories.IsSet() {
		result = keep(result, func(p models.POI) bool {
			return !belongsToAny(p, q.NotCategories)
		})
	}

	if len(result) == 0 {
		return nil, ErrNoMatchingPoi
	}
	return result[:clamp(q.Limit.OrElse(DefaultLimit), len(result))], nil
}

func belongsToAny(p models.POI, names Filter[string]) bool {
	for _, name := range names.Values() {
		if p.HasCategory(name) {
			return true
		}
	}
	return false
}

func keep(pois []models.POI, pred func(models.POI) bool) []models.POI {
	out := pois[:0:0]
	for _, p := range pois {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
