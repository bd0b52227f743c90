package search

import (
	"context"

	"poirec-server/models"
)

// POIStore provides read access to POIs with their categories populated.
type POIStore interface {
	// FetchAll returns every POI in a stable enumeration order.
	FetchAll(ctx context.Context) ([]models.POI, error)
	// FetchByID reports found=false, with a nil error, when no POI has the id.
	FetchByID(ctx context.Context, id string) (poi models.POI, found bool, err error)
}

// CategoryStore provides read access to the category taxonomy.
type CategoryStore interface {
	// FetchByName performs an exact, case-sensitive lookup.
	FetchByName(ctx context.Context, name string) (category models.Category, found bool, err error)
	FetchAll(ctx context.Context) ([]models.Category, error)
}

// UserLookup resolves user identifiers for recommendations.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (user models.User, found bool, err error)
}

// Recommender ranks a candidate set for a user. Implementations may reorder,
// subset or score the candidates but only operate on the supplied set.
type Recommender interface {
	Recommend(ctx context.Context, userID string, candidates []models.POI) ([]models.POI, error)
}
