package services

import (
	"context"

	"poirec-server/models"
	"poirec-server/search"
)

// POIRepository is the read/write POI store behind PoiService.
type POIRepository interface {
	search.POIStore
	Insert(ctx context.Context, poi models.POI) error
	Update(ctx context.Context, poi models.POI) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Titles(ctx context.Context) ([]string, error)
}

type CategoryRepository interface {
	search.CategoryStore
	Insert(ctx context.Context, c models.Category) error
}

type UserRepository interface {
	search.UserLookup
	FindByUsername(ctx context.Context, username string) (models.User, bool, error)
	Insert(ctx context.Context, u models.User) error
	UpdatePassword(ctx context.Context, id, hash string) (bool, error)
}

// UserCache caches user profiles by id.
type UserCache interface {
	Get(ctx context.Context, id string) (models.User, bool, error)
	Set(ctx context.Context, u models.User) error
	Delete(ctx context.Context, id string) error
}

type CheckinRepository interface {
	Insert(ctx context.Context, c models.Checkin) error
	Delete(ctx context.Context, id, userID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Checkin, error)
}
