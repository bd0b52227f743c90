package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"poirec-server/logging"
	"poirec-server/metrics"
	"poirec-server/models"
	"poirec-server/search"
	"poirec-server/utils/errors"
)

var (
	ErrCategoryRequired = errors.NewAPIError("CATEGORY_REQUIRED", "poi must have at least one category", http.StatusBadRequest)
	ErrPoiNotFound      = errors.NewAPIError("POI_NOT_FOUND", "poi not found", http.StatusNotFound)
)

// PoiInput carries the editable fields of a POI. A nil Categories slice
// on Edit keeps the current categories.
type PoiInput struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Latitude    float64          `json:"latitude" validate:"latitude"`
	Longitude   float64          `json:"longitude" validate:"longitude"`
	Description string           `json:"description" validate:"max=4000"`
	Website     string           `json:"website" validate:"omitempty,url"`
	Address     string           `json:"address" validate:"max=500"`
	PriceTier   models.PriceTier `json:"price_tier" validate:"gte=0,lte=4"`
	Categories  []string         `json:"categories" validate:"omitempty,dive,required"`
}

type PoiService struct {
	pois         POIRepository
	taxonomy     *search.Taxonomy
	composer     *search.Composer
	suggestLimit int
	defaultLimit int
	now          func() time.Time
}

func NewPoiService(pois POIRepository, categories search.CategoryStore, suggestLimit int) *PoiService {
	if suggestLimit <= 0 {
		suggestLimit = search.DefaultSuggestions
	}
	return &PoiService{
		pois:         pois,
		taxonomy:     search.NewTaxonomy(categories),
		composer:     search.NewComposer(pois, categories),
		suggestLimit: suggestLimit,
		defaultLimit: search.DefaultLimit,
		now:          time.Now,
	}
}

// WithDefaultLimit sets the result cap applied to searches without a limit.
func (s *PoiService) WithDefaultLimit(limit int) *PoiService {
	if limit > 0 {
		s.defaultLimit = limit
	}
	return s
}

// Create stores a new POI whose categories are closed under ancestors.
func (s *PoiService) Create(ctx context.Context, in PoiInput) (models.POI, error) {
	categories, err := s.resolveCategories(ctx, in.Categories)
	if err != nil {
		return models.POI{}, err
	}

	poi := models.POI{
		ID:         uuid.New().String(),
		Categories: categories,
		CreatedAt:  s.now().UTC(),
	}
	applyInput(&poi, in)

	if err := s.pois.Insert(ctx, poi); err != nil {
		return models.POI{}, fmt.Errorf("insert poi: %w", err)
	}
	logging.Info().Str("poi_id", poi.ID).Str("title", poi.Title).Msg("POI created")
	return poi, nil
}

func (s *PoiService) Get(ctx context.Context, id string) (models.POI, error) {
	poi, found, err := s.pois.FetchByID(ctx, id)
	if err != nil {
		return models.POI{}, fmt.Errorf("fetch poi %s: %w", id, err)
	}
	if !found {
		return models.POI{}, ErrPoiNotFound
	}
	return poi, nil
}

// Edit replaces the scalar fields of a POI and, when in.Categories is
// non-nil, its categories.
func (s *PoiService) Edit(ctx context.Context, id string, in PoiInput) (models.POI, error) {
	poi, err := s.Get(ctx, id)
	if err != nil {
		return models.POI{}, err
	}

	if in.Categories != nil {
		categories, err := s.resolveCategories(ctx, in.Categories)
		if err != nil {
			return models.POI{}, err
		}
		poi.Categories = categories
	}
	applyInput(&poi, in)

	updated, err := s.pois.Update(ctx, poi)
	if err != nil {
		return models.POI{}, fmt.Errorf("update poi %s: %w", id, err)
	}
	if !updated {
		return models.POI{}, ErrPoiNotFound
	}
	logging.Info().Str("poi_id", id).Msg("POI updated")
	return poi, nil
}

func (s *PoiService) Delete(ctx context.Context, id string) error {
	deleted, err := s.pois.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete poi %s: %w", id, err)
	}
	if !deleted {
		return ErrPoiNotFound
	}
	logging.Info().Str("poi_id", id).Msg("POI deleted")
	return nil
}

func (s *PoiService) Search(ctx context.Context, q search.Query) ([]models.POI, error) {
	if !q.Limit.IsSet() {
		q.Limit = search.Some(s.defaultLimit)
	}
	pois, err := s.composer.Search(ctx, q)
	metrics.RecordSearch("pois", len(pois), err)
	return pois, err
}

// SuggestNames ranks the distinct POI titles against query. An empty store
// yields no suggestions.
func (s *PoiService) SuggestNames(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = s.suggestLimit
	}
	titles, err := s.pois.Titles(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch poi titles: %w", err)
	}
	if len(titles) == 0 {
		metrics.RecordSearch("names", 0, nil)
		return []string{}, nil
	}
	names, err := search.SuggestNames(query, titles, limit)
	metrics.RecordSearch("names", len(names), err)
	return names, err
}

func (s *PoiService) SearchCategoryNames(ctx context.Context, query search.Optional[string], limit int) ([]string, error) {
	names, err := s.taxonomy.SearchByName(ctx, query, limit)
	metrics.RecordSearch("categories", len(names), err)
	return names, err
}

func (s *PoiService) resolveCategories(ctx context.Context, names []string) ([]models.Category, error) {
	if len(names) == 0 {
		return nil, ErrCategoryRequired
	}
	direct, err := s.taxonomy.ResolveAll(ctx, names)
	if err != nil {
		return nil, err
	}
	return s.taxonomy.ExpandWithAncestors(ctx, direct)
}

func applyInput(poi *models.POI, in PoiInput) {
	poi.Title = in.Title
	poi.Latitude = in.Latitude
	poi.Longitude = in.Longitude
	poi.Description = in.Description
	poi.Website = in.Website
	poi.Address = in.Address
	poi.PriceTier = in.PriceTier
}
