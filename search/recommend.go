package search

import (
	"context"
	"fmt"

	"poirec-server/models"
)

// RecommendRequest asks for recommendations around a point.
type RecommendRequest struct {
	UserID    string
	Latitude  float64
	Longitude float64
	Range     float64
}

// Orchestrator gathers geo-bounded candidates and hands ranking to an
// external Recommender.
type Orchestrator struct {
	pois        POIStore
	users       UserLookup
	recommender Recommender
}

func NewOrchestrator(pois POIStore, users UserLookup, recommender Recommender) *Orchestrator {
	return &Orchestrator{pois: pois, users: users, recommender: recommender}
}

// Recommend returns the recommender's output for the POIs within req.Range
// of the requested point. The output is not re-ranked.
func (o *Orchestrator) Recommend(ctx context.Context, req RecommendRequest) ([]models.POI, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, found, err := o.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", req.UserID, err)
	}
	if !found {
		return nil, ErrUserNotFound
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := o.pois.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch pois: %w", err)
	}
	candidates := FilterByRange(all, req.Latitude, req.Longitude, req.Range)
	if len(candidates) == 0 {
		return nil, ErrNoPoiInArea
	}

	ranked, err := o.recommender.Recommend(ctx, req.UserID, candidates)
	if err != nil {
		return nil, fmt.Errorf("recommend for user %s: %w", req.UserID, err)
	}
	return ranked, nil
}
