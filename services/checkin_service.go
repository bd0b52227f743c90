package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"poirec-server/logging"
	"poirec-server/models"
	"poirec-server/search"
	"poirec-server/utils/errors"
)

var ErrCheckinNotFound = errors.NewAPIError("CHECKIN_NOT_FOUND", "checkin not found", http.StatusNotFound)

// CheckinService records visits of users to POIs.
type CheckinService struct {
	checkins CheckinRepository
	pois     search.POIStore
	now      func() time.Time
}

func NewCheckinService(checkins CheckinRepository, pois search.POIStore) *CheckinService {
	return &CheckinService{checkins: checkins, pois: pois, now: time.Now}
}

// Create checks the user in at an existing POI.
func (s *CheckinService) Create(ctx context.Context, userID, poiID string) (models.Checkin, error) {
	_, found, err := s.pois.FetchByID(ctx, poiID)
	if err != nil {
		return models.Checkin{}, fmt.Errorf("fetch poi %s: %w", poiID, err)
	}
	if !found {
		return models.Checkin{}, ErrPoiNotFound
	}

	checkin := models.Checkin{
		ID:        uuid.New().String(),
		UserID:    userID,
		POIID:     poiID,
		Timestamp: s.now().UTC(),
	}
	if err := s.checkins.Insert(ctx, checkin); err != nil {
		return models.Checkin{}, fmt.Errorf("insert checkin: %w", err)
	}
	logging.Info().Str("user_id", userID).Str("poi_id", poiID).Msg("Checked in")
	return checkin, nil
}

// Delete removes one of the user's own check-ins.
func (s *CheckinService) Delete(ctx context.Context, userID, checkinID string) error {
	deleted, err := s.checkins.Delete(ctx, checkinID, userID)
	if err != nil {
		return fmt.Errorf("delete checkin %s: %w", checkinID, err)
	}
	if !deleted {
		return ErrCheckinNotFound
	}
	return nil
}

func (s *CheckinService) ListForUser(ctx context.Context, userID string) ([]models.Checkin, error) {
	checkins, err := s.checkins.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list checkins for %s: %w", userID, err)
	}
	if checkins == nil {
		checkins = []models.Checkin{}
	}
	return checkins, nil
}
