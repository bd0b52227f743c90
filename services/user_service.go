package services

import (
	"context"
	"fmt"

	"poirec-server/logging"
	"poirec-server/metrics"
	"poirec-server/models"
)

// UserService reads user profiles through an optional cache.
type UserService struct {
	users UserRepository
	cache UserCache
}

// NewUserService builds a UserService. cache may be nil.
func NewUserService(users UserRepository, cache UserCache) *UserService {
	return &UserService{users: users, cache: cache}
}

// FindByID checks the cache first and falls back to the repository,
// caching what it finds. Cache failures are logged and never fail the call.
func (s *UserService) FindByID(ctx context.Context, userID string) (models.User, bool, error) {
	if s.cache != nil {
		user, found, err := s.cache.Get(ctx, userID)
		switch {
		case err != nil:
			logging.Warn().Err(err).Str("user_id", userID).Msg("User cache read failed")
		case found:
			metrics.UserCacheHits.Inc()
			return user, true, nil
		default:
			metrics.UserCacheMisses.Inc()
		}
	}

	user, found, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, false, fmt.Errorf("find user %s: %w", userID, err)
	}
	if !found {
		return models.User{}, false, nil
	}

	s.cacheUser(ctx, user)
	return user, true, nil
}

// GetUser is FindByID with a missing user reported as ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, userID string) (models.User, error) {
	user, found, err := s.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) cacheUser(ctx context.Context, user models.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, user); err != nil {
		logging.Warn().Err(err).Str("user_id", user.ID).Msg("User cache write failed")
	}
}

func (s *UserService) evict(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, userID); err != nil {
		logging.Warn().Err(err).Str("user_id", userID).Msg("User cache eviction failed")
	}
}
