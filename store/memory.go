package store

import (
	"context"
	"slices"
	"sync"

	"poirec-server/models"
)

// MemoryPOIStore keeps POIs in insertion order.
type MemoryPOIStore struct {
	mu   sync.RWMutex
	pois []models.POI
}

func NewMemoryPOIStore(pois ...models.POI) *MemoryPOIStore {
	return &MemoryPOIStore{pois: slices.Clone(pois)}
}

func (s *MemoryPOIStore) FetchAll(_ context.Context) ([]models.POI, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.POI, len(s.pois))
	for i, p := range s.pois {
		out[i] = clonePOI(p)
	}
	return out, nil
}

func (s *MemoryPOIStore) FetchByID(_ context.Context, id string) (models.POI, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return clonePOI(s.pois[i]), true, nil
	}
	return models.POI{}, false, nil
}

func (s *MemoryPOIStore) Insert(_ context.Context, poi models.POI) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(poi.ID) >= 0 {
		return ErrDuplicate
	}
	s.pois = append(s.pois, clonePOI(poi))
	return nil
}

func (s *MemoryPOIStore) Update(_ context.Context, poi models.POI) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(poi.ID)
	if i < 0 {
		return false, nil
	}
	s.pois[i] = clonePOI(poi)
	return true, nil
}

func (s *MemoryPOIStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.pois = slices.Delete(s.pois, i, i+1)
	return true, nil
}

// Titles returns the distinct POI titles in first-seen order.
func (s *MemoryPOIStore) Titles(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{}, len(s.pois))
	var titles []string
	for _, p := range s.pois {
		if _, ok := seen[p.Title]; ok {
			continue
		}
		seen[p.Title] = struct{}{}
		titles = append(titles, p.Title)
	}
	return titles, nil
}

func (s *MemoryPOIStore) indexOf(id string) int {
	return slices.IndexFunc(s.pois, func(p models.POI) bool { return p.ID == id })
}

func clonePOI(p models.POI) models.POI {
	p.Categories = slices.Clone(p.Categories)
	return p
}

// MemoryCategoryStore keeps categories in insertion order.
type MemoryCategoryStore struct {
	mu         sync.RWMutex
	categories []models.Category
}

func NewMemoryCategoryStore(categories ...models.Category) *MemoryCategoryStore {
	return &MemoryCategoryStore{categories: slices.Clone(categories)}
}

func (s *MemoryCategoryStore) FetchByName(_ context.Context, name string) (models.Category, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Name == name {
			return c, true, nil
		}
	}
	return models.Category{}, false, nil
}

func (s *MemoryCategoryStore) FetchAll(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories), nil
}

func (s *MemoryCategoryStore) Insert(_ context.Context, c models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.ID == c.ID || existing.Name == c.Name {
			return ErrDuplicate
		}
	}
	s.categories = append(s.categories, c)
	return nil
}

// MemoryUserStore indexes users by id and username.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserStore(users ...models.User) *MemoryUserStore {
	s := &MemoryUserStore{users: make(map[string]models.User, len(users))}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (models.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (models.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (s *MemoryUserStore) Insert(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; ok {
		return ErrDuplicate
	}
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return ErrDuplicate
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *MemoryUserStore) UpdatePassword(_ context.Context, id, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	u.PasswordHash = hash
	s.users[id] = u
	return true, nil
}

// MemoryCheckinStore keeps check-ins in insertion order.
type MemoryCheckinStore struct {
	mu       sync.RWMutex
	checkins []models.Checkin
}

func NewMemoryCheckinStore() *MemoryCheckinStore {
	return &MemoryCheckinStore{}
}

func (s *MemoryCheckinStore) Insert(_ context.Context, c models.Checkin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkins = append(s.checkins, c)
	return nil
}

func (s *MemoryCheckinStore) Delete(_ context.Context, id, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.checkins, func(c models.Checkin) bool {
		return c.ID == id && c.UserID == userID
	})
	if i < 0 {
		return false, nil
	}
	s.checkins = slices.Delete(s.checkins, i, i+1)
	return true, nil
}

// ListByUser returns the user's check-ins, newest first.
func (s *MemoryCheckinStore) ListByUser(_ context.Context, userID string) ([]models.Checkin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Checkin
	for i := len(s.checkins) - 1; i >= 0; i-- {
		if s.checkins[i].UserID == userID {
			out = append(out, s.checkins[i])
		}
	}
	return out, nil
}
