package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poirec-server/models"
	"poirec-server/store"
	"poirec-server/store/storetest"
)

func TestMemoryPOIStore(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewPOIStore()

	all, err := s.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "poi-absalon", all[0].ID)

	// Returned POIs are copies.
	all[0].Categories[0].Name = "Mutated"
	again, _ := s.FetchAll(ctx)
	assert.Equal(t, "Hotel", again[0].Categories[0].Name)

	assert.ErrorIs(t, s.Insert(ctx, models.POI{ID: "poi-test"}), store.ErrDuplicate)
	require.NoError(t, s.Insert(ctx, models.POI{ID: "poi-new", Title: "Test poi"}))

	titles, err := s.Titles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Absalon Hotel", "Test poi", "Café Europa"}, titles)

	updated, err := s.Update(ctx, models.POI{ID: "poi-new", Title: "Renamed"})
	require.NoError(t, err)
	assert.True(t, updated)
	p, found, err := s.FetchByID(ctx, "poi-new")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Renamed", p.Title)

	updated, err = s.Update(ctx, models.POI{ID: "missing"})
	require.NoError(t, err)
	assert.False(t, updated)

	deleted, err := s.Delete(ctx, "poi-new")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.Delete(ctx, "poi-new")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, found, err = s.FetchByID(ctx, "poi-new")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCategoryStore(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewCategoryStore()

	c, found, err := s.FetchByName(ctx, "Wine Bar")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "cat-bar", c.ParentID)

	_, found, err = s.FetchByName(ctx, "wine bar")
	require.NoError(t, err)
	assert.False(t, found)

	assert.ErrorIs(t, s.Insert(ctx, models.Category{ID: "other", Name: "Bar"}), store.ErrDuplicate)
	assert.ErrorIs(t, s.Insert(ctx, models.Category{ID: "cat-bar", Name: "Pub"}), store.ErrDuplicate)
	require.NoError(t, s.Insert(ctx, models.Category{ID: "cat-pub", Name: "Pub", ParentID: "cat-bar"}))

	all, err := s.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(storetest.Categories())+1)
	assert.Equal(t, "Pub", all[len(all)-1].Name)
}

func TestMemoryUserStore(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewUserStore()

	u, found, err := s.FindByUsername(ctx, "test")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, storetest.TestUserID, u.ID)

	assert.ErrorIs(t, s.Insert(ctx, models.User{ID: "new", Username: "test"}), store.ErrDuplicate)
	assert.ErrorIs(t, s.Insert(ctx, models.User{ID: storetest.TestUserID, Username: "other"}), store.ErrDuplicate)

	ok, err := s.UpdatePassword(ctx, storetest.TestUserID, "hash")
	require.NoError(t, err)
	assert.True(t, ok)
	u, _, _ = s.FindByID(ctx, storetest.TestUserID)
	assert.Equal(t, "hash", u.PasswordHash)

	ok, err = s.UpdatePassword(ctx, "missing", "hash")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCheckinStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryCheckinStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Insert(ctx, models.Checkin{ID: "c1", UserID: "u1", POIID: "p1", Timestamp: base}))
	require.NoError(t, s.Insert(ctx, models.Checkin{ID: "c2", UserID: "u2", POIID: "p1", Timestamp: base.Add(time.Hour)}))
	require.NoError(t, s.Insert(ctx, models.Checkin{ID: "c3", UserID: "u1", POIID: "p2", Timestamp: base.Add(2 * time.Hour)}))

	list, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c3", list[0].ID)
	assert.Equal(t, "c1", list[1].ID)

	deleted, err := s.Delete(ctx, "c1", "u2")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = s.Delete(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.True(t, deleted)
}
