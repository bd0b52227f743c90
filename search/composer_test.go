package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poirec-server/models"
	"poirec-server/store"
	"poirec-server/store/storetest"
)

func newComposer() *Composer {
	return NewComposer(storetest.NewPOIStore(), storetest.NewCategoryStore())
}

func TestComposerSearch(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"no criteria", Query{}, []string{"poi-absalon", "poi-test", "poi-europa"}},
		{"name substring", Query{Name: Some("Absalon")}, []string{"poi-absalon"}},
		{"name matches one title", Query{Name: Some("Hotel")}, []string{"poi-absalon"}},
		{"empty name matches all", Query{Name: Some("")}, []string{"poi-absalon", "poi-test", "poi-europa"}},
		{"category", Query{Categories: Only("Hotel")}, []string{"poi-absalon", "poi-test"}},
		{"ancestor category", Query{Categories: Only("Travel & Transport")}, []string{"poi-absalon", "poi-test"}},
		{"any category", Query{Categories: Only("Coffee Shop", "Hotel")}, []string{"poi-absalon", "poi-test", "poi-europa"}},
		{"not category", Query{NotCategories: Only("Hotel")}, []string{"poi-europa"}},
		{"price", Query{Prices: Only(models.PriceCheap)}, []string{"poi-europa"}},
		{"prices", Query{Prices: Only(models.PriceCheap, models.PriceFree)}, []string{"poi-absalon", "poi-test", "poi-europa"}},
		{
			"geo orders by distance",
			Query{Latitude: Some(55.679), Longitude: Some(12.58), Distance: Some(1.0)},
			[]string{"poi-europa", "poi-absalon", "poi-test"},
		},
		{
			"geo excludes far",
			Query{Latitude: Some(55.678662), Longitude: Some(12.579335), Distance: Some(0.01)},
			[]string{"poi-europa"},
		},
		{
			"combined",
			Query{Name: Some("poi"), Categories: Only("Lodging"), Prices: Only(models.PriceFree)},
			[]string{"poi-test"},
		},
		{"limit", Query{Limit: Some(2)}, []string{"poi-absalon", "poi-test"}},
		{"limit above count", Query{Limit: Some(10)}, []string{"poi-absalon", "poi-test", "poi-europa"}},
		{"limit zero", Query{Limit: Some(0)}, []string{}},
		{"negative limit", Query{Limit: Some(-1)}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newComposer().Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestComposerSearchErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		query   Query
		wantErr error
	}{
		{"name case sensitive", Query{Name: Some("absalon")}, ErrNoMatchingPoi},
		{"nothing left", Query{Categories: Only("Museum")}, ErrNoMatchingPoi},
		{"excluded everything", Query{NotCategories: Only("Hotel", "Restaurant")}, ErrNoMatchingPoi},
		{"empty area", Query{Latitude: Some(0.0), Longitude: Some(0.0), Distance: Some(1.0)}, ErrNoMatchingPoi},
		{"unknown category", Query{Categories: Only("Spa")}, ErrCategoryNotFound},
		{"unknown excluded category", Query{NotCategories: Only("Spa")}, ErrCategoryNotFound},
		{"latitude alone", Query{Latitude: Some(55.67)}, ErrInvalidArguments},
		{"missing distance", Query{Latitude: Some(55.67), Longitude: Some(12.57)}, ErrInvalidArguments},
		{"geo checked before categories", Query{Distance: Some(1.0), Categories: Only("Spa")}, ErrInvalidArguments},
		{"categories checked before matching", Query{Name: Some("zzz"), Categories: Only("Spa")}, ErrCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newComposer().Search(ctx, tt.query)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComposerDefaultLimit(t *testing.T) {
	pois := make([]models.POI, DefaultLimit+10)
	for i := range pois {
		pois[i] = poiAt(fmt.Sprintf("poi-%02d", i), 0, 0)
	}
	c := NewComposer(store.NewMemoryPOIStore(pois...), storetest.NewCategoryStore())

	got, err := c.Search(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, got, DefaultLimit)
	assert.Equal(t, "poi-00", got[0].ID)
}

func TestComposerEmptyStore(t *testing.T) {
	c := NewComposer(store.NewMemoryPOIStore(), storetest.NewCategoryStore())
	_, err := c.Search(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrNoMatchingPoi)
}

func TestComposerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newComposer().Search(ctx, Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

type failingPOIStore struct{}

func (failingPOIStore) FetchAll(context.Context) ([]models.POI, error) {
	return nil, errors.New("timeout")
}

func (failingPOIStore) FetchByID(context.Context, string) (models.POI, bool, error) {
	return models.POI{}, false, errors.New("timeout")
}

func TestComposerStoreFailure(t *testing.T) {
	c := NewComposer(failingPOIStore{}, storetest.NewCategoryStore())
	_, err := c.Search(context.Background(), Query{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatchingPoi)
	assert.ErrorContains(t, err, "fetch pois")
}
