package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poirec-server/store"
)

const seedJSON = `{
  "categories": [
    {"name": "Hotel", "parent": "Lodging"},
    {"name": "Travel & Transport"},
    {"name": "Lodging", "parent": "Travel & Transport"}
  ],
  "pois": [
    {"title": "Absalon Hotel", "latitude": 55.671565, "longitude": 12.561658, "price_tier": "Free", "categories": ["Hotel"]}
  ]
}`

func TestSeed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(seedJSON), 0o600))

	categories := store.NewMemoryCategoryStore()
	pois := store.NewMemoryPOIStore()
	svc := NewPoiService(pois, categories, 0)

	require.NoError(t, Seed(ctx, path, categories, svc))

	all, err := categories.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	stored, err := pois.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, []string{"Hotel", "Lodging", "Travel & Transport"}, stored[0].CategoryNames())

	// Seeding again inserts nothing.
	require.NoError(t, Seed(ctx, path, categories, svc))
	all, _ = categories.FetchAll(ctx)
	stored, _ = pois.FetchAll(ctx)
	assert.Len(t, all, 3)
	assert.Len(t, stored, 1)
}

func TestSeedCategoriesUnknownParent(t *testing.T) {
	_, err := SeedCategories(context.Background(), store.NewMemoryCategoryStore(), []SeedCategory{
		{Name: "Hotel", Parent: "Lodging"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parent")
}

func TestLoadSeedFileMissing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
