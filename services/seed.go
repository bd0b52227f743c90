package services

import (
	"context"
	"fmt"
	"os"
	"slices"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"poirec-server/logging"
	"poirec-server/models"
)

// SeedCategory names a category and, for non-roots, its parent's name.
type SeedCategory struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

// SeedData is the layout of the seed file.
type SeedData struct {
	Categories []SeedCategory `json:"categories"`
	POIs       []PoiInput     `json:"pois"`
}

func LoadSeedFile(path string) (SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedData{}, fmt.Errorf("read seed file: %w", err)
	}
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SeedData{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return data, nil
}

// SeedCategories inserts the categories that do not exist yet. Parents may
// appear in any order in the input. It returns the number inserted.
func SeedCategories(ctx context.Context, repo CategoryRepository, seeds []SeedCategory) (int, error) {
	ids := make(map[string]string, len(seeds))
	existing, err := repo.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch categories: %w", err)
	}
	for _, c := range existing {
		ids[c.Name] = c.ID
	}

	pending := slices.Clone(seeds)
	inserted := 0
	for len(pending) > 0 {
		var next []SeedCategory
		for _, seed := range pending {
			if _, ok := ids[seed.Name]; ok {
				continue
			}
			parentID := ""
			if seed.Parent != "" {
				id, ok := ids[seed.Parent]
				if !ok {
					next = append(next, seed)
					continue
				}
				parentID = id
			}

			c := models.Category{ID: uuid.New().String(), Name: seed.Name, ParentID: parentID}
			if err := repo.Insert(ctx, c); err != nil {
				return inserted, fmt.Errorf("insert category %s: %w", seed.Name, err)
			}
			ids[c.Name] = c.ID
			inserted++
		}
		if len(next) == len(pending) {
			return inserted, fmt.Errorf("category %q has unknown parent %q", next[0].Name, next[0].Parent)
		}
		pending = next
	}
	return inserted, nil
}

// SeedPOIs creates the POIs whose titles are not in the store yet.
func SeedPOIs(ctx context.Context, svc *PoiService, seeds []PoiInput) (int, error) {
	titles, err := svc.pois.Titles(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch poi titles: %w", err)
	}

	inserted := 0
	for _, in := range seeds {
		if slices.Contains(titles, in.Title) {
			continue
		}
		if _, err := svc.Create(ctx, in); err != nil {
			return inserted, fmt.Errorf("seed poi %q: %w", in.Title, err)
		}
		titles = append(titles, in.Title)
		inserted++
	}
	return inserted, nil
}

// Seed loads the seed file and inserts what is missing.
func Seed(ctx context.Context, path string, categories CategoryRepository, pois *PoiService) error {
	data, err := LoadSeedFile(path)
	if err != nil {
		return err
	}
	nCats, err := SeedCategories(ctx, categories, data.Categories)
	if err != nil {
		return err
	}
	nPois, err := SeedPOIs(ctx, pois, data.POIs)
	if err != nil {
		return err
	}
	logging.Info().
		Str("file", path).
		Int("categories", nCats).
		Int("pois", nPois).
		Msg("Seed data loaded")
	return nil
}
