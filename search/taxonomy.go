package search

import (
	"context"
	"fmt"

	"poirec-server/models"
)

// Taxonomy resolves category names against the category store and keeps POI
// category sets closed under the ancestor relation.
type Taxonomy struct {
	store CategoryStore
}

func NewTaxonomy(store CategoryStore) *Taxonomy {
	return &Taxonomy{store: store}
}

// Resolve looks a category up by its exact name.
func (t *Taxonomy) Resolve(ctx context.Context, name string) (models.Category, error) {
	if err := ctx.Err(); err != nil {
		return models.Category{}, err
	}
	c, found, err := t.store.FetchByName(ctx, name)
	if err != nil {
		return models.Category{}, fmt.Errorf("fetch category %q: %w", name, err)
	}
	if !found {
		return models.Category{}, &CategoryNotFoundError{Name: name}
	}
	return c, nil
}

// ResolveAll resolves every name in order and stops at the first one that
// does not exist.
func (t *Taxonomy) ResolveAll(ctx context.Context, names []string) ([]models.Category, error) {
	resolved := make([]models.Category, 0, len(names))
	for _, name := range names {
		c, err := t.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, c)
	}
	return resolved, nil
}

// Index loads the whole taxonomy into an id-keyed index.
func (t *Taxonomy) Index(ctx context.Context) (*CategoryIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := t.store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return NewCategoryIndex(all), nil
}

// ExpandWithAncestors adds every ancestor of the given categories.
func (t *Taxonomy) ExpandWithAncestors(ctx context.Context, categories []models.Category) ([]models.Category, error) {
	ix, err := t.Index(ctx)
	if err != nil {
		return nil, err
	}
	return ix.ExpandWithAncestors(categories)
}

// SearchByName returns category names for an autocomplete box. Without a
// query every name is returned in store order; with one, names are ranked
// with the token-set scorer. Either way at most limit names come back.
func (t *Taxonomy) SearchByName(ctx context.Context, query Optional[string], limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := t.store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}

	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}

	q, ok := query.Get()
	if !ok || q == "" || len(names) == 0 {
		return names[:clamp(limit, len(names))], nil
	}

	matches, err := Rank(q, names, TokenSet)
	if err != nil {
		return nil, err
	}
	return matchValues(matches, limit), nil
}

// CategoryIndex is an in-memory view of the taxonomy keyed by category id.
type CategoryIndex struct {
	byID     map[string]models.Category
	children map[string][]string
}

func NewCategoryIndex(categories []models.Category) *CategoryIndex {
	ix := &CategoryIndex{
		byID:     make(map[string]models.Category, len(categories)),
		children: make(map[string][]string),
	}
	for _, c := range categories {
		ix.byID[c.ID] = c
		if !c.IsRoot() {
			ix.children[c.ParentID] = append(ix.children[c.ParentID], c.ID)
		}
	}
	return ix
}

func (ix *CategoryIndex) Lookup(id string) (models.Category, bool) {
	c, ok := ix.byID[id]
	return c, ok
}

// Children returns the direct sub-categories of id.
func (ix *CategoryIndex) Children(id string) []models.Category {
	ids := ix.children[id]
	out := make([]models.Category, 0, len(ids))
	for _, child := range ids {
		out = append(out, ix.byID[child])
	}
	return out
}

// Ancestors returns the parent chain of c, nearest first. A parent id that
// is missing from the index ends the chain.
func (ix *CategoryIndex) Ancestors(c models.Category) ([]models.Category, error) {
	var chain []models.Category
	visited := map[string]struct{}{c.ID: {}}
	for !c.IsRoot() {
		parent, ok := ix.byID[c.ParentID]
		if !ok {
			break
		}
		if _, seen := visited[parent.ID]; seen {
			return nil, fmt.Errorf("%w: %s", ErrCategoryCycle, parent.Name)
		}
		visited[parent.ID] = struct{}{}
		chain = append(chain, parent)
		c = parent
	}
	return chain, nil
}

// ExpandWithAncestors returns categories followed by any of their ancestors
// not already present. Applying it to its own output changes nothing.
func (ix *CategoryIndex) ExpandWithAncestors(categories []models.Category) ([]models.Category, error) {
	seen := make(map[string]struct{}, len(categories))
	out := make([]models.Category, 0, len(categories))
	add := func(c models.Category) {
		if _, ok := seen[c.ID]; ok {
			return
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}

	for _, c := range categories {
		add(c)
	}
	for _, c := range categories {
		chain, err := ix.Ancestors(c)
		if err != nil {
			return nil, err
		}
		for _, a := range chain {
			add(a)
		}
	}
	return out, nil
}
