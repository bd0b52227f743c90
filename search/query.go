package search

import "poirec-server/models"

// DefaultLimit caps search results when the query sets no limit.
const DefaultLimit = 50

// Optional holds a value that may be absent.
type Optional[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Optional[T]) IsSet() bool {
	return o.ok
}

func (o Optional[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// Filter is a set-membership predicate. An unset filter matches everything;
// a set filter with no values matches nothing.
type Filter[T comparable] struct {
	values map[T]struct{}
	order  []T
	set    bool
}

// Unset returns a filter that applies no restriction.
func Unset[T comparable]() Filter[T] {
	return Filter[T]{}
}

// Only returns a filter restricted to the given values.
func Only[T comparable](values ...T) Filter[T] {
	f := Filter[T]{values: make(map[T]struct{}, len(values)), set: true}
	for _, v := range values {
		if _, dup := f.values[v]; dup {
			continue
		}
		f.values[v] = struct{}{}
		f.order = append(f.order, v)
	}
	return f
}

// FilterFromSlice maps an empty or nil slice to Unset, which is how
// query-string parameters that were not supplied arrive.
func FilterFromSlice[T comparable](values []T) Filter[T] {
	if len(values) == 0 {
		return Unset[T]()
	}
	return Only(values...)
}

func (f Filter[T]) IsSet() bool {
	return f.set
}

func (f Filter[T]) Contains(v T) bool {
	_, ok := f.values[v]
	return ok
}

// Values returns the distinct values in first-seen order.
func (f Filter[T]) Values() []T {
	return f.order
}

// Query is the full set of POI search criteria.
type Query struct {
	Name          Optional[string]
	Categories    Filter[string]
	NotCategories Filter[string]
	Latitude      Optional[float64]
	Longitude     Optional[float64]
	Distance      Optional[float64]
	Prices        Filter[models.PriceTier]
	Limit         Optional[int]
}
