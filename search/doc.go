// Package search implements POI search and ranking: fuzzy text matching over
// POI titles and category names, planar geo-range filtering, composable
// multi-criteria queries and the geo-bounded recommendation flow.
//
// The package owns no persistence. It reads POIs, categories and users
// through the narrow store interfaces in interfaces.go and never writes, so
// every operation is safe to run concurrently for independent requests.
// Each store call receives the caller's context and is a cancellation point.
package search
