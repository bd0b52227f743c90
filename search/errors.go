package search

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArguments is returned for malformed parameter combinations,
	// such as a partial latitude/longitude/distance triple.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrCategoryNotFound is returned when a named category does not exist.
	// The concrete error is a *CategoryNotFoundError carrying the name.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrNoMatchingPoi signals a valid search that matched nothing.
	ErrNoMatchingPoi = errors.New("no poi's matching criteria")

	// ErrNoPoiInArea signals that a recommendation area holds no POIs.
	ErrNoPoiInArea = errors.New("no poi's found in area")

	// ErrUserNotFound is returned when a recommendation targets an unknown user.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptyCandidateSet is returned by the matcher when asked to rank nothing.
	ErrEmptyCandidateSet = errors.New("empty candidate set")

	// ErrCategoryCycle is returned when a parent chain revisits a category.
	ErrCategoryCycle = errors.New("category hierarchy contains a cycle")
)

// CategoryNotFoundError names the category that failed to resolve.
type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %s could not be found", e.Name)
}

func (e *CategoryNotFoundError) Is(target error) bool {
	return target == ErrCategoryNotFound
}
