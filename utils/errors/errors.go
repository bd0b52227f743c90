package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"poirec-server/search"
	"poirec-server/store"
	"poirec-server/validation"
)

// APIError is the JSON error envelope returned by every endpoint.
type APIError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Status  int                     `json:"status"`
	Details string                  `json:"details,omitempty"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput       = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized       = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrNotFound           = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrInternal           = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	ErrConflict           = NewAPIError("CONFLICT", "Resource conflict", http.StatusConflict)
	ErrTooManyRequests    = NewAPIError("RATE_LIMITED", "Too many requests", http.StatusTooManyRequests)
	ErrServiceUnavailable = NewAPIError("SERVICE_UNAVAILABLE", "Service temporarily unavailable", http.StatusServiceUnavailable)
)

// Wrap returns err unchanged when it already is an *APIError, otherwise a
// new APIError carrying err's text as details.
func Wrap(err error, code, message string, status int) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}

// FromError maps domain errors onto API errors. An expired deadline is
// reported as unavailable; other unknown errors become ErrInternal with the
// cause in Details.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var verr *validation.RequestValidationError
	if stderrors.As(err, &verr) {
		e := NewAPIError("VALIDATION_ERROR", verr.Error(), http.StatusBadRequest)
		e.Fields = verr.Fields
		return e
	}

	var catErr *search.CategoryNotFoundError
	switch {
	case stderrors.As(err, &catErr):
		return NewAPIError("CATEGORY_NOT_FOUND", catErr.Error(), http.StatusNotFound)
	case stderrors.Is(err, search.ErrCategoryNotFound):
		return NewAPIError("CATEGORY_NOT_FOUND", err.Error(), http.StatusNotFound)
	case stderrors.Is(err, search.ErrInvalidArguments):
		return NewAPIError("INVALID_ARGUMENTS", err.Error(), http.StatusBadRequest)
	case stderrors.Is(err, search.ErrNoMatchingPoi):
		return NewAPIError("NO_MATCHING_POI", search.ErrNoMatchingPoi.Error(), http.StatusNotFound)
	case stderrors.Is(err, search.ErrNoPoiInArea):
		return NewAPIError("NO_POI_IN_AREA", search.ErrNoPoiInArea.Error(), http.StatusNotFound)
	case stderrors.Is(err, search.ErrUserNotFound):
		return NewAPIError("USER_NOT_FOUND", search.ErrUserNotFound.Error(), http.StatusNotFound)
	case stderrors.Is(err, store.ErrDuplicate):
		return NewAPIError(ErrConflict.Code, ErrConflict.Message, http.StatusConflict, err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return NewAPIError(ErrServiceUnavailable.Code, ErrServiceUnavailable.Message, http.StatusServiceUnavailable, err.Error())
	}

	return NewAPIError(ErrInternal.Code, ErrInternal.Message, http.StatusInternalServerError, err.Error())
}
