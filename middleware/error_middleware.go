package middleware

import (
	"net/http"

	json "github.com/goccy/go-json"

	"poirec-server/logging"
	"poirec-server/utils/errors"
)

// ErrorMiddleware turns panics into a 500 JSON response.
func ErrorMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logging.Ctx(r.Context()).Error().
						Interface("panic", rec).
						Str("path", r.URL.Path).
						Msg("Panic recovered")
					WriteError(w, r, errors.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WriteError maps err to an APIError and writes it as JSON. Server errors
// are logged with their details, which are not sent to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := errors.FromError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		logging.Ctx(r.Context()).Error().
			Str("code", apiErr.Code).
			Str("details", apiErr.Details).
			Str("path", r.URL.Path).
			Msg("Server error")
		if apiErr.Details != "" {
			redacted := *apiErr
			redacted.Details = ""
			apiErr = &redacted
		}
	}
	WriteJSON(w, apiErr.Status, apiErr)
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("Failed to encode response")
	}
}
