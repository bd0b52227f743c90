package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"poirec-server/utils/errors"
)

// RateLimit allows requests per window for each client IP. A non-positive
// limit disables it.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, r, errors.ErrTooManyRequests)
		}),
	)
}
