package middleware

import (
	"context"
	"net/http"
	"time"
)

// RequestTimeoutMiddleware bounds the request context. Handlers answer for
// themselves when a store call runs out of time (503 Unavailable), so nothing
// is written here after the deadline.
func RequestTimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
