package http

import (
	"net/http"
)

// withRateLimit applies the server-wide token bucket. A nil limiter lets
// every request through.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter != nil && !h.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, r, errRateLimited, "Handler.withRateLimit", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
