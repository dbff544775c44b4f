package middleware

import (
	"net/http"
	"strings"
)

// CacheControl adds appropriate cache headers to responses.
type CacheControl struct{}

func NewCacheControl() *CacheControl {
	return &CacheControl{}
}

// Apply adds cache headers based on the request path. Everything the
// server returns is per-user state, so nothing is cacheable downstream.
func (c *CacheControl) Apply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/"):
			w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
			w.Header().Set("Pragma", "no-cache")

		case strings.HasPrefix(r.URL.Path, "/health"):
			w.Header().Set("Cache-Control", "no-cache")

		default:
			w.Header().Set("Cache-Control", "no-store")
		}

		next.ServeHTTP(w, r)
	})
}
