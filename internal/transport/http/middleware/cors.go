package middleware

import (
	"net/http"
	"strings"
)

// CORS allows the configured origins, or any origin when none are
// configured. Allowed methods and headers match the API surface.
func CORS(allowed string) func(http.Handler) http.Handler {
	var origins []string
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	allowAll := len(origins) == 0

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			if allowAll {
				headers.Set("Access-Control-Allow-Origin", "*")
			} else {
				origin := r.Header.Get("Origin")
				for _, candidate := range origins {
					if origin == candidate {
						headers.Set("Access-Control-Allow-Origin", origin)
						headers.Add("Vary", "Origin")
						break
					}
				}
			}
			headers.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			headers.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
