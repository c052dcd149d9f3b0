// Package middleware provides HTTP middleware for the streamgate server:
// cross-origin policy filtering, request logging, and metrics collection.
package middleware

import (
	"net/http"
	"strings"
)

// CORSConfig holds the cross-origin allow-list: exact origins plus suffix
// patterns (each starting with a dot) for domain families.
type CORSConfig struct {
	AllowedOrigins  []string
	AllowedSuffixes []string
}

// CORS returns middleware enforcing the cross-origin policy on every
// request. Requests without an Origin header are answered with an
// unrestricted origin. Allowed origins are echoed back exactly, since
// credentialed responses cannot use a wildcard. Disallowed origins are
// simply not echoed; the request is still served. Preflight requests are
// answered immediately without reaching the wrapped handler.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(config.AllowedOrigins))
	for _, origin := range config.AllowedOrigins {
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case origin == "":
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case allowed[origin] || matchesSuffix(origin, config.AllowedSuffixes):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Range")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range, Accept-Ranges")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// matchesSuffix reports whether the origin's host falls under one of the
// allowed domain suffixes.
func matchesSuffix(origin string, suffixes []string) bool {
	host := origin
	if idx := strings.Index(host, "://"); idx != -1 {
		host = host[idx+3:]
	}
	if idx := strings.IndexByte(host, ':'); idx != -1 {
		host = host[:idx]
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}
