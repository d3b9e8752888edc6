// Package middleware holds the cross-cutting HTTP middleware that needs its own
// configuration: CORS, client IP extraction and per-client rate limiting.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	envcfg "notes-backend/pkg/config"
)

var (
	defaultCORSMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultCORSHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the whitelist of permitted origins, stored lower-cased.
	// An empty list disables CORS handling entirely.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is how long browsers may cache a preflight result, in seconds.
	MaxAge int
	Logger *slog.Logger
}

// Enabled reports whether any origin is allowed.
func (c CORSConfig) Enabled() bool {
	return len(c.AllowedOrigins) > 0
}

// IsAllowed reports whether origin is on the whitelist.
// The comparison ignores case and a trailing slash.
func (c CORSConfig) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	for _, allowed := range c.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// LoadCORSConfig reads CORS settings from the environment.
//
//	CORS_ALLOWED_ORIGINS=http://localhost:3000,https://notes.example.com
//	CORS_ALLOWED_METHODS=GET,POST,PUT,DELETE,OPTIONS
//	CORS_ALLOWED_HEADERS=Content-Type,Authorization,X-Request-ID
//	CORS_MAX_AGE=86400
//
// CORS_ALLOWED_ORIGINS is optional; when unset the middleware passes requests through.
func LoadCORSConfig() (*CORSConfig, error) {
	rawOrigins := envcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
	origins := make([]string, 0, len(rawOrigins))
	for _, o := range rawOrigins {
		if err := validateOrigin(o); err != nil {
			return nil, err
		}
		origins = append(origins, normalizeOrigin(o))
	}

	rawMethods := envcfg.GetEnvStringList("CORS_ALLOWED_METHODS", defaultCORSMethods)
	methods := make([]string, 0, len(rawMethods))
	for _, m := range rawMethods {
		m = strings.ToUpper(m)
		switch m {
		case "GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS":
			methods = append(methods, m)
		default:
			return nil, fmt.Errorf("invalid HTTP method %q in CORS_ALLOWED_METHODS", m)
		}
	}

	maxAge := envcfg.GetEnvInt("CORS_MAX_AGE", 86400)
	if maxAge < 0 {
		return nil, fmt.Errorf("CORS_MAX_AGE must be non-negative, got %d", maxAge)
	}

	return &CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: methods,
		AllowedHeaders: envcfg.GetEnvStringList("CORS_ALLOWED_HEADERS", defaultCORSHeaders),
		MaxAge:         maxAge,
	}, nil
}

// validateOrigin accepts a bare http(s) scheme and host with no path, query or fragment.
func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin URL %q: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", origin)
	}
	if u.Host == "" {
		return fmt.Errorf("origin must include a host: %s", origin)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin must not include path, query or fragment: %s", origin)
	}
	return nil
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

// CORS returns middleware that applies the CORS policy.
//
//   - No Origin header: same-origin request, passed through.
//   - Origin not allowed: passed through without CORS headers, so the browser blocks it.
//   - Allowed preflight (OPTIONS): answered with 204 and the preflight headers.
//   - Allowed actual request: origin echoed back, then passed through.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		if !config.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path))
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
