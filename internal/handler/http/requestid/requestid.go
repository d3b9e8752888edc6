// Package requestid tags every request with an ID that is echoed in the
// X-Request-ID response header and stored in the request context, so log lines
// and spans of one request can be joined.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is read from the request and written to the response.
const Header = "X-Request-ID"

// MaxLength bounds client-supplied IDs.
const MaxLength = 128

type ctxKey struct{}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request ID stored in ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// IsValid reports whether a client-supplied ID is short enough and made only of
// letters, digits and the separators . _ : -
func IsValid(id string) bool {
	if id == "" || len(id) > MaxLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == ':', c == '-':
		default:
			return false
		}
	}
	return true
}

// Middleware keeps a valid incoming X-Request-ID and otherwise assigns a UUID v4.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !IsValid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
