package http

import (
	"errors"
	"net/http"
	"strings"

	"notes-backend/internal/handler/http/respond"
)

const (
	// maxAuthorizationHeader comfortably fits an identity provider JWT.
	maxAuthorizationHeader = 8192
	maxURILength           = 2048
	// maxQueryValue bounds the note search keyword.
	maxQueryValue = 200
)

// InputValidation returns middleware that rejects oversized headers, paths and
// query values before any handler or authentication work is done.
func InputValidation() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthorizationHeader {
				respond.SafeError(w, http.StatusBadRequest, errors.New("authorization header too long"))
				return
			}

			if len(r.URL.RequestURI()) > maxURILength {
				respond.SafeError(w, http.StatusRequestURITooLong, errors.New("request uri too long"))
				return
			}

			for _, values := range r.URL.Query() {
				for _, v := range values {
					if len(v) > maxQueryValue {
						respond.SafeError(w, http.StatusBadRequest, errors.New("query parameter too long"))
						return
					}
					if strings.ContainsRune(v, 0) {
						respond.SafeError(w, http.StatusBadRequest, errors.New("query parameter is invalid"))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
