// Package pathutil parses resource identifiers from request paths and
// normalizes paths for use as metric labels.
package pathutil

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is not a UUID.
var ErrInvalidID = errors.New("invalid id")

// ParseUUID parses a resource ID in canonical UUID form.
// Braced, URN and hyphen-less forms are rejected so each note has exactly one URL.
func ParseUUID(s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if len(s) != 36 {
		return uuid.Nil, ErrInvalidID
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}

// PathUUID reads the named wildcard of the matched route and parses it as a UUID.
//
// Example:
//
//	mux.HandleFunc("PUT /notes/{id}", func(w http.ResponseWriter, r *http.Request) {
//	    id, err := pathutil.PathUUID(r, "id")
//	    ...
//	})
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return ParseUUID(r.PathValue(name))
}
