package note

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"notes-backend/internal/domain/entity"
	"notes-backend/internal/handler/http/auth"
	"notes-backend/internal/handler/http/pathutil"
	"notes-backend/internal/handler/http/respond"
	noteUC "notes-backend/internal/usecase/note"
)

var (
	errInvalidBody = errors.New("invalid request body")
	errNoUser      = errors.New("unable to determine user id")
)

// writeError maps note use case errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	var ve *entity.ValidationError
	switch {
	case errors.Is(err, noteUC.ErrNoteNotFound):
		respond.SafeError(w, http.StatusNotFound, noteUC.ErrNoteNotFound)
	case errors.Is(err, noteUC.ErrForbidden):
		respond.SafeError(w, http.StatusForbidden, noteUC.ErrForbidden)
	case errors.As(err, &ve):
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message})
	case errors.Is(err, noteUC.ErrNoFieldsToUpdate),
		errors.Is(err, noteUC.ErrEmptyTitle),
		errors.Is(err, noteUC.ErrEmptyContent):
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// userID returns the authenticated caller, answering 401 when it is missing.
func userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errNoUser)
	}
	return id, ok
}

// noteID parses the {id} path value, answering 400 when it is not a UUID.
func noteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := pathutil.PathUUID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}
