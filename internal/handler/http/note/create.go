package note

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"notes-backend/internal/handler/http/respond"
	"notes-backend/internal/observability/logging"
	noteUC "notes-backend/internal/usecase/note"
)

type CreateHandler struct{ Svc Service }

// ServeHTTP creates a note
// @Summary      Create note
// @Description  Creates a note owned by the caller. Title is required; content may be empty.
// @Tags         notes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        note body createRequest true "Note"
// @Success      201 {object} DTO
// @Failure      400 {object} map[string]string "Invalid input"
// @Failure      401 {object} map[string]string "Missing or invalid token"
// @Router       /notes [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	n, err := h.Svc.Create(r.Context(), uid, noteUC.CreateInput{
		Title:   req.Title,
		Content: req.Content,
		Pinned:  req.Pinned,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	logging.FromContext(r.Context()).Info("note created", slog.String("note_id", n.ID.String()))
	respond.JSON(w, http.StatusCreated, toDTO(n))
}
