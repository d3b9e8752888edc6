package note

import (
	"encoding/json"
	"net/http"

	"notes-backend/internal/handler/http/respond"
	noteUC "notes-backend/internal/usecase/note"
)

type UpdateHandler struct{ Svc Service }

// ServeHTTP updates a note
// @Summary      Update note
// @Description  Changes the fields present in the body. At least one field is required.
// @Tags         notes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path string        true "Note ID (UUID)"
// @Param        note body updateRequest true "Fields to change"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string "Invalid id or input"
// @Failure      401 {object} map[string]string "Missing or invalid token"
// @Failure      403 {object} map[string]string "Note belongs to another user"
// @Failure      404 {object} map[string]string "Note not found"
// @Router       /notes/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	n, err := h.Svc.Update(r.Context(), uid, id, noteUC.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
		Pinned:  req.Pinned,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(n))
}
