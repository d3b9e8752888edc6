package note

import (
	"net/http"

	"notes-backend/internal/handler/http/respond"
)

type DeleteHandler struct{ Svc Service }

// ServeHTTP deletes a note
// @Summary      Delete note
// @Tags         notes
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Note ID (UUID)"
// @Success      200 {object} deleteResponse
// @Failure      400 {object} map[string]string "Invalid id"
// @Failure      401 {object} map[string]string "Missing or invalid token"
// @Failure      403 {object} map[string]string "Note belongs to another user"
// @Failure      404 {object} map[string]string "Note not found"
// @Router       /notes/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), uid, id); err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, deleteResponse{Deleted: true})
}
