package note

import (
	"net/http"

	"notes-backend/internal/handler/http/respond"
)

type ListHandler struct{ Svc Service }

// ServeHTTP lists the caller's notes
// @Summary      List notes
// @Description  Returns the caller's notes, pinned first and then most recently updated.
// @Description  q filters case-insensitively on the fields chosen by filter.
// @Tags         notes
// @Security     BearerAuth
// @Produce      json
// @Param        q      query string false "Search text"
// @Param        filter query string false "Fields to search" Enums(title, content, both) default(both)
// @Success      200 {array} DTO
// @Failure      401 {object} map[string]string "Missing or invalid token"
// @Failure      500 {object} map[string]string "Server error"
// @Router       /notes [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	notes, err := h.Svc.List(r.Context(), uid, q.Get("q"), q.Get("filter"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]DTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, toDTO(n))
	}
	respond.JSON(w, http.StatusOK, out)
}
