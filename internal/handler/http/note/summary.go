package note

import (
	"log/slog"
	"net/http"

	"notes-backend/internal/handler/http/respond"
	"notes-backend/internal/observability/logging"
	"notes-backend/internal/utils/text"
)

// summaryPreviewRunes bounds how much of a summary reaches debug logs.
const summaryPreviewRunes = 80

type SummaryHandler struct{ Svc Service }

// ServeHTTP summarizes a note
// @Summary      Summarize note
// @Description  Returns an extractive summary built from the note's most representative sentences,
// @Description  kept in their original order. max_sentences defaults to 3 and is clamped to [1, 10];
// @Description  non-numeric values use the default.
// @Tags         notes
// @Security     BearerAuth
// @Produce      json
// @Param        id            path  string true  "Note ID (UUID)"
// @Param        max_sentences query int    false "Maximum sentences in the summary" default(3)
// @Success      200 {object} SummaryDTO
// @Failure      400 {object} map[string]string "Invalid id or note has no content"
// @Failure      401 {object} map[string]string "Missing or invalid token"
// @Failure      403 {object} map[string]string "Note belongs to another user"
// @Failure      404 {object} map[string]string "Note not found"
// @Router       /notes/{id}/summary [post]
func (h SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	s, err := h.Svc.Summarize(r.Context(), uid, id, r.URL.Query().Get("max_sentences"))
	if err != nil {
		writeError(w, err)
		return
	}
	logging.FromContext(r.Context()).Debug("note summarized",
		slog.String("note_id", s.NoteID.String()),
		slog.String("preview", text.Truncate(s.Summary, summaryPreviewRunes)))
	respond.JSON(w, http.StatusOK, SummaryDTO{NoteID: s.NoteID, Summary: s.Summary, Method: s.Method})
}
