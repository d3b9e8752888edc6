package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note field limits, counted in Unicode characters.
const (
	MaxNoteTitleLength   = 200
	MaxNoteContentLength = 2000
)

// Note is a user-owned text note.
// Title and Content are stored trimmed.
type Note struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnedBy reports whether the note belongs to userID.
func (n *Note) OwnedBy(userID uuid.UUID) bool {
	return n.UserID == userID
}

// Validate checks the title and content limits.
func (n *Note) Validate() error {
	if err := ValidateNoteTitle(n.Title); err != nil {
		return err
	}
	return ValidateNoteContent(n.Content)
}

// NoteFilter selects which note fields a search query is matched against.
type NoteFilter string

const (
	NoteFilterTitle   NoteFilter = "title"
	NoteFilterContent NoteFilter = "content"
	NoteFilterBoth    NoteFilter = "both"
)

// ParseNoteFilter maps a query parameter to a NoteFilter.
// Unknown or empty values fall back to NoteFilterBoth.
func ParseNoteFilter(s string) NoteFilter {
	switch NoteFilter(s) {
	case NoteFilterTitle, NoteFilterContent:
		return NoteFilter(s)
	default:
		return NoteFilterBoth
	}
}

// Summary is the result of summarizing a note.
type Summary struct {
	NoteID  uuid.UUID `json:"note_id"`
	Summary string    `json:"summary"`
	Method  string    `json:"method"`
}
