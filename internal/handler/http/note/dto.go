// Package note provides HTTP handlers for a user's notes: listing with search,
// create, update, delete and extractive summaries.
package note

import (
	"time"

	"github.com/google/uuid"

	"notes-backend/internal/domain/entity"
)

// DTO represents the JSON structure for note data transfer.
type DTO struct {
	ID        uuid.UUID `json:"id" example:"7d0f4f0e-3b57-4b8f-a2b1-2a8f1c1e9c11"`
	UserID    uuid.UUID `json:"user_id" example:"2b1d7f4e-0c3a-4e7e-9a55-1c6a3e2f7b90"`
	Title     string    `json:"title" example:"Reading list"`
	Content   string    `json:"content" example:"Finish the storage chapter. Skim the networking notes."`
	Pinned    bool      `json:"pinned" example:"false"`
	CreatedAt time.Time `json:"created_at" example:"2026-01-10T09:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2026-01-11T18:30:00Z"`
}

// createRequest ignores any owner field sent by the client.
type createRequest struct {
	Title   string `json:"title" example:"Reading list"`
	Content string `json:"content" example:"Finish the storage chapter."`
	Pinned  bool   `json:"pinned" example:"false"`
}

// updateRequest fields left out of the JSON body are not changed.
type updateRequest struct {
	Title   *string `json:"title,omitempty" example:"Reading list (2026)"`
	Content *string `json:"content,omitempty"`
	Pinned  *bool   `json:"pinned,omitempty" example:"true"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted" example:"true"`
}

// SummaryDTO is the body returned by the summary endpoint.
type SummaryDTO struct {
	NoteID  uuid.UUID `json:"note_id"`
	Summary string    `json:"summary" example:"Finish the storage chapter."`
	Method  string    `json:"method" example:"naive-extractive"`
}

func toDTO(n *entity.Note) DTO {
	return DTO{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Pinned:    n.Pinned,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
