package repository

import (
	"context"

	"github.com/google/uuid"

	"notes-backend/internal/domain/entity"
)

// NoteQuery narrows a note listing to one owner and an optional search term.
type NoteQuery struct {
	UserID  uuid.UUID
	Keyword string
	Filter  entity.NoteFilter
}

type NoteRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	List(ctx context.Context, q NoteQuery) ([]*entity.Note, error)
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
