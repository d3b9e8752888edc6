package repository

import (
	"context"

	"github.com/google/uuid"

	"notes-backend/internal/domain/entity"
)

type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Upsert(ctx context.Context, user *entity.User) error
}
