package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"notes-backend/internal/domain/entity"
	"notes-backend/internal/repository"
)

type UserRepo struct{ db DBTX }

func NewUserRepo(db DBTX) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) Get(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	const query = `
SELECT id, email, full_name, created_at
FROM users
WHERE id = $1
LIMIT 1`
	var u entity.User
	var fullName sql.NullString
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &fullName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if fullName.Valid {
		u.FullName = &fullName.String
	}
	return &u, nil
}

// Upsert inserts the profile or refreshes email and full name when it already exists.
func (repo *UserRepo) Upsert(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (id, email, full_name, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
       email     = EXCLUDED.email,
       full_name = EXCLUDED.full_name`
	_, err := repo.db.ExecContext(ctx, query, user.ID, user.Email, user.FullName, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}
