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

const noteColumns = `id, user_id, title, content, pinned, created_at, updated_at`

type NoteRepo struct {
	db      DBTX
	builder *NoteQueryBuilder
}

func NewNoteRepo(db DBTX) repository.NoteRepository {
	return &NoteRepo{db: db, builder: NewNoteQueryBuilder()}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(s rowScanner) (*entity.Note, error) {
	var n entity.Note
	if err := s.Scan(
		&n.ID, &n.UserID, &n.Title, &n.Content, &n.Pinned, &n.CreatedAt, &n.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

func (repo *NoteRepo) Get(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	const query = `
SELECT ` + noteColumns + `
FROM notes
WHERE id = $1
LIMIT 1`
	n, err := scanNote(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return n, nil
}

// List returns pinned notes first, then the most recently updated.
func (repo *NoteRepo) List(ctx context.Context, q repository.NoteQuery) ([]*entity.Note, error) {
	where, args := repo.builder.BuildWhereClause(q)
	query := `
SELECT ` + noteColumns + `
FROM notes
` + where + `
ORDER BY pinned DESC, COALESCE(updated_at, created_at) DESC, id ASC`

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	notes := make([]*entity.Note, 0, 32)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (repo *NoteRepo) Create(ctx context.Context, note *entity.Note) error {
	const query = `
INSERT INTO notes (id, user_id, title, content, pinned, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.db.ExecContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content,
		note.Pinned, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *NoteRepo) Update(ctx context.Context, note *entity.Note) error {
	const query = `
UPDATE notes SET
       title      = $1,
       content    = $2,
       pinned     = $3,
       updated_at = $4
WHERE id = $5`
	res, err := repo.db.ExecContext(ctx, query,
		note.Title, note.Content, note.Pinned, note.UpdatedAt, note.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *NoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM notes WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Delete: %w", entity.ErrNotFound)
	}
	return nil
}

func (repo *NoteRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM notes`
	var n int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}
