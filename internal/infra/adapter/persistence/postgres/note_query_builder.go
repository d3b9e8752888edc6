// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"notes-backend/internal/domain/entity"
	"notes-backend/internal/repository"
)

// ilikeEscaper escapes the ILIKE wildcards so keywords match literally.
var ilikeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NoteQueryBuilder builds the WHERE clause for note listings.
// PostgreSQL-specific: uses ILIKE for case-insensitive search and $N placeholders.
type NoteQueryBuilder struct{}

// NewNoteQueryBuilder creates a new query builder instance.
func NewNoteQueryBuilder() *NoteQueryBuilder {
	return &NoteQueryBuilder{}
}

// BuildWhereClause always restricts to the owner. A non-empty keyword adds a
// substring match on the columns selected by the filter.
func (qb *NoteQueryBuilder) BuildWhereClause(q repository.NoteQuery) (clause string, args []any) {
	conditions := []string{"user_id = $1"}
	args = append(args, q.UserID)

	keyword := strings.TrimSpace(q.Keyword)
	if keyword != "" {
		args = append(args, "%"+ilikeEscaper.Replace(keyword)+"%")
		p := len(args)
		switch q.Filter {
		case entity.NoteFilterTitle:
			conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", p))
		case entity.NoteFilterContent:
			conditions = append(conditions, fmt.Sprintf("content ILIKE $%d", p))
		default:
			conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", p, p))
		}
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
