// Package note provides use cases for managing a user's notes.
// Every operation is scoped to the authenticated user: notes owned by
// someone else are reported as forbidden, never returned or changed.
package note

import (
	"errors"

	"notes-backend/internal/domain/entity"
)

// Sentinel errors for note use case operations.
var (
	// ErrNoteNotFound indicates that no note has the requested ID.
	ErrNoteNotFound = errors.New("note not found")

	// ErrForbidden indicates that the note belongs to another user.
	ErrForbidden = entity.ErrForbidden

	// ErrNoFieldsToUpdate indicates an update request that changes nothing.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrEmptyTitle indicates an update that sets the title to blank text.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyContent indicates a summary request for a note without content.
	ErrEmptyContent = errors.New("note has no content to summarize")
)
