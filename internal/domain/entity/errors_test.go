package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "title",
			err:  &ValidationError{Field: "title", Message: "title is required"},
			want: "validation error on field 'title': title is required",
		},
		{
			name: "content",
			err:  &ValidationError{Field: "content", Message: "content must be at most 2000 characters"},
			want: "validation error on field 'content': content must be at most 2000 characters",
		},
		{
			name: "zero value",
			err:  &ValidationError{},
			want: "validation error on field '': ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create note: %w", &ValidationError{Field: "title", Message: "title is required"})

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.NotErrorIs(t, err, ErrNotFound)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
}

func TestValidateNoteTitle_MatchesSentinel(t *testing.T) {
	assert.ErrorIs(t, ValidateNoteTitle(""), ErrValidationFailed)
}

func TestSentinelErrors(t *testing.T) {
	assert.EqualError(t, ErrNotFound, "entity not found")
	assert.EqualError(t, ErrForbidden, "not allowed")
	assert.False(t, errors.Is(ErrNotFound, ErrForbidden))
	assert.False(t, errors.Is(ErrNotFound, ErrValidationFailed))
}
