package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxEmailLength follows the RFC 5321 path limit.
const maxEmailLength = 254

// ValidateEmail performs a light syntactic check.
// The identity provider does the authoritative validation.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(email) > maxEmailLength {
		return &ValidationError{
			Field:   "email",
			Message: fmt.Sprintf("email must not exceed %d characters", maxEmailLength),
		}
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n") {
		return &ValidationError{Field: "email", Message: "email is invalid"}
	}
	return nil
}

// ValidatePassword checks that the password is present and at least minLength characters.
func ValidatePassword(password string, minLength int) error {
	if password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	if utf8.RuneCountInString(password) < minLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", minLength),
		}
	}
	return nil
}

// ValidateNoteTitle expects an already trimmed title.
func ValidateNoteTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > MaxNoteTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", MaxNoteTitleLength),
		}
	}
	return nil
}

// ValidateNoteContent expects already trimmed content. Empty content is allowed.
func ValidateNoteContent(content string) error {
	if utf8.RuneCountInString(content) > MaxNoteContentLength {
		return &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content must not exceed %d characters", MaxNoteContentLength),
		}
	}
	return nil
}
