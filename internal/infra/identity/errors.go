package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"notes-backend/internal/resilience/retry"
)

// ErrNotConfigured is returned when the client has no base URL.
var ErrNotConfigured = errors.New("identity provider is not configured")

// ProviderError is a non-2xx response from the identity provider.
type ProviderError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider error (%d): %s", e.StatusCode, e.Message)
}

// Retryable reports whether the request may succeed when repeated.
func (e *ProviderError) Retryable() bool {
	return retry.IsRetryableStatus(e.StatusCode)
}

// IsClientError reports whether err is a 4xx response from the provider.
func IsClientError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.StatusCode >= 400 && pe.StatusCode < 500
}

// errorFields are checked in order; GoTrue versions disagree on the field name.
var errorFields = []string{"msg", "error_description", "message", "error"}

// newProviderError builds a ProviderError from a response body.
func newProviderError(status int, body []byte) *ProviderError {
	return &ProviderError{StatusCode: status, Message: extractMessage(status, body)}
}

func extractMessage(status int, body []byte) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range errorFields {
			if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(status)
}

// isRetryable retries transient transport failures and retryable statuses, never 4xx rejections.
func isRetryable(err error) bool {
	return retry.IsRetryable(err)
}
