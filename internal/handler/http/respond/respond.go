// Package respond writes JSON bodies and error envelopes of the form
// {"error": "..."}. Messages that may leak internals are replaced before they
// reach the client.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// genericMessage replaces any error text that is not known to be client-safe.
const genericMessage = "internal server error"

type errorBody struct {
	Error string `json:"error"`
}

// clientPhrases appear in messages that describe a caller mistake.
var clientPhrases = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"must not",
	"cannot be",
	"too long",
	"too short",
	"not allowed",
	"no fields",
	"no content",
	"unable to determine",
}

// JSON encodes v with the given status. A nil v sends headers only.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encode response body",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes err's message unfiltered. Only use it for messages built by the handler itself.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, errorBody{Error: err.Error()})
}

// IsSafeMessage reports whether msg reads like a validation or lookup failure.
func IsSafeMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, p := range clientPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// PublicError pairs a message meant for the client with the cause kept for logs.
type PublicError struct {
	Status  int
	Message string
	Cause   error
}

// Public returns a PublicError.
func Public(status int, message string, cause error) *PublicError {
	return &PublicError{Status: status, Message: message, Cause: cause}
}

func (e *PublicError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *PublicError) Unwrap() error { return e.Cause }

// SafeError answers with an error envelope.
//
// A PublicError in err's chain decides the status and message itself.
// Otherwise a 4xx whose message passes IsSafeMessage is sent as is, and
// everything else is logged with credentials masked and answered generically.
// A nil err writes nothing.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var pub *PublicError
	if errors.As(err, &pub) {
		if pub.Cause != nil {
			slog.Default().Warn("request failed",
				slog.Int("code", pub.Status),
				slog.String("user_message", pub.Message),
				slog.String("error", SanitizeError(pub.Cause)))
		}
		JSON(w, pub.Status, errorBody{Error: pub.Message})
		return
	}

	if msg := err.Error(); code < http.StatusInternalServerError && IsSafeMessage(msg) {
		JSON(w, code, errorBody{Error: msg})
		return
	}

	slog.Default().Error("request failed",
		slog.Int("code", code),
		slog.String("status", http.StatusText(code)),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, errorBody{Error: genericMessage})
}
