package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs swaps the default logger for one writing JSON into the returned buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Error
}

func TestJSON(t *testing.T) {
	type note struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}

	tests := []struct {
		name     string
		code     int
		value    any
		wantBody string
	}{
		{name: "struct", code: http.StatusCreated, value: note{ID: "n1", Title: "Groceries"}, wantBody: `{"id":"n1","title":"Groceries"}`},
		{name: "slice", code: http.StatusOK, value: []note{}, wantBody: `[]`},
		{name: "map", code: http.StatusOK, value: map[string]int{"total": 2}, wantBody: `{"total":2}`},
		{name: "nil body", code: http.StatusNoContent, value: nil, wantBody: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			JSON(rr, tt.code, tt.value)

			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			if tt.wantBody == "" {
				assert.Empty(t, rr.Body.String())
				return
			}
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestJSON_UnencodableValueIsLogged(t *testing.T) {
	logs := captureLogs(t)
	rr := httptest.NewRecorder()

	JSON(rr, http.StatusOK, map[string]any{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, logs.String(), "encode response body")
}

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, http.StatusMethodNotAllowed, errors.New("method not allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "method not allowed", decodeError(t, rr))
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		err      error
		wantCode int
		wantMsg  string
		wantLog  bool
	}{
		{
			name:     "validation message passes through",
			code:     http.StatusUnprocessableEntity,
			err:      errors.New("validation error on field 'title': title is required"),
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "validation error on field 'title': title is required",
		},
		{
			name:     "not found passes through",
			code:     http.StatusNotFound,
			err:      errors.New("note not found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "note not found",
		},
		{
			name:     "unknown 4xx message is hidden",
			code:     http.StatusBadRequest,
			err:      errors.New("pq: syntax error at or near \"notes\""),
			wantCode: http.StatusBadRequest,
			wantMsg:  genericMessage,
			wantLog:  true,
		},
		{
			name:     "5xx is always hidden",
			code:     http.StatusInternalServerError,
			err:      errors.New("note id is invalid in row 3"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  genericMessage,
			wantLog:  true,
		},
		{
			name:     "public error overrides status and message",
			code:     http.StatusInternalServerError,
			err:      fmt.Errorf("signup: %w", Public(http.StatusBadGateway, "identity provider unavailable", errors.New("dial tcp: refused"))),
			wantCode: http.StatusBadGateway,
			wantMsg:  "identity provider unavailable",
			wantLog:  true,
		},
		{
			name:     "public error without cause is not logged",
			code:     http.StatusInternalServerError,
			err:      Public(http.StatusConflict, "email already registered", nil),
			wantCode: http.StatusConflict,
			wantMsg:  "email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			rr := httptest.NewRecorder()

			SafeError(rr, tt.code, tt.err)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, rr))
			assert.Equal(t, tt.wantLog, logs.Len() > 0, "logs: %s", logs.String())
		})
	}
}

func TestSafeError_MasksCredentialsInLogs(t *testing.T) {
	logs := captureLogs(t)
	rr := httptest.NewRecorder()

	SafeError(rr, http.StatusInternalServerError,
		errors.New("connect postgres://notes:hunter2@db:5432/notes: refused"))

	assert.NotContains(t, logs.String(), "hunter2")
	assert.Contains(t, logs.String(), "notes:****@db")
	assert.NotContains(t, rr.Body.String(), "postgres")
}

func TestSafeError_NilWritesNothing(t *testing.T) {
	rr := httptest.NewRecorder()
	SafeError(rr, http.StatusInternalServerError, nil)

	assert.Equal(t, 0, rr.Body.Len())
	assert.Empty(t, rr.Header().Get("Content-Type"))
}

func TestPublicError(t *testing.T) {
	cause := errors.New("status 503")
	err := Public(http.StatusBadGateway, "identity provider unavailable", cause)

	assert.Equal(t, "identity provider unavailable: status 503", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad request", Public(http.StatusBadRequest, "bad request", nil).Error())
}

func TestIsSafeMessage(t *testing.T) {
	safe := []string{
		"title is required",
		"Invalid note ID",
		"note not found",
		"email already exists",
		"max_sentences must be at least 1",
		"body must not be empty",
		"title too long",
		"no fields to update",
		"unable to determine client IP",
	}
	for _, msg := range safe {
		assert.True(t, IsSafeMessage(msg), msg)
	}

	unsafe := []string{
		"sql: connection is already closed",
		"dial tcp 10.0.0.3:5432: connect: connection refused",
		"panic: runtime error",
	}
	for _, msg := range unsafe {
		assert.False(t, IsSafeMessage(msg), msg)
	}
}
