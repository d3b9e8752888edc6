package note

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notes-backend/internal/domain/entity"
	"notes-backend/internal/handler/http/auth"
	noteUC "notes-backend/internal/usecase/note"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, userID uuid.UUID, keyword, filter string) ([]*entity.Note, error) {
	args := m.Called(ctx, userID, keyword, filter)
	notes, _ := args.Get(0).([]*entity.Note)
	return notes, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, userID uuid.UUID, in noteUC.CreateInput) (*entity.Note, error) {
	args := m.Called(ctx, userID, in)
	n, _ := args.Get(0).(*entity.Note)
	return n, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, userID, id uuid.UUID, in noteUC.UpdateInput) (*entity.Note, error) {
	args := m.Called(ctx, userID, id, in)
	n, _ := args.Get(0).(*entity.Note)
	return n, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockService) Summarize(ctx context.Context, userID, id uuid.UUID, rawMax string) (*entity.Summary, error) {
	args := m.Called(ctx, userID, id, rawMax)
	s, _ := args.Get(0).(*entity.Summary)
	return s, args.Error(1)
}

var (
	caller = uuid.MustParse("2b1d7f4e-0c3a-4e7e-9a55-1c6a3e2f7b90")
	noteA  = uuid.MustParse("7d0f4f0e-3b57-4b8f-a2b1-2a8f1c1e9c11")
	stamp  = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
)

// asCaller stands in for the auth middleware.
func asCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), caller)))
	})
}

func newMux(svc Service) *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, svc, asCaller)
	return mux
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sampleNote() *entity.Note {
	return &entity.Note{
		ID:        noteA,
		UserID:    caller,
		Title:     "Reading list",
		Content:   "Finish the storage chapter.",
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
}

/* ───────── List ───────── */

func TestListHandler(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, caller, "storage", "content").Return([]*entity.Note{sampleNote()}, nil)

	rec := do(newMux(svc), http.MethodGet, "/notes?q=storage&filter=content", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []DTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	if diff := cmp.Diff([]DTO{toDTO(sampleNote())}, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
	svc.AssertExpectations(t)
}

func TestListHandler_EmptyIsArray(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, caller, "", "").Return(nil, nil)

	rec := do(newMux(svc), http.MethodGet, "/notes", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListHandler_StoreError(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, caller, "", "").Return(nil, errors.New("list notes: connection reset"))

	rec := do(newMux(svc), http.MethodGet, "/notes", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestHandlers_RequireUser(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, &mockService{})

	rec := do(mux, http.MethodGet, "/notes", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unable to determine user id"}`, rec.Body.String())
}

/* ───────── Create ───────── */

func TestCreateHandler(t *testing.T) {
	svc := &mockService{}
	svc.On("Create", mock.Anything, caller, noteUC.CreateInput{
		Title: "Reading list", Content: "Finish the storage chapter.",
	}).Return(sampleNote(), nil)

	// user_id in the body is ignored
	rec := do(newMux(svc), http.MethodPost, "/notes",
		`{"title":"Reading list","content":"Finish the storage chapter.","user_id":"`+uuid.NewString()+`"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got DTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, caller, got.UserID)
	assert.Equal(t, noteA, got.ID)
	svc.AssertExpectations(t)
}

func TestCreateHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"malformed json", `{"title":`, nil, http.StatusBadRequest, "invalid request body"},
		{"blank title", `{"title":"  "}`,
			&entity.ValidationError{Field: "title", Message: "title is required"},
			http.StatusBadRequest, "title is required"},
		{"content too long", `{"title":"t","content":"x"}`,
			&entity.ValidationError{Field: "content", Message: "content must not exceed 2000 characters"},
			http.StatusBadRequest, "content must not exceed 2000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Create", mock.Anything, caller, mock.Anything).Return(nil, tt.err).Maybe()

			rec := do(newMux(svc), http.MethodPost, "/notes", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
		})
	}
}

/* ───────── Update ───────── */

func TestUpdateHandler(t *testing.T) {
	pinned := true
	updated := sampleNote()
	updated.Pinned = true

	svc := &mockService{}
	svc.On("Update", mock.Anything, caller, noteA, noteUC.UpdateInput{Pinned: &pinned}).Return(updated, nil)

	rec := do(newMux(svc), http.MethodPut, "/notes/"+noteA.String(), `{"pinned":true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pinned":true`)
	svc.AssertExpectations(t)
}

func TestUpdateHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"invalid id", "/notes/42", `{"title":"x"}`, nil, http.StatusBadRequest, "invalid id"},
		{"malformed json", "/notes/" + noteA.String(), `[`, nil, http.StatusBadRequest, "invalid request body"},
		{"not found", "/notes/" + noteA.String(), `{"title":"x"}`, noteUC.ErrNoteNotFound,
			http.StatusNotFound, "note not found"},
		{"other owner", "/notes/" + noteA.String(), `{"title":"x"}`, noteUC.ErrForbidden,
			http.StatusForbidden, "not allowed"},
		{"no fields", "/notes/" + noteA.String(), `{}`, noteUC.ErrNoFieldsToUpdate,
			http.StatusBadRequest, "no fields to update"},
		{"blank title", "/notes/" + noteA.String(), `{"title":" "}`, noteUC.ErrEmptyTitle,
			http.StatusBadRequest, "title cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Update", mock.Anything, caller, noteA, mock.Anything).Return(nil, tt.err).Maybe()

			rec := do(newMux(svc), http.MethodPut, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
		})
	}
}

/* ───────── Delete ───────── */

func TestDeleteHandler(t *testing.T) {
	svc := &mockService{}
	svc.On("Delete", mock.Anything, caller, noteA).Return(nil)

	rec := do(newMux(svc), http.MethodDelete, "/notes/"+noteA.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":true}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestDeleteHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", noteUC.ErrNoteNotFound, http.StatusNotFound},
		{"other owner", noteUC.ErrForbidden, http.StatusForbidden},
		{"store failure", errors.New("delete note: timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Delete", mock.Anything, caller, noteA).Return(tt.err)

			rec := do(newMux(svc), http.MethodDelete, "/notes/"+noteA.String(), "")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

/* ───────── Summary ───────── */

func TestSummaryHandler(t *testing.T) {
	svc := &mockService{}
	svc.On("Summarize", mock.Anything, caller, noteA, "2").Return(&entity.Summary{
		NoteID:  noteA,
		Summary: "Finish the storage chapter.",
		Method:  "naive-extractive",
	}, nil)

	rec := do(newMux(svc), http.MethodPost, "/notes/"+noteA.String()+"/summary?max_sentences=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"note_id":"`+noteA.String()+`","summary":"Finish the storage chapter.","method":"naive-extractive"}`,
		rec.Body.String())
	svc.AssertExpectations(t)
}

func TestSummaryHandler_RawMaxIsPassedThrough(t *testing.T) {
	svc := &mockService{}
	svc.On("Summarize", mock.Anything, caller, noteA, "lots").
		Return(&entity.Summary{NoteID: noteA, Method: "naive-extractive"}, nil)

	rec := do(newMux(svc), http.MethodPost, "/notes/"+noteA.String()+"/summary?max_sentences=lots", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestSummaryHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"invalid id", "/notes/not-a-uuid/summary", nil, http.StatusBadRequest, "invalid id"},
		{"empty content", "/notes/" + noteA.String() + "/summary", noteUC.ErrEmptyContent,
			http.StatusBadRequest, "note has no content to summarize"},
		{"not found", "/notes/" + noteA.String() + "/summary", noteUC.ErrNoteNotFound,
			http.StatusNotFound, "note not found"},
		{"other owner", "/notes/" + noteA.String() + "/summary", noteUC.ErrForbidden,
			http.StatusForbidden, "not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Summarize", mock.Anything, caller, noteA, "").Return(nil, tt.err).Maybe()

			rec := do(newMux(svc), http.MethodPost, tt.path, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
		})
	}
}

func TestRegister_MethodNotAllowed(t *testing.T) {
	rec := do(newMux(&mockService{}), http.MethodPatch, "/notes/"+noteA.String(), "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRegister_MiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	svc := &mockService{}
	svc.On("List", mock.Anything, caller, "", "").Return(nil, nil)

	mux := http.NewServeMux()
	Register(mux, svc, tag("outer"), tag("inner"), asCaller)
	do(mux, http.MethodGet, "/notes", "")

	assert.Equal(t, []string{"outer", "inner"}, order)
}
