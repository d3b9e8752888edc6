package note

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"notes-backend/internal/domain/entity"
	noteUC "notes-backend/internal/usecase/note"
)

// Service is the note use case as seen by the HTTP layer.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, keyword, filter string) ([]*entity.Note, error)
	Create(ctx context.Context, userID uuid.UUID, in noteUC.CreateInput) (*entity.Note, error)
	Update(ctx context.Context, userID, id uuid.UUID, in noteUC.UpdateInput) (*entity.Note, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Summarize(ctx context.Context, userID, id uuid.UUID, rawMax string) (*entity.Summary, error)
}

// Register registers the note routes on mux. Each handler is wrapped with mws,
// the first being outermost; callers pass the auth middleware here.
func Register(mux *http.ServeMux, svc Service, mws ...func(http.Handler) http.Handler) {
	wrap := func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}

	mux.Handle("GET /notes", wrap(ListHandler{svc}))
	mux.Handle("POST /notes", wrap(CreateHandler{svc}))
	mux.Handle("PUT /notes/{id}", wrap(UpdateHandler{svc}))
	mux.Handle("DELETE /notes/{id}", wrap(DeleteHandler{svc}))
	mux.Handle("POST /notes/{id}/summary", wrap(SummaryHandler{svc}))
}
