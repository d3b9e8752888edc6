package note

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"notes-backend/internal/config"
	"notes-backend/internal/domain/entity"
	"notes-backend/internal/observability/metrics"
	"notes-backend/internal/observability/tracing"
	"notes-backend/internal/repository"
)

// Summarizer produces a bounded extractive summary of a text.
type Summarizer interface {
	Summarize(ctx context.Context, content string, maxSentences int) (string, error)
	Method() string
}

// CreateInput represents the input parameters for creating a note.
// The owner is always the authenticated user.
type CreateInput struct {
	Title   string
	Content string
	Pinned  bool
}

// UpdateInput represents the input parameters for updating a note.
// Fields with nil values will not be updated.
type UpdateInput struct {
	Title   *string
	Content *string
	Pinned  *bool
}

func (in UpdateInput) empty() bool {
	return in.Title == nil && in.Content == nil && in.Pinned == nil
}

// Service provides note management use cases.
type Service struct {
	Repo       repository.NoteRepository
	Summarizer Summarizer
	Policy     config.SummaryPolicy

	now func() time.Time
}

// NewService creates a note service.
func NewService(repo repository.NoteRepository, summarizer Summarizer, policy config.SummaryPolicy) *Service {
	return &Service{Repo: repo, Summarizer: summarizer, Policy: policy, now: time.Now}
}

func (s *Service) timestamp() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

// List returns the user's notes, pinned first and then most recently updated.
// keyword is matched case-insensitively against the fields selected by filter.
func (s *Service) List(ctx context.Context, userID uuid.UUID, keyword, filter string) ([]*entity.Note, error) {
	notes, err := s.Repo.List(ctx, repository.NoteQuery{
		UserID:  userID,
		Keyword: strings.TrimSpace(keyword),
		Filter:  entity.ParseNoteFilter(filter),
	})
	metrics.RecordNoteOperation("list", resultOf(err))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Create stores a new note owned by userID.
// Title and content are trimmed; the title must not be blank.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*entity.Note, error) {
	now := s.timestamp()
	n := &entity.Note{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Content:   strings.TrimSpace(in.Content),
		Pinned:    in.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := n.Validate(); err != nil {
		metrics.RecordNoteOperation("create", resultOf(err))
		return nil, err
	}

	err := s.Repo.Create(ctx, n)
	metrics.RecordNoteOperation("create", resultOf(err))
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

// Update applies the non-nil fields of in to the user's note.
// Returns ErrNoteNotFound, ErrForbidden, ErrNoFieldsToUpdate or a validation error.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (*entity.Note, error) {
	n, err := s.update(ctx, userID, id, in)
	metrics.RecordNoteOperation("update", resultOf(err))
	return n, err
}

func (s *Service) update(ctx context.Context, userID, id uuid.UUID, in UpdateInput) (*entity.Note, error) {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		n.Title = title
	}
	if in.Content != nil {
		n.Content = strings.TrimSpace(*in.Content)
	}
	if in.Pinned != nil {
		n.Pinned = *in.Pinned
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	n.UpdatedAt = s.timestamp()

	if err := s.Repo.Update(ctx, n); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

// Delete removes the user's note.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.delete(ctx, userID, id)
	metrics.RecordNoteOperation("delete", resultOf(err))
	return err
}

func (s *Service) delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// Summarize returns an extractive summary of the user's note.
// rawMax is the unparsed max_sentences value; see ResolveMaxSentences.
func (s *Service) Summarize(ctx context.Context, userID, id uuid.UUID, rawMax string) (*entity.Summary, error) {
	ctx, span := tracing.StartSpan(ctx, "note.summarize",
		attribute.String("note.id", id.String()),
	)
	defer span.End()

	maxSentences := 0
	summary, err := func() (*entity.Summary, error) {
		n, err := s.owned(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(n.Content) == "" {
			return nil, ErrEmptyContent
		}

		maxSentences = ResolveMaxSentences(rawMax, s.Policy)
		span.SetAttributes(
			attribute.Int("summary.max_sentences", maxSentences),
			attribute.Int("note.content_length", len(n.Content)),
		)

		text, err := s.Summarizer.Summarize(ctx, n.Content, maxSentences)
		if err != nil {
			return nil, fmt.Errorf("summarize note: %w", err)
		}
		return &entity.Summary{NoteID: n.ID, Summary: text, Method: s.Summarizer.Method()}, nil
	}()

	result := summaryResult(err)
	span.SetAttributes(attribute.String("summary.result", result))
	tracing.RecordError(span, err)
	metrics.RecordSummaryRequest(result, maxSentences)
	return summary, err
}

// owned loads the note and checks that userID owns it.
func (s *Service) owned(ctx context.Context, userID, id uuid.UUID) (*entity.Note, error) {
	n, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if n == nil {
		return nil, ErrNoteNotFound
	}
	if !n.OwnedBy(userID) {
		return nil, ErrForbidden
	}
	return n, nil
}

func resultOf(err error) string {
	var ve *entity.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNoteNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.As(err, &ve), errors.Is(err, ErrNoFieldsToUpdate), errors.Is(err, ErrEmptyTitle):
		return "invalid"
	default:
		return "error"
	}
}

func summaryResult(err error) string {
	if errors.Is(err, ErrEmptyContent) {
		return "empty_content"
	}
	return resultOf(err)
}
