package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"notes-backend/internal/handler/http/respond"
	"notes-backend/internal/observability/logging"
	authservice "notes-backend/internal/service/auth"
)

// Client-facing rejection messages.
var (
	errMissingHeader = errors.New("authorization header is required")
	errNotBearer     = errors.New("authorization header must be a bearer token")
	errInvalidToken  = errors.New("invalid or expired token")
	errUnknownUser   = errors.New("unable to determine user id")
)

// Authenticator resolves a bearer token to the id of its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

type ctxKey string

const ctxUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated user's id stored by Authz.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxUserID).(uuid.UUID)
	return id, ok
}

// WithUserID stores an authenticated user id in ctx.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxUserID, id)
}

// Authz requires a valid bearer token on every request whose path is not in public.
// The user id is placed in the request context and on the request logger.
func Authz(authn Authenticator, public *PublicEndpoints) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public.IsPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				reject(w, "missing_header", errMissingHeader)
				return
			}
			scheme, token, ok := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				reject(w, "not_bearer", errNotBearer)
				return
			}

			start := time.Now()
			sub, err := authn.Authenticate(r.Context(), token)
			RecordAuthzCheckDuration(time.Since(start).Seconds())
			if errors.Is(err, authservice.ErrUnknownUser) {
				reject(w, "unknown_user", errUnknownUser)
				return
			}
			if err != nil {
				logging.FromContext(r.Context()).Debug("token rejected",
					slog.String("error", respond.SanitizeError(err)))
				reject(w, "invalid_token", errInvalidToken)
				return
			}

			userID, err := uuid.Parse(sub)
			if err != nil {
				reject(w, "unknown_user", errUnknownUser)
				return
			}

			ctx := WithUserID(r.Context(), userID)
			ctx = logging.WithLogger(ctx, logging.WithUserID(logging.FromContext(ctx), userID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, reason string, err error) {
	RecordAuthzRejection(reason)
	w.Header().Set("WWW-Authenticate", "Bearer")
	respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
}
