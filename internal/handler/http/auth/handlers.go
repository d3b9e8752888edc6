// Package auth holds the signup and login endpoints and the bearer token
// middleware that protects the notes API.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"notes-backend/internal/domain/entity"
	"notes-backend/internal/handler/http/respond"
	"notes-backend/internal/infra/identity"
	"notes-backend/internal/observability/logging"
	authservice "notes-backend/internal/service/auth"
)

var (
	errInvalidBody        = errors.New("invalid request body")
	errInvalidCredentials = errors.New("invalid credentials")
)

const msgProviderUnavailable = "identity provider unavailable"

// Service is the part of the auth service used by the HTTP handlers.
type Service interface {
	Signup(ctx context.Context, in authservice.SignupInput) (*authservice.SignupResult, error)
	Login(ctx context.Context, email, password string) (*entity.Session, error)
}

type signupRequest struct {
	Email    string  `json:"email" example:"ada@example.com"`
	Password string  `json:"password" example:"correct horse battery"`
	FullName *string `json:"full_name,omitempty" example:"Ada Lovelace"`
}

type signupResponse struct {
	User    *entity.IdentityUser `json:"user"`
	Session *entity.Session      `json:"session"`
	Profile *entity.User         `json:"profile"`
}

type loginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct horse battery"`
}

type loginResponse struct {
	Session *entity.Session `json:"session"`
}

// SignupHandler registers an account with the identity provider.
//
// @Summary      Sign up
// @Description  Creates an account with the identity provider and stores a local profile.
// @Description  session is null when the provider requires email confirmation; profile is null when it could not be stored.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body signupRequest true "Account details"
// @Success      201 {object} signupResponse
// @Failure      400 {object} map[string]string "Invalid input or rejected by the identity provider"
// @Failure      429 {object} map[string]string "Rate limit exceeded"
// @Failure      502 {object} map[string]string "Identity provider unavailable"
// @Router       /auth/signup [post]
func SignupHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() { RecordAuthDuration("signup", time.Since(start).Seconds()) }()
		logger := logging.FromContext(r.Context())

		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest("signup", "invalid_request")
			respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
			return
		}

		res, err := svc.Signup(r.Context(), authservice.SignupInput{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
		})
		if err != nil {
			writeAuthError(w, logger, "signup", err)
			return
		}

		RecordAuthRequest("signup", "success")
		logger.Info("account created", slog.Bool("profile_stored", res.Profile != nil))
		respond.JSON(w, http.StatusCreated, signupResponse{
			User:    res.User,
			Session: res.Session,
			Profile: res.Profile,
		})
	}
}

// LoginHandler exchanges email and password for a session.
//
// @Summary      Log in
// @Description  Authenticates with the identity provider and returns its session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Credentials"
// @Success      200 {object} loginResponse
// @Failure      400 {object} map[string]string "Invalid input"
// @Failure      401 {object} map[string]string "Invalid credentials"
// @Failure      429 {object} map[string]string "Rate limit exceeded"
// @Failure      502 {object} map[string]string "Identity provider unavailable"
// @Router       /auth/login [post]
func LoginHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() { RecordAuthDuration("login", time.Since(start).Seconds()) }()
		logger := logging.FromContext(r.Context())

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest("login", "invalid_request")
			respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
			return
		}

		session, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAuthError(w, logger, "login", err)
			return
		}

		RecordAuthRequest("login", "success")
		respond.JSON(w, http.StatusOK, loginResponse{Session: session})
	}
}

// writeAuthError maps auth service errors to responses.
// Provider rejections are client errors; signup echoes the provider's message
// while login answers with a fixed one so accounts cannot be probed.
func writeAuthError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		RecordAuthRequest(op, "invalid_request")
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message})
		return
	}

	var pe *identity.ProviderError
	if errors.As(err, &pe) && identity.IsClientError(pe) {
		RecordAuthRequest(op, "rejected")
		logger.Info("identity provider rejected request",
			slog.String("operation", op),
			slog.Int("provider_status", pe.StatusCode))
		if op == "login" {
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": errInvalidCredentials.Error()})
			return
		}
		respond.SafeError(w, http.StatusBadRequest, respond.Public(http.StatusBadRequest, pe.Message, err))
		return
	}

	RecordAuthRequest(op, "error")
	respond.SafeError(w, http.StatusBadGateway,
		respond.Public(http.StatusBadGateway, msgProviderUnavailable, err))
}
