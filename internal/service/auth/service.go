// Package auth holds the signup, login and token authentication logic.
// It is framework-agnostic: HTTP handlers and middleware call into it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"notes-backend/internal/domain/entity"
	"notes-backend/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when the provider rejects a login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownUser is returned when a verified token carries no user id.
	ErrUnknownUser = errors.New("unable to determine user id")
)

// IdentityProvider creates accounts and issues sessions.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string, fullName *string) (*entity.IdentityUser, *entity.Session, error)
	SignIn(ctx context.Context, email, password string) (*entity.Session, error)
}

// TokenVerifier resolves an access token to a user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// CredentialRequirements defines password policy requirements.
type CredentialRequirements struct {
	MinPasswordLength int
}

// SignupInput is the data needed to register an account.
type SignupInput struct {
	Email    string
	Password string
	FullName *string
}

// SignupResult is the provider's answer plus the locally stored profile.
// Session is nil when the provider requires email confirmation.
// Profile is nil when the profile row could not be written.
type SignupResult struct {
	User    *entity.IdentityUser
	Session *entity.Session
	Profile *entity.User
}

// AuthService handles authentication business logic.
type AuthService struct {
	provider     IdentityProvider
	verifier     TokenVerifier
	users        repository.UserRepository
	requirements CredentialRequirements
}

// NewAuthService creates a new authentication service.
// users may be nil, in which case no profile is stored on signup.
func NewAuthService(provider IdentityProvider, verifier TokenVerifier, users repository.UserRepository, req CredentialRequirements) *AuthService {
	return &AuthService{
		provider:     provider,
		verifier:     verifier,
		users:        users,
		requirements: req,
	}
}

// Requirements returns the password policy in force.
func (s *AuthService) Requirements() CredentialRequirements {
	return s.requirements
}

func (s *AuthService) validate(email, password string) error {
	if err := entity.ValidateEmail(email); err != nil {
		return err
	}
	return entity.ValidatePassword(password, s.requirements.MinPasswordLength)
}

// Signup registers the account with the provider and mirrors a profile row.
// A failed profile write is logged and does not fail the signup.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := s.validate(in.Email, in.Password); err != nil {
		return nil, err
	}

	user, session, err := s.provider.SignUp(ctx, in.Email, in.Password, in.FullName)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	return &SignupResult{
		User:    user,
		Session: session,
		Profile: s.storeProfile(ctx, user, in),
	}, nil
}

func (s *AuthService) storeProfile(ctx context.Context, user *entity.IdentityUser, in SignupInput) *entity.User {
	if s.users == nil || user == nil {
		return nil
	}
	id, err := uuid.Parse(user.ID)
	if err != nil {
		slog.Warn("skipping profile insert: provider user id is not a uuid",
			slog.String("user_id", user.ID))
		return nil
	}

	profile := &entity.User{
		ID:        id,
		Email:     in.Email,
		FullName:  in.FullName,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Upsert(ctx, profile); err != nil {
		slog.Warn("profile insert failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
		return nil
	}
	return profile
}

// Login exchanges credentials for a session.
// Any provider failure is reported as ErrInvalidCredentials; the cause stays wrapped for logs.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	email = strings.TrimSpace(email)
	if err := s.validate(email, password); err != nil {
		return nil, err
	}

	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	return session, nil
}

// Authenticate returns the id of the user the token belongs to.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", ErrUnknownUser
	}
	return userID, nil
}
