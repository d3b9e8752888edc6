package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"notes-backend/internal/domain/entity"
)

// ErrInvalidToken is returned when an access token cannot be verified.
var ErrInvalidToken = errors.New("invalid token")

// UserFetcher resolves an access token to the user it belongs to.
type UserFetcher interface {
	GetUser(ctx context.Context, accessToken string) (*entity.IdentityUser, error)
}

// RemoteVerifier asks the identity provider who owns a token.
type RemoteVerifier struct {
	users UserFetcher
}

// NewRemoteVerifier creates a verifier backed by the provider's user endpoint.
func NewRemoteVerifier(users UserFetcher) *RemoteVerifier {
	return &RemoteVerifier{users: users}
}

// Verify returns the user id the token was issued to.
// An empty id with a nil error means the provider answered without one.
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (string, error) {
	user, err := v.users.GetUser(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if user == nil {
		return "", nil
	}
	return user.ID, nil
}

// JWTVerifier checks HS256 access tokens locally with the provider's signing secret.
type JWTVerifier struct {
	secret []byte
	now    func() time.Time
}

// NewJWTVerifier creates a verifier for tokens signed with secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), now: time.Now}
}

// Verify validates the signature, algorithm and expiry and returns the sub claim.
func (v *JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	tok, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, errors.New("unexpected signing method")
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !tok.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := tok.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("%w: invalid sub claim", ErrInvalidToken)
	}
	return sub, nil
}
