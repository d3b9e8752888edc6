package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-backend/internal/domain/entity"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestJWTVerifier_Verify(t *testing.T) {
	v := NewJWTVerifier(testSecret)
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	tests := []struct {
		name    string
		token   string
		wantSub string
		wantErr bool
	}{
		{
			name:    "valid token",
			token:   signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "user-1", "exp": future}),
			wantSub: "user-1",
		},
		{
			name:    "expired",
			token:   signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "user-1", "exp": past}),
			wantErr: true,
		},
		{
			name:    "missing exp",
			token:   signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "user-1"}),
			wantErr: true,
		},
		{
			name:    "wrong secret",
			token:   signToken(t, jwt.SigningMethodHS256, []byte("another-secret"), jwt.MapClaims{"sub": "user-1", "exp": future}),
			wantErr: true,
		},
		{
			name:    "HS512 rejected",
			token:   signToken(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{"sub": "user-1", "exp": future}),
			wantErr: true,
		},
		{
			name:    "missing sub yields empty id",
			token:   signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"exp": future}),
			wantSub: "",
		},
		{
			name:    "garbage",
			token:   "not-a-jwt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := v.Verify(context.Background(), tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSub, sub)
		})
	}
}

type stubUsers struct {
	user *entity.IdentityUser
	err  error
}

func (s stubUsers) GetUser(context.Context, string) (*entity.IdentityUser, error) {
	return s.user, s.err
}

func TestRemoteVerifier_Verify(t *testing.T) {
	sub, err := NewRemoteVerifier(stubUsers{user: &entity.IdentityUser{ID: "u1"}}).Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", sub)

	_, err = NewRemoteVerifier(stubUsers{err: errors.New("401")}).Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrInvalidToken)

	sub, err = NewRemoteVerifier(stubUsers{}).Verify(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, sub)
}
