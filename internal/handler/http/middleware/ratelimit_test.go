package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(limit int) (*RateLimiter, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(RateLimitConfig{
		Name:    "test",
		Limit:   limit,
		Window:  time.Minute,
		IdleTTL: 5 * time.Minute,
		MaxKeys: 2,
	}, nil)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_AllowPerClient(t *testing.T) {
	rl, now := newTestLimiter(2)

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"), "third request within the window is denied")
	assert.True(t, rl.Allow("b"), "other clients have their own bucket")

	*now = now.Add(30 * time.Second)
	assert.True(t, rl.Allow("a"), "one token refills every window/limit")
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiter_MaxKeysOverflowShared(t *testing.T) {
	rl, _ := newTestLimiter(1)

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
	assert.True(t, rl.Allow("c"), "first overflow client uses the shared bucket")
	assert.False(t, rl.Allow("d"), "shared bucket is exhausted")
	assert.Equal(t, 2, rl.ActiveKeys())
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, now := newTestLimiter(5)
	rl.Allow("a")
	*now = now.Add(4 * time.Minute)
	rl.Allow("b")

	*now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, rl.Cleanup())
	assert.Equal(t, 1, rl.ActiveKeys())
}

func TestRateLimiter_RunStopsOnCancel(t *testing.T) {
	rl, _ := newTestLimiter(5)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		rl.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(1)
	calls := 0
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)

	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
	assert.Equal(t, 1, calls)
}

func TestRateLimiter_MiddlewareUnknownIPPassesThrough(t *testing.T) {
	rl, _ := newTestLimiter(1)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "garbage"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestLoadAuthRateLimitConfig(t *testing.T) {
	t.Setenv("AUTH_RATE_LIMIT", "10")
	t.Setenv("AUTH_RATE_WINDOW", "30s")

	cfg := LoadAuthRateLimitConfig()

	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, 30*time.Second, cfg.Window)
	assert.Equal(t, "auth", cfg.Name)
}
