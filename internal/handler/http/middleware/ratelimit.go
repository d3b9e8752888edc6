package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"notes-backend/internal/handler/http/respond"
	envcfg "notes-backend/pkg/config"
)

var (
	rateLimitDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_decisions_total",
			Help: "Rate limit decisions by limiter and outcome (allowed/denied)",
		},
		[]string{"limiter", "decision"},
	)

	rateLimitActiveKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rate_limit_active_keys",
			Help: "Number of clients currently tracked by a rate limiter",
		},
		[]string{"limiter"},
	)
)

// RateLimitConfig configures a per-client token bucket.
type RateLimitConfig struct {
	// Name labels the limiter in metrics and logs.
	Name string
	// Limit is the number of requests allowed per Window.
	Limit int
	Window time.Duration
	// Burst is the bucket size; defaults to Limit.
	Burst int
	// IdleTTL is how long an unused client bucket is kept before eviction.
	IdleTTL time.Duration
	// MaxKeys caps the number of tracked clients; new clients beyond it share one bucket.
	MaxKeys int
}

// DefaultAuthRateLimitConfig limits signup and login to 5 requests per minute per client.
func DefaultAuthRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Name:    "auth",
		Limit:   5,
		Window:  time.Minute,
		IdleTTL: 10 * time.Minute,
		MaxKeys: 10000,
	}
}

// LoadAuthRateLimitConfig overlays AUTH_RATE_LIMIT and AUTH_RATE_WINDOW on the defaults.
func LoadAuthRateLimitConfig() RateLimitConfig {
	cfg := DefaultAuthRateLimitConfig()
	cfg.Limit = envcfg.GetEnvInt("AUTH_RATE_LIMIT", cfg.Limit)
	cfg.Window = envcfg.GetEnvDuration("AUTH_RATE_WINDOW", cfg.Window)
	return cfg
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	cfg       RateLimitConfig
	extractor IPExtractor
	now       func() time.Time

	mu       sync.Mutex
	buckets  map[string]*clientBucket
	overflow *rate.Limiter
}

// NewRateLimiter creates a limiter. Non-positive settings fall back to DefaultAuthRateLimitConfig.
func NewRateLimiter(cfg RateLimitConfig, extractor IPExtractor) *RateLimiter {
	def := DefaultAuthRateLimitConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.Limit
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = def.IdleTTL
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = def.MaxKeys
	}
	if extractor == nil {
		extractor = PeerExtractor{}
	}

	rl := &RateLimiter{
		cfg:       cfg,
		extractor: extractor,
		now:       time.Now,
		buckets:   make(map[string]*clientBucket),
	}
	rl.overflow = rl.newLimiter()
	return rl
}

func (rl *RateLimiter) newLimiter() *rate.Limiter {
	every := rl.cfg.Window / time.Duration(rl.cfg.Limit)
	return rate.NewLimiter(rate.Every(every), rl.cfg.Burst)
}

// Allow consumes one token for key and reports whether the request may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		if len(rl.buckets) >= rl.cfg.MaxKeys {
			lim := rl.overflow
			rl.mu.Unlock()
			return lim.AllowN(now, 1)
		}
		b = &clientBucket{limiter: rl.newLimiter()}
		rl.buckets[key] = b
		rateLimitActiveKeys.WithLabelValues(rl.cfg.Name).Set(float64(len(rl.buckets)))
	}
	b.lastSeen = now
	lim := b.limiter
	rl.mu.Unlock()

	return lim.AllowN(now, 1)
}

// ActiveKeys returns the number of tracked clients.
func (rl *RateLimiter) ActiveKeys() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// Cleanup evicts buckets idle for longer than IdleTTL and returns how many were removed.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.cfg.IdleTTL)
	removed := 0
	for key, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
			removed++
		}
	}
	rateLimitActiveKeys.WithLabelValues(rl.cfg.Name).Set(float64(len(rl.buckets)))
	return removed
}

// Run evicts idle buckets every interval until ctx is cancelled.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := rl.Cleanup(); removed > 0 {
				slog.Debug("rate limit cleanup",
					slog.String("limiter", rl.cfg.Name),
					slog.Int("removed", removed),
					slog.Int("active", rl.ActiveKeys()))
			}
		}
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
// Requests whose client IP cannot be determined are let through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	retryAfter := strconv.Itoa(max(1, int(math.Ceil((rl.cfg.Window / time.Duration(rl.cfg.Limit)).Seconds()))))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := rl.extractor.ExtractIP(r)
		if err != nil {
			slog.Warn("rate limit: cannot determine client ip",
				slog.String("limiter", rl.cfg.Name),
				slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		if !rl.Allow(ip) {
			rateLimitDecisions.WithLabelValues(rl.cfg.Name, "denied").Inc()
			w.Header().Set("Retry-After", retryAfter)
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}

		rateLimitDecisions.WithLabelValues(rl.cfg.Name, "allowed").Inc()
		next.ServeHTTP(w, r)
	})
}
