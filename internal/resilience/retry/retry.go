// Package retry repeats calls that failed for transient reasons, sleeping an
// exponentially growing, jittered delay between attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config describes one retry policy.
type Config struct {
	// MaxAttempts counts every call, the first one included. Values below 1 mean 1.
	MaxAttempts int
	// InitialDelay is the pause after the first failure.
	InitialDelay time.Duration
	// MaxDelay caps the pause before jitter is added.
	MaxDelay time.Duration
	// Multiplier grows the pause after each failure.
	Multiplier float64
	// Jitter adds up to this fraction of the pause at random (0 to 1).
	Jitter float64
	// Retryable replaces IsRetryable when set.
	Retryable func(error) bool
}

// IdentityAPIConfig is used for signup, login and token checks against the identity provider.
// Those calls sit on the request path, so the whole schedule stays under a few seconds.
func IdentityAPIConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2,
		Jitter:       0.2,
	}
}

// DBConfig is used while waiting for the database at startup.
func DBConfig() Config {
	return Config{
		MaxAttempts:  5,
		InitialDelay: 250 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2,
		Jitter:       0.1,
	}
}

func (c Config) attempts() int {
	return max(c.MaxAttempts, 1)
}

func (c Config) shouldRetry(err error) bool {
	if c.Retryable != nil {
		return c.Retryable(err)
	}
	return IsRetryable(err)
}

// backoff yields the pause before each retry.
type backoff struct {
	cfg  Config
	base time.Duration
}

func (b *backoff) next() time.Duration {
	if b.base == 0 {
		b.base = b.cfg.InitialDelay
	} else {
		b.base = min(time.Duration(float64(b.base)*b.cfg.Multiplier), b.cfg.MaxDelay)
	}
	return withJitter(b.base, b.cfg.Jitter)
}

// WithBackoff calls fn until it succeeds or fails with an error the policy does
// not retry. When every attempt is used up the last error is returned wrapped.
// Cancelling ctx stops the wait between attempts.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	total := cfg.attempts()
	pause := backoff{cfg: cfg}

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				slog.Info("call recovered after retry", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !cfg.shouldRetry(err) {
			return err
		}
		if attempt == total {
			return fmt.Errorf("gave up after %d attempts: %w", total, err)
		}

		wait := pause.next()
		slog.Warn("transient failure, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", total),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		if err := sleep(ctx, wait); err != nil {
			return fmt.Errorf("retry interrupted: %w", err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// classified is implemented by errors that know whether a repeat may succeed.
type classified interface {
	Retryable() bool
}

// IsRetryable reports whether err looks transient. Context errors never are.
// Errors with a Retryable method decide for themselves. Otherwise network
// timeouts and refused, reset or unreachable connections are retried.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var c classified
	if errors.As(err, &c) {
		return c.Retryable()
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

// IsRetryableStatus reports whether a response with this status may succeed when repeated.
func IsRetryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		(code >= 500 && code < 600)
}

func withJitter(d time.Duration, fraction float64) time.Duration {
	fraction = min(fraction, 1)
	if fraction <= 0 || d <= 0 {
		return d
	}
	// #nosec G404 -- jitter only spreads retries, it is not a secret.
	return d + time.Duration(rand.Float64()*fraction*float64(d))
}
