// Package circuitbreaker stops calling a dependency that keeps failing and
// probes it again after a cooldown. It is a thin layer over sony/gobreaker that
// adds ratio-based tripping, presets and a Prometheus state gauge.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

// ErrOpenState is returned without calling through while the breaker is open.
var ErrOpenState = gobreaker.ErrOpenState

// ErrTooManyRequests is returned when all half-open probe slots are taken.
var ErrTooManyRequests = gobreaker.ErrTooManyRequests

var (
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state by name (0 closed, 1 half-open, 2 open)",
	}, []string{"name"})

	breakerRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circuit_breaker_rejections_total",
		Help: "Calls refused because the circuit was open or saturated",
	}, []string{"name"})
)

// Config describes one breaker.
type Config struct {
	Name string
	// HalfOpenProbes is how many calls may test the dependency after the cooldown.
	HalfOpenProbes uint32
	// Window resets the closed-state counters periodically. Zero never resets.
	Window time.Duration
	// Cooldown is how long the breaker stays open.
	Cooldown time.Duration
	// TripRatio is the failure share that opens the breaker once MinSamples calls were seen.
	TripRatio float64
	MinSamples uint32
	// IsSuccessful decides which errors do not count as failures. Nil means only a nil error succeeds.
	IsSuccessful func(err error) bool
}

// DefaultConfig is a general-purpose preset.
func DefaultConfig(name string) Config {
	return Config{
		Name:           name,
		HalfOpenProbes: 3,
		Window:         30 * time.Second,
		Cooldown:       time.Minute,
		TripRatio:      0.6,
		MinSamples:     5,
	}
}

// IdentityAPIConfig guards the identity provider. Login waits on it, so the cooldown is short.
func IdentityAPIConfig() Config {
	cfg := DefaultConfig("identity-api")
	cfg.Cooldown = 15 * time.Second
	cfg.TripRatio = 0.5
	return cfg
}

// Breaker guards calls to one dependency.
type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker
}

// New builds a Breaker and publishes its initial state.
func New(cfg Config) *Breaker {
	b := &Breaker{name: cfg.Name}
	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.HalfOpenProbes,
		Interval:     cfg.Window,
		Timeout:      cfg.Cooldown,
		IsSuccessful: cfg.IsSuccessful,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= cfg.MinSamples &&
				float64(c.TotalFailures)/float64(c.Requests) >= cfg.TripRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			breakerState.WithLabelValues(name).Set(float64(to))
		},
	})
	breakerState.WithLabelValues(cfg.Name).Set(float64(gobreaker.StateClosed))
	return b
}

// Do runs fn unless the breaker is open.
func (b *Breaker) Do(fn func() error) error {
	_, err := b.Call(func() (any, error) { return nil, fn() })
	return err
}

// Call runs fn and returns its result unless the breaker is open.
func (b *Breaker) Call(fn func() (any, error)) (any, error) {
	v, err := b.cb.Execute(fn)
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		breakerRejections.WithLabelValues(b.name).Inc()
	}
	return v, err
}

// Run is Call with a typed result. The zero value is returned when the breaker refuses.
func Run[T any](b *Breaker, fn func() (T, error)) (T, error) {
	v, err := b.Call(func() (any, error) { return fn() })
	out, _ := v.(T)
	return out, err
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// Counts returns the counters of the current generation.
func (b *Breaker) Counts() gobreaker.Counts { return b.cb.Counts() }

// IsOpen reports whether calls are currently refused outright.
func (b *Breaker) IsOpen() bool { return b.cb.State() == gobreaker.StateOpen }
