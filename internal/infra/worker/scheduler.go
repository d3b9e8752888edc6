package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"notes-backend/internal/handler/http/respond"
)

// ErrUnknownJob is returned by RunNow for a name that was never added.
var ErrUnknownJob = errors.New("unknown job")

// JobFunc is one scheduled unit of work. ctx carries the per-run timeout.
type JobFunc func(ctx context.Context) error

// Scheduler runs named jobs on a shared cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	cfg     Config
	logger  *slog.Logger
	baseCtx context.Context

	mu   sync.RWMutex
	jobs map[string]JobFunc
}

// NewScheduler validates cfg and prepares a stopped scheduler.
func NewScheduler(cfg Config, logger *slog.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("worker config: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("worker timezone: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		cfg:     cfg,
		logger:  logger,
		baseCtx: context.Background(),
		jobs:    make(map[string]JobFunc),
	}, nil
}

// AddJob registers fn under name on the configured schedule.
func (s *Scheduler) AddJob(name string, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already exists", name)
	}
	if _, err := s.cron.AddFunc(s.cfg.Schedule, func() { s.run(name, fn) }); err != nil {
		return fmt.Errorf("add job %q: %w", name, err)
	}
	s.jobs[name] = fn
	return nil
}

// RunNow runs a registered job immediately, outside the schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.RLock()
	fn, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.runWith(ctx, name, fn)
}

// Start begins scheduling. Runs started by the schedule derive from ctx,
// so cancelling it aborts in-flight jobs.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("worker started",
		slog.String("schedule", s.cfg.Schedule),
		slog.String("timezone", s.cfg.Timezone),
		slog.Int("jobs", len(s.jobs)))
}

// Stop halts scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(name string, fn JobFunc) {
	s.mu.RLock()
	ctx := s.baseCtx
	s.mu.RUnlock()
	_ = s.runWith(ctx, name, fn)
}

func (s *Scheduler) runWith(ctx context.Context, name string, fn JobFunc) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	recordJobRun(name, elapsed.Seconds(), err)

	if err != nil {
		s.logger.Error("job failed",
			slog.String("job", name),
			slog.Duration("duration", elapsed),
			slog.String("error", respond.SanitizeError(err)))
		return err
	}
	s.logger.Debug("job completed", slog.String("job", name), slog.Duration("duration", elapsed))
	return nil
}
