// Package worker runs the API's periodic background jobs on a cron schedule,
// such as refreshing gauges that are too expensive to compute per scrape.
package worker

import (
	"errors"
	"fmt"
	"time"

	"notes-backend/pkg/config"
)

// Config controls when scheduled jobs run and how long each run may take.
type Config struct {
	// Schedule is a cron expression or descriptor, e.g. "*/5 * * * *" or "@every 5m".
	Schedule string

	// Timezone is the IANA name used to interpret Schedule.
	Timezone string

	// JobTimeout bounds a single job run.
	JobTimeout time.Duration
}

// DefaultConfig refreshes every five minutes in UTC with a 30 second run budget.
func DefaultConfig() Config {
	return Config{
		Schedule:   "@every 5m",
		Timezone:   "UTC",
		JobTimeout: 30 * time.Second,
	}
}

// Validate checks every field and reports all problems together.
func (c Config) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil || c.Timezone == "" {
		errs = append(errs, fmt.Errorf("timezone: invalid IANA name %q", c.Timezone))
	}
	if err := config.ValidatePositiveDuration(c.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}

	return errors.Join(errs...)
}
