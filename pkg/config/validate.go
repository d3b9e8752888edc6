package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronSpec matches what the worker scheduler accepts: five fields or a descriptor like "@every 5m".
var cronSpec = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateCronSchedule reports whether schedule can drive the worker scheduler.
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return errors.New("cron schedule cannot be empty")
	}
	if _, err := cronSpec.Parse(schedule); err != nil {
		return fmt.Errorf("cron schedule %q: %w", schedule, err)
	}
	return nil
}

func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %s", d)
	}
	return nil
}

// ValidateIntRange checks lo <= value <= hi.
func ValidateIntRange(value, lo, hi int) error {
	switch {
	case lo > hi:
		return fmt.Errorf("empty range [%d, %d]", lo, hi)
	case value < lo || value > hi:
		return fmt.Errorf("must be between %d and %d, got %d", lo, hi, value)
	}
	return nil
}
