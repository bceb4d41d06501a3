package service

import (
	"time"

	"courtclock/internal/core/deadline"
	"courtclock/internal/platform/config"
)

// Config tunes the deadlines service
type Config struct {
	// HolidayTimeout bounds one jurisdiction's catalog load
	HolidayTimeout time.Duration
	// BulkParallelism caps concurrent engine runs in a batch
	BulkParallelism int
	// MaxSkipRun is the consecutive non-counting day ceiling
	MaxSkipRun int
	// BulkMax caps items per batch
	BulkMax int
	// SlowCalculation logs calculations slower than this; zero disables
	SlowCalculation time.Duration
}

// DefaultConfig returns the built in defaults
func DefaultConfig() Config {
	return Config{
		HolidayTimeout:  2 * time.Second,
		BulkParallelism: 4,
		MaxSkipRun:      deadline.DefaultMaxSkipRun,
		BulkMax:         100,
		SlowCalculation: 250 * time.Millisecond,
	}
}

// ConfigFromEnv reads DEADLINES_* overrides on top of the defaults
func ConfigFromEnv(c config.Conf) Config {
	d := DefaultConfig()
	c = c.Prefix("DEADLINES_")
	return Config{
		HolidayTimeout:  c.MayDuration("HOLIDAY_TIMEOUT", d.HolidayTimeout),
		BulkParallelism: c.MayInt("BULK_PARALLELISM", d.BulkParallelism),
		MaxSkipRun:      c.MayInt("MAX_SKIP_RUN", d.MaxSkipRun),
		BulkMax:         c.MayInt("BULK_MAX", d.BulkMax),
		SlowCalculation: c.MayDuration("SLOW_CALCULATION", d.SlowCalculation),
	}
}
