package blockgen

import (
	"github.com/rs/zerolog"

	"github.com/ygrebnov/blockgen/clock"
	"github.com/ygrebnov/blockgen/metrics"
)

// Config holds Generator configuration.
type Config struct {
	// BlockIntervalMS is the roll period, in milliseconds. Must be
	// positive.
	// Default: 200.
	BlockIntervalMS int

	// BlockQueueCapacity is the max number of completed blocks the block
	// queue holds before Insert blocks. Must be positive.
	// Default: 10.
	BlockQueueCapacity int

	// MaxRatePerSecond is the admission ceiling applied to every Add*
	// call. Zero (or unset) means unlimited.
	// Default: 0 (unlimited).
	MaxRatePerSecond int

	// Logger receives the generator's structured log lines.
	// The zero value is zerolog's disabled logger, which is silent.
	Logger zerolog.Logger

	// MetricsProvider constructs the instruments used to record blocks
	// generated/pushed, queue depth, push latency, and errors.
	// Default: metrics.NewNoopProvider().
	MetricsProvider metrics.Provider

	// Clock is the monotonic time source driving the roll timer.
	// Default: clock.System().
	Clock clock.Clock
}

// defaultConfig centralizes default values for Config, forming the base
// that buildConfig applies functional options on top of.
func defaultConfig() Config {
	return Config{
		BlockIntervalMS:    200,
		BlockQueueCapacity: 10,
		MaxRatePerSecond:   0,
		MetricsProvider:    metrics.NewNoopProvider(),
		Clock:              clock.System(),
	}
}

// validateConfig enforces the generator's constructor invariants: it
// rejects non-positive BlockIntervalMS, non-positive BlockQueueCapacity,
// and negative MaxRatePerSecond.
func validateConfig(cfg *Config) error {
	if cfg.BlockIntervalMS <= 0 {
		return newConfigurationError("BlockIntervalMS", "must be positive")
	}
	if cfg.BlockQueueCapacity <= 0 {
		return newConfigurationError("BlockQueueCapacity", "must be positive")
	}
	if cfg.MaxRatePerSecond < 0 {
		return newConfigurationError("MaxRatePerSecond", "must not be negative")
	}
	return nil
}
