package blockgen

import (
	"github.com/rs/zerolog"

	"github.com/ygrebnov/blockgen/clock"
	"github.com/ygrebnov/blockgen/metrics"
)

// Option configures a Generator. Use New(listener, receiverID, opts...) to
// construct one.
type Option func(*Config)

// WithBlockInterval sets the roll period. Default: 200ms.
func WithBlockInterval(ms int) Option {
	return func(c *Config) { c.BlockIntervalMS = ms }
}

// WithBlockQueueCapacity sets the max number of enqueued completed blocks.
// Default: 10.
func WithBlockQueueCapacity(n int) Option {
	return func(c *Config) { c.BlockQueueCapacity = n }
}

// WithMaxRatePerSecond sets the admission ceiling applied to every Add*
// call. Zero means unlimited. Default: 0.
func WithMaxRatePerSecond(n int) Option {
	return func(c *Config) { c.MaxRatePerSecond = n }
}

// WithLogger sets the structured logger used for the generator's log lines.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithMetricsProvider sets the metrics.Provider used to construct the
// generator's instruments. Default: metrics.NewNoopProvider().
func WithMetricsProvider(p metrics.Provider) Option {
	return func(c *Config) { c.MetricsProvider = p }
}

// WithClock overrides the monotonic time source driving the roll timer.
// Intended for tests; production code should rely on the default.
func WithClock(c clock.Clock) Option {
	return func(cfg *Config) { cfg.Clock = c }
}

// buildConfig applies opts on top of defaultConfig and validates the
// result.
func buildConfig(opts ...Option) (Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
