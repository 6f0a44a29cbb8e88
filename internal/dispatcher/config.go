package dispatcher

import "time"

// Config controls how the dispatcher runs handlers.
type Config struct {
	// EnableMetrics turns on per-action counters and timings.
	EnableMetrics bool

	// RecoverFromPanic converts a handler panic into an error result.
	RecoverFromPanic bool

	// Timeout bounds every dispatch through its context. Zero leaves the
	// caller's context as is.
	Timeout time.Duration
}

// DefaultConfig recovers from panics and collects no metrics.
func DefaultConfig() Config {
	return Config{RecoverFromPanic: true}
}

// WithMetrics returns a copy with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy with panic recovery set to recover.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithTimeout returns a copy that bounds each dispatch by d.
func (c Config) WithTimeout(d time.Duration) Config {
	c.Timeout = d
	return c
}
