// Package retry provides a configurable retry mechanism for operations that
// may fail temporarily, such as confirmation polling against the provider.
// It wraps Avast's retry-go with exponential backoff and functional options.
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry executes operations with automatic retry logic.
type Retry interface {
	// Execute runs the given operation, retrying on error according to the
	// configured parameters. The operation should be idempotent. When the
	// context is canceled the retry loop stops and the context error is
	// returned.
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint          // maximum number of attempts, including the first
	delay       time.Duration // base delay between attempts
	maxDelay    time.Duration // cap for the exponential backoff delay
	lastErrOnly bool          // whether to return only the last error
}

// Option configures the retry mechanism.
type Option func(*config)

// retrier implements Retry on top of retry-go.
type retrier struct {
	cfg config
}

var _ Retry = (*retrier)(nil)

// New returns a Retry configured with the provided options. Defaults:
// 3 attempts, 1s base delay, 5s max delay, exponential backoff, only the
// last error reported.
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// Execute implements the Retry interface.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	return retry.Do(operation,
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	)
}

// WithAttempts sets the maximum number of attempts, including the initial
// one. Default: 3.
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the base delay used for the first retry; subsequent delays
// grow exponentially. Default: 1 second.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the exponential backoff delay. Default: 5 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly controls whether only the final attempt's error is
// returned (true) or all attempts' errors are combined (false).
// Default: true.
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}
