// Package retry runs an operation with bounded attempts and exponential backoff.
//
// The delay before retry i (counting from zero) is base * 2^i. There is no
// jitter and no delay after the final attempt. The delay only saturates at
// the largest time.Duration instead of overflowing.
//
//	recs, err := retry.Do(ctx, func(ctx context.Context) ([]apps.Record, error) {
//		return client.Spaces(ctx, id, release)
//	})
package retry

import (
	"context"
	"math"
	"time"

	"github.com/fioriscope/fioriscope/pkg/constants"
	"github.com/fioriscope/fioriscope/pkg/logging"
)

// WaitFunc blocks for d or until ctx is done, returning ctx.Err() in the latter case.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Policy controls how an operation is retried.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Wait        WaitFunc
	OnRetry     func(attempt int, err error, delay time.Duration)
}

// DefaultPolicy returns three attempts with a one second base delay.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: constants.MaxRetries,
		BaseDelay:   constants.RetryBackoff,
		Wait:        Sleep,
	}
}

// Option configures a Policy.
type Option func(*Policy)

// WithMaxAttempts sets the total number of attempts; values below one mean one.
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		p.MaxAttempts = n
	}
}

// WithBaseDelay sets the delay before the first retry.
func WithBaseDelay(d time.Duration) Option {
	return func(p *Policy) {
		p.BaseDelay = d
	}
}

// WithWait replaces the function used to sleep between attempts.
func WithWait(w WaitFunc) Option {
	return func(p *Policy) {
		if w != nil {
			p.Wait = w
		}
	}
}

// WithOnRetry registers a callback invoked before each backoff wait.
func WithOnRetry(fn func(attempt int, err error, delay time.Duration)) Option {
	return func(p *Policy) {
		p.OnRetry = fn
	}
}

// WithPolicy replaces the whole policy, keeping defaults for zero fields.
func WithPolicy(policy Policy) Option {
	return func(p *Policy) {
		if policy.MaxAttempts != 0 {
			p.MaxAttempts = policy.MaxAttempts
		}
		if policy.BaseDelay != 0 {
			p.BaseDelay = policy.BaseDelay
		}
		if policy.Wait != nil {
			p.Wait = policy.Wait
		}
		if policy.OnRetry != nil {
			p.OnRetry = policy.OnRetry
		}
	}
}

// maxDelay is where Delay saturates instead of overflowing.
const maxDelay = time.Duration(math.MaxInt64)

// Delay returns the backoff before retry attempt i (zero based).
func (p Policy) Delay(i int) time.Duration {
	if p.BaseDelay <= 0 || i < 0 {
		return 0
	}
	if i >= 63 || p.BaseDelay > maxDelay>>uint(i) {
		return maxDelay
	}
	return p.BaseDelay << uint(i)
}

// Do invokes op until it succeeds or the attempts are exhausted.
// The last error is returned unchanged. If ctx is cancelled, ctx.Err() is
// returned and no further attempt is made.
func Do[T any](ctx context.Context, op func(context.Context) (T, error), opts ...Option) (T, error) {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var zero T
	var lastErr error
	for i := 0; i < p.MaxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if i == p.MaxAttempts-1 {
			break
		}

		delay := p.Delay(i)
		logging.FromContext(ctx).Debug().
			Err(err).
			Int("attempt", i+1).
			Int("max_attempts", p.MaxAttempts).
			Dur("backoff", delay).
			Msg("Attempt failed, retrying")
		if p.OnRetry != nil {
			p.OnRetry(i+1, err, delay)
		}
		if err := p.Wait(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

// Sleep waits for d unless ctx is done first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
