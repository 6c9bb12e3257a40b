package retry_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fioriscope/fioriscope/pkg/retry"
)

// recorder captures requested backoff delays without sleeping.
type recorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recorder) wait(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return ctx.Err()
}

// script returns an op that fails with errs in order, then succeeds with v.
func script[T any](v T, errs ...error) (func(context.Context) (T, error), *int) {
	calls := 0
	return func(context.Context) (T, error) {
		calls++
		if calls <= len(errs) {
			var zero T
			return zero, errs[calls-1]
		}
		return v, nil
	}, &calls
}

func TestDoFirstAttemptSucceeds(t *testing.T) {
	rec := &recorder{}
	op, calls := script("ok")

	v, err := retry.Do(context.Background(), op, retry.WithWait(rec.wait))

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 1, *calls)
	assert.Empty(t, rec.delays)
}

func TestDoFailFailSucceed(t *testing.T) {
	rec := &recorder{}
	op, calls := script(42, errors.New("one"), errors.New("two"))

	v, err := retry.Do(context.Background(), op, retry.WithWait(rec.wait))

	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, rec.delays)
}

func TestDoAlwaysFails(t *testing.T) {
	rec := &recorder{}
	last := errors.New("third")
	op, calls := script(0, errors.New("first"), errors.New("second"), last)

	_, err := retry.Do(context.Background(), op, retry.WithWait(rec.wait))

	require.Error(t, err)
	assert.Same(t, last, err)
	assert.Equal(t, 3, *calls)
	assert.Len(t, rec.delays, 2, "no wait after the final attempt")
}

func TestDoCustomAttempts(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")
	var attempts []int
	op := func(context.Context) (string, error) { return "", boom }

	_, err := retry.Do(context.Background(), op,
		retry.WithMaxAttempts(5),
		retry.WithBaseDelay(10*time.Millisecond),
		retry.WithWait(rec.wait),
		retry.WithOnRetry(func(attempt int, err error, _ time.Duration) {
			assert.ErrorIs(t, err, boom)
			attempts = append(attempts, attempt)
		}),
	)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []time.Duration{
		10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond, 80 * time.Millisecond,
	}, rec.delays)
	assert.Equal(t, []int{1, 2, 3, 4}, attempts)
}

func TestDoZeroAttemptsRunsOnce(t *testing.T) {
	op, calls := script(0, errors.New("x"))
	_, err := retry.Do(context.Background(), op, retry.WithMaxAttempts(0))
	assert.Error(t, err)
	assert.Equal(t, 1, *calls)
}

func TestDoCancelledContext(t *testing.T) {
	t.Run("before first attempt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		op, calls := script("ok")

		_, err := retry.Do(ctx, op)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, *calls)
	})

	t.Run("during backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		calls := 0
		op := func(context.Context) (string, error) {
			calls++
			return "", errors.New("fail")
		}

		_, err := retry.Do(ctx, op, retry.WithOnRetry(func(int, error, time.Duration) { cancel() }))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestWithPolicyKeepsDefaults(t *testing.T) {
	rec := &recorder{}
	op, _ := script(0, errors.New("a"), errors.New("b"), errors.New("c"))

	_, err := retry.Do(context.Background(), op, retry.WithPolicy(retry.Policy{Wait: rec.wait}))

	assert.Error(t, err)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, rec.delays)
}

func TestPolicyDelay(t *testing.T) {
	p := retry.DefaultPolicy()
	assert.Equal(t, time.Second, p.Delay(0))
	assert.Equal(t, 2*time.Second, p.Delay(1))
	assert.Equal(t, 4*time.Second, p.Delay(2))
}

func TestPolicyDelaySaturates(t *testing.T) {
	p := retry.DefaultPolicy()
	longest := time.Duration(math.MaxInt64)

	prev := time.Duration(0)
	for i := range 70 {
		d := p.Delay(i)
		assert.Positive(t, d, "delay(%d)", i)
		assert.GreaterOrEqual(t, d, prev, "delay(%d) shrank", i)
		prev = d
	}
	assert.Equal(t, longest, p.Delay(40))
	assert.Equal(t, longest, p.Delay(63))
	assert.Equal(t, time.Duration(1<<32)*time.Second, p.Delay(32))
	assert.Zero(t, retry.Policy{}.Delay(3))
}

func TestSleep(t *testing.T) {
	require.NoError(t, retry.Sleep(context.Background(), time.Millisecond))
	require.NoError(t, retry.Sleep(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, retry.Sleep(ctx, time.Hour), context.Canceled)
}
