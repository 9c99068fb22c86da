package requests

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy decides how transient API failures are retried.
// 429 and 5xx responses and network errors are retried, any other status is final.
type RetryPolicy struct {
	MaxAttempts         int
	BaseDelay           time.Duration
	MaxDelay            time.Duration
	RandomizationFactor float64
}

// DefaultRetryPolicy is used when the configuration leaves the values empty.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:         3,
	BaseDelay:           500 * time.Millisecond,
	MaxDelay:            8 * time.Second,
	RandomizationFactor: 0.2,
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultRetryPolicy.MaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultRetryPolicy.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultRetryPolicy.MaxDelay
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	if p.RandomizationFactor <= 0 {
		p.RandomizationFactor = DefaultRetryPolicy.RandomizationFactor
	}
	return p
}

// MaxTotalDelay is the longest time the policy can spend waiting between attempts.
func (p RetryPolicy) MaxTotalDelay() time.Duration {
	p = p.withDefaults()

	var (
		total time.Duration
		delay = p.BaseDelay
	)
	for i := 1; i < p.MaxAttempts; i++ {
		total += time.Duration(float64(min(delay, p.MaxDelay)) * (1 + p.RandomizationFactor))
		delay *= 2
	}
	return total
}

func (p RetryPolicy) newBackOff() *backoff.ExponentialBackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     p.BaseDelay,
		RandomizationFactor: p.RandomizationFactor,
		Multiplier:          2,
		MaxInterval:         p.MaxDelay,
	}
	b.Reset()
	return b
}

// Do runs the operation until it succeeds, fails permanently or the attempts are exhausted.
func (p RetryPolicy) Do(ctx context.Context, operation func() error) error {
	p = p.withDefaults()

	_, err := backoff.Retry(ctx,
		func() (struct{}, error) {
			err := operation()
			if err == nil {
				return struct{}{}, nil
			}
			return struct{}{}, p.classify(ctx, err)
		},
		backoff.WithBackOff(p.newBackOff()),
		backoff.WithMaxTries(uint(p.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
	)

	return unwrapPermanent(err)
}

// classify marks the errors that shouldn't be retried and the server supplied delays.
func (p RetryPolicy) classify(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return backoff.Permanent(err)
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return backoff.Permanent(err)
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		// Network errors are transient.
		return err
	}

	switch {
	case statusErr.StatusCode == http.StatusTooManyRequests:
		if statusErr.RetryAfter > 0 {
			wait := min(statusErr.RetryAfter, p.MaxDelay)
			return fmt.Errorf("%w: %w", err, &backoff.RetryAfterError{Duration: wait})
		}
		return err
	case statusErr.StatusCode >= http.StatusInternalServerError:
		return err
	default:
		return backoff.Permanent(err)
	}
}

// unwrapPermanent returns the original error when the last attempt was marked permanent.
func unwrapPermanent(err error) error {
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Unwrap()
	}
	return err
}
