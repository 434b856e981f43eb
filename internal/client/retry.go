package client

import (
	"context"
	"time"
)

const (
	// DefaultRetryDelay is the first backoff wait when no base delay is configured.
	DefaultRetryDelay = time.Second
	// MaxRetryDelay caps the exponential backoff.
	MaxRetryDelay = 10 * time.Second
)

// RetryPolicy decides how many attempts a request gets and how long to wait between them.
type RetryPolicy struct {
	// Attempts is the total number of attempts, including the first one. Values below 1 mean 1.
	Attempts int
	// BaseDelay is the wait before the first retry; it doubles on every retry.
	// Zero or negative means DefaultRetryDelay.
	BaseDelay time.Duration
	// MaxDelay caps the wait. Zero means MaxRetryDelay.
	MaxDelay time.Duration
}

// MaxAttempts returns the effective number of attempts.
func (p RetryPolicy) MaxAttempts() int {
	if p.Attempts < 1 {
		return 1
	}
	return p.Attempts
}

// Delay returns the wait before retry n, counted from 1.
func (p RetryPolicy) Delay(retry int) time.Duration {
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = MaxRetryDelay
	}
	if retry < 1 {
		retry = 1
	}

	delay := p.BaseDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	for i := 1; i < retry; i++ {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}

// Wait blocks for Delay(retry) or until ctx is done.
func (p RetryPolicy) Wait(ctx context.Context, retry int) error {
	timer := time.NewTimer(p.Delay(retry))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
