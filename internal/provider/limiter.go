package provider

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// limited bounds the number of in-flight completions to protect upstream
// rate limits. The wait for a slot and the call share one timeout.
type limited struct {
	next    Provider
	sem     *semaphore.Weighted
	timeout time.Duration
}

// WithConcurrencyLimit wraps p so at most n completions run at once and
// each attempt, queueing included, ends after timeout. A non-positive
// timeout leaves the attempt bounded by the caller's context only.
func WithConcurrencyLimit(p Provider, n int, timeout time.Duration) Provider {
	if n <= 0 {
		return p
	}
	return &limited{next: p, sem: semaphore.NewWeighted(int64(n)), timeout: timeout}
}

func (l *limited) Name() string { return l.next.Name() }

func (l *limited) Complete(ctx context.Context, prompt string) (string, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	if err := l.sem.Acquire(ctx, 1); err != nil {
		return "", &Error{Provider: l.next.Name(), Err: err}
	}
	defer l.sem.Release(1)

	return l.next.Complete(ctx, prompt)
}
