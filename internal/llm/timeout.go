package llm

import (
	"context"
	"time"
)

// timeoutProvider caps every generation call at a fixed duration so one
// stalled upstream request cannot hold a batch open indefinitely.
type timeoutProvider struct {
	inner Provider
	d     time.Duration
}

// WithTimeout wraps a Provider with a per-call deadline. A non-positive
// duration returns the provider unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, d: d}
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string { return t.inner.ModelID() }
