package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Generation failures fall into two groups. Transient ones (provider down,
// rate limited) are worth another attempt; structural ones (truncation,
// cancelled context) are not. A schema-invalid response sits in between
// and gets exactly one more try. The retry middleware consumes this
// classification through transient and retryAfterHint.

// ErrProviderUnavailable: the upstream is down, unreachable, or 5xx-ing.
type ErrProviderUnavailable struct{ Err error }

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "model provider unavailable"
	}
	return "model provider unavailable: " + e.Err.Error()
}
func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRateLimit: the upstream returned 429, optionally with a wait hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}
func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse: the model answered, but the content failed schema
// validation. The offending payload is kept for diagnostics.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model response: %v", e.Err)
}
func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded: the response was cut off at the MaxTokens limit.
// A retry would truncate again, so this is never retried.
type ErrMaxTokensExceeded struct{ Content json.RawMessage }

func (e *ErrMaxTokensExceeded) Error() string {
	return "model response truncated: max tokens exceeded"
}

// transient reports whether err is worth another generation attempt.
// invalidRetried tracks the one-shot allowance for schema failures.
func transient(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Truncation means MaxTokens is misconfigured, not a transient fault.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	// Rate limits, 5xx, and unknown network errors are all worth retrying.
	return true
}

// retryAfterHint returns the upstream's requested wait, or zero when the
// error carries none.
func retryAfterHint(err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	return 0
}
