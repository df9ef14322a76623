package session

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Policy describes when and how the session retries a request.
//
// Policy is a plain value rather than transport-internal state so that the
// retry schedule can be inspected and tested without real network calls.
// The zero value never retries; use [DefaultPolicy] for the standard
// monitoring policy.
type Policy struct {
	// MaxAttempts is the total number of times a request may be issued,
	// including the first attempt.
	MaxAttempts int

	// BackoffFactor is the base delay multiplied into the exponential
	// backoff schedule between attempts.
	BackoffFactor time.Duration

	// RetryStatuses is the set of HTTP status codes that trigger a retry.
	// Responses with any other status are returned to the caller as-is.
	RetryStatuses map[int]struct{}
}

// DefaultPolicy returns the retry policy used for endpoint monitoring:
// at most 10 attempts with a 3-second backoff factor, retrying on
// 404, 408, 409, 500, 502, 503, and 504.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:   10,
		BackoffFactor: 3 * time.Second,
		RetryStatuses: map[int]struct{}{
			http.StatusNotFound:            {},
			http.StatusRequestTimeout:      {},
			http.StatusConflict:            {},
			http.StatusInternalServerError: {},
			http.StatusBadGateway:          {},
			http.StatusServiceUnavailable:  {},
			http.StatusGatewayTimeout:      {},
		},
	}
}

// Retryable reports whether a response with the given status code should
// be retried.
func (p Policy) Retryable(statusCode int) bool {
	_, ok := p.RetryStatuses[statusCode]
	return ok
}

// Backoff returns the delay before the next attempt after the given number
// of completed attempts. The schedule is exponential with base 2:
//
//	factor * 2^(attempts-1)
//
// so with a 3s factor the delays run 3s, 6s, 12s, and so on. Attempts
// below 1 return zero.
func (p Policy) Backoff(attempts int) time.Duration {
	if attempts < 1 {
		return 0
	}
	return p.BackoffFactor * time.Duration(1<<(attempts-1))
}

// retryRoundTripper re-issues requests whose response status is in the
// policy's retryable set, sleeping the policy's backoff between attempts.
//
// The session's timeout bounds each individual attempt, never the retry
// sequence: a slow attempt is cut off at the deadline, but the backoff
// sleeps between attempts answer only to the caller's context. This keeps
// the full schedule reachable — retries are exhausted first, and only
// then does a failure surface.
//
// Only status-triggered retries happen here. Network errors are returned
// immediately: retrying a request that never reached the server is the
// caller's call.
type retryRoundTripper struct {
	base           http.RoundTripper
	policy         Policy
	attemptTimeout time.Duration
}

func (t *retryRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	attempts := t.policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		attemptCtx := req.Context()
		cancel := context.CancelFunc(func() {})
		if t.attemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(req.Context(), t.attemptTimeout)
		}

		resp, err := t.base.RoundTrip(req.Clone(attemptCtx))
		if err != nil {
			cancel()
			return nil, err
		}

		if attempt >= attempts || !t.policy.Retryable(resp.StatusCode) {
			// the attempt deadline also covers the body read, so the
			// context must stay alive until the caller closes the body
			resp.Body = &cancelOnCloseBody{ReadCloser: resp.Body, cancel: cancel}
			return resp, nil
		}

		// drain before closing so the pooled connection is reusable
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		cancel()

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(t.policy.Backoff(attempt)):
		}
	}
}

// cancelOnCloseBody releases the attempt's context when the response body
// is closed.
type cancelOnCloseBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnCloseBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
