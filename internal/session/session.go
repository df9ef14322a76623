package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

// connection pooling limits for the shared transport. The pool cap bounds
// concurrent connections to the monitored origin.
const (
	defaultMaxConnsPerHost     = 20
	defaultMaxIdleConnsPerHost = 20
	defaultIdleConnTimeout     = 60 * time.Second
)

// Credentials is an optional fixed basic-auth pair attached to every
// request issued through a [Session].
type Credentials struct {
	Username string
	Password string
}

// Empty reports whether no credentials were configured.
func (c Credentials) Empty() bool {
	return c.Username == "" && c.Password == ""
}

// Response holds the result of one GET issued through a [Session].
//
// A Response is always returned; transport failures are captured in the
// Error field rather than returned separately, which keeps the poll loop's
// handling uniform.
type Response struct {
	// Body contains the HTTP response body, limited to 1MB.
	Body []byte

	// StatusCode is the HTTP status code after any retries.
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Error contains any error that occurred during the request, after
	// the session's retries were exhausted.
	Error error
}

// Session is a long-lived HTTP client configured for endpoint monitoring.
//
// A Session is created once per restmon client and reused for every
// endpoint in every cycle. It is never recreated per request: connection
// pooling only pays off when the transport survives across requests.
// Credentials, the User-Agent header, the retry [Policy], and the
// per-attempt timeout are fixed at construction.
type Session struct {
	httpClient *http.Client
}

// New creates a [Session] with the given fixed credentials, identification
// header, retry policy, and per-attempt timeout.
//
// The timeout bounds each individual request attempt, including its body
// read. It does not bound the retry sequence: backoff sleeps between
// attempts answer only to the caller's context, so the policy's full
// schedule is always reachable. A non-positive timeout disables the
// per-attempt deadline.
//
// Construction never fails; transport-level problems surface on the first
// [Session.Get]. The underlying pool is capped at 20 concurrent
// connections per host, which for a single-base-URI monitor scopes the cap
// to the monitored origin.
func New(creds Credentials, userAgent string, policy Policy, timeout time.Duration) *Session {
	transport := &http.Transport{
		MaxConnsPerHost:     defaultMaxConnsPerHost,
		MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
		IdleConnTimeout:     defaultIdleConnTimeout,
		DisableKeepAlives:   false, // explicitly enable connection reuse
	}

	return &Session{
		httpClient: &http.Client{
			// no global timeout - the retry layer applies the per-attempt
			// deadline, and the caller's context bounds everything else
			Transport: &retryRoundTripper{
				policy:         policy,
				attemptTimeout: timeout,
				base: &headerRoundTripper{
					base:      transport,
					creds:     creds,
					userAgent: userAgent,
				},
			},
		},
	}
}

// Get issues a GET to url through the session's transport and returns a
// structured [Response].
//
// Each attempt runs under the session's per-attempt timeout; ctx bounds
// the request as a whole, including backoff between retries. Errors are
// captured in the Response's Error field, never returned separately.
func (s *Session) Get(ctx context.Context, url string) Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{Error: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Response{Error: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Error:      fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return Response{Body: body, StatusCode: resp.StatusCode}
}

// Close closes all idle connections in the session's pool.
//
// Safe to call multiple times and on a nil session. After Close the
// session remains usable; new connections are established as needed.
func (s *Session) Close() {
	if s == nil || s.httpClient == nil {
		return
	}
	type idleCloser interface{ CloseIdleConnections() }
	if transport, ok := s.httpClient.Transport.(*retryRoundTripper); ok {
		if header, ok := transport.base.(*headerRoundTripper); ok {
			if closer, ok := header.base.(idleCloser); ok {
				closer.CloseIdleConnections()
			}
		}
	}
}

// headerRoundTripper injects the fixed credentials and User-Agent header
// into every outgoing request.
type headerRoundTripper struct {
	base      http.RoundTripper
	creds     Credentials
	userAgent string
}

func (t *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	if !t.creds.Empty() {
		req.SetBasicAuth(t.creds.Username, t.creds.Password)
	}
	return t.base.RoundTrip(req)
}
