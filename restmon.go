package restmon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kkirsche/restmon/internal/flatten"
	"github.com/kkirsche/restmon/internal/session"
	"github.com/kkirsche/restmon/internal/version"
)

const (
	// application is the fixed identifier embedded in every log record.
	application = "restmon"

	// modulePath is what the version resolver looks up to build the
	// User-Agent header.
	modulePath = "github.com/kkirsche/restmon"

	defaultEnvironment    = "prod"
	defaultRequestTimeout = 5 * time.Second

	// timeUnit labels the start_time/end_time/rtt fields, which are
	// logged as seconds.
	timeUnit = "sec"
)

// Client actively monitors a fixed set of HTTP endpoints sharing one base
// URI.
//
// A Client owns one long-lived [session] transport, created at
// construction and reused across every endpoint in every cycle. Each call
// to [Client.Run] sweeps all configured endpoints once, in order, and
// emits one structured log record per endpoint. The caller owns invocation
// cadence; a Client performs no scheduling of its own.
//
// The typical lifecycle is:
//
//	client, err := restmon.New("https://api.example.com",
//	    restmon.WithEndpoints("/health", "/status"),
//	    restmon.WithEnvironment("staging"),
//	)
//	if err != nil {
//	    slog.Error("failed to create client", "error", err)
//	    os.Exit(1)
//	}
//	defer client.Close()
//
//	results := client.Run(ctx) // one sweep
//
// A Client is not designed for concurrent Run invocations on the same
// instance; callers should avoid overlapping sweeps.
type Client struct {
	baseURI     string
	endpoints   []string
	environment string
	logger      *slog.Logger
	session     *session.Session
}

// New creates a [Client] monitoring endpoints under baseURI.
//
// The base URI must be absolute with an http or https scheme; one trailing
// slash is stripped so endpoint composition never doubles separators.
// Options have sensible defaults: environment "prod", a 5-second
// per-attempt request timeout, [slog.Default] logging, no credentials.
//
// The session transport is built once here: a connection pool capped at 20
// concurrent connections, a retry policy of at most 10 attempts with a
// 3-second exponential backoff factor on statuses
// 404/408/409/500/502/503/504, and a fixed "restmon/<version>" User-Agent.
//
// Example:
//
//	client, err := restmon.New("https://api.example.com",
//	    restmon.WithEndpoints("/health", "metrics/summary"),
//	    restmon.WithBasicAuth("monitor", os.Getenv("MONITOR_PASSWORD")),
//	)
func New(baseURI string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURI)
	if err != nil {
		return nil, fmt.Errorf("invalid base URI: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URI scheme must be http or https, got %q", parsed.Scheme)
	}
	baseURI = strings.TrimSuffix(baseURI, "/")

	cfg := &clientConfig{
		environment: defaultEnvironment,
		timeout:     defaultRequestTimeout,
		policy:      session.DefaultPolicy(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	userAgent := application + "/" + version.Resolve(modulePath)

	c := &Client{
		baseURI:     baseURI,
		endpoints:   cfg.endpoints,
		environment: cfg.environment,
		logger:      logger,
		session:     session.New(cfg.creds, userAgent, cfg.policy, cfg.timeout),
	}

	c.logger.Debug("endpoints configured",
		"application", application,
		"environment", c.environment,
		"endpoints", strings.Join(c.endpoints, ","),
	)

	return c, nil
}

// BaseURI returns the normalized base URI, never carrying a trailing
// slash.
func (c *Client) BaseURI() string {
	return c.baseURI
}

// Endpoints returns a copy of the configured endpoint paths in polling
// order.
func (c *Client) Endpoints() []string {
	cp := make([]string, len(c.endpoints))
	copy(cp, c.endpoints)
	return cp
}

// Close releases the session's idle connections. The client remains
// usable afterwards; new connections are established as needed.
func (c *Client) Close() {
	c.session.Close()
}

// Run sweeps every configured endpoint once, sequentially and in
// configured order, and returns one [PollResult] per endpoint.
//
// Each endpoint is polled through the shared session, its response handed
// to the decoder, and exactly one
// terminal log record emitted before the loop moves on. A failure on one
// endpoint never aborts the cycle: transport errors and decode-layer
// panics are contained at the poll boundary and surface as
// [OutcomeFailed] results. Run always returns after attempting every
// endpoint, regardless of how many individually failed.
//
// The context is passed through to each request; the session's
// per-attempt timeout still applies on top of any caller deadline.
func (c *Client) Run(ctx context.Context) []PollResult {
	c.logger.Debug("start monitor run",
		"application", application,
		"environment", c.environment,
	)

	results := make([]PollResult, 0, len(c.endpoints))
	for _, endpoint := range c.endpoints {
		c.logger.Debug("querying endpoint",
			"application", application,
			"environment", c.environment,
			"endpoint", endpoint,
		)

		result := c.poll(ctx, endpoint)
		c.emit(result)
		results = append(results, result)
	}

	c.logger.Debug("end monitor run",
		"application", application,
		"environment", c.environment,
	)

	return results
}

// poll performs one endpoint's full request/decode sequence and converts
// every failure mode into a terminal PollResult. Nothing escapes this
// boundary: transport errors come back from the session as values, and a
// panic in the decode layer is recovered here with its stack captured for
// the error record.
func (c *Client) poll(ctx context.Context, endpoint string) (result PollResult) {
	fullURL := c.baseURI + "/" + normalizeEndpoint(endpoint)

	start := time.Now()
	result = PollResult{
		Endpoint:  endpoint,
		URL:       fullURL,
		StartTime: start,
	}

	defer func() {
		if r := recover(); r != nil {
			end := time.Now()
			result.EndTime = end
			result.RTT = end.Sub(start)
			result.Outcome = OutcomeFailed
			result.Error = fmt.Errorf("panic while polling endpoint: %v", r)
			result.correlationID = uuid.NewString()
			result.stack = debug.Stack()
		}
	}()

	resp := c.session.Get(ctx, fullURL)
	end := time.Now()
	result.EndTime = end
	result.RTT = end.Sub(start)

	if resp.Error != nil {
		result.Outcome = OutcomeFailed
		result.Error = resp.Error
		result.correlationID = uuid.NewString()
		result.stack = debug.Stack()
		return result
	}

	result.Outcome, result.Fields, result.Response = decodeBody(resp.Body)
	return result
}

// decodeBody attempts structured decoding of a response body.
//
// A body that parses as a JSON object or array is flattened and
// canonically serialized; anything else falls back to raw text. The
// fallback is a degraded logging mode, never an error.
func decodeBody(body []byte) (OutcomeKind, []Field, string) {
	pairs, err := flatten.Flatten(body)
	if err != nil {
		return OutcomeRawText, nil, string(body)
	}

	fields := make([]Field, len(pairs))
	for i, kv := range pairs {
		fields[i] = Field{Key: kv.Key, Value: kv.Value}
	}

	return OutcomeDecoded, fields, canonicalJSON(body)
}

// canonicalJSON compacts a JSON document without reordering it, so the
// response field is deterministic for a given body.
func canonicalJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		// body already parsed once, so this only fires on truly odd
		// input; fall back to the original text
		return string(body)
	}
	return buf.String()
}

// normalizeEndpoint strips exactly one leading separator so URL
// composition never doubles slashes. Terminal log records carry this
// normalized form rather than the configured one.
func normalizeEndpoint(endpoint string) string {
	return strings.TrimPrefix(endpoint, "/")
}

// emit writes the single terminal log record for one endpoint's result.
// Successful and raw-text outcomes log at info level, failures at error
// level with the captured stack trace and a correlation ID.
func (c *Client) emit(r PollResult) {
	attrs := []any{
		"application", application,
		"environment", c.environment,
		"endpoint", normalizeEndpoint(r.Endpoint),
		"start_time", epochSeconds(r.StartTime),
		"end_time", epochSeconds(r.EndTime),
		"rtt", r.RTT.Seconds(),
		"time_unit", timeUnit,
	}

	switch r.Outcome {
	case OutcomeDecoded:
		attrs = append(attrs, "response", r.Response)
		for _, f := range r.Fields {
			attrs = append(attrs, f.Key, f.Value)
		}
		c.logger.Info("received response", attrs...)

	case OutcomeRawText:
		attrs = append(attrs, "response", r.Response)
		c.logger.Info("received response", attrs...)

	case OutcomeFailed:
		attrs = append(attrs,
			"error", r.Error.Error(),
			"correlation_id", r.correlationID,
			"stack", string(r.stack),
		)
		c.logger.Error("failed to query endpoint", attrs...)
	}
}

// epochSeconds renders a timestamp as fractional seconds since the Unix
// epoch, keeping rtt == end_time - start_time arithmetic valid on the
// logged values.
func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
