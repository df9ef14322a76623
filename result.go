package restmon

import "time"

// OutcomeKind tags the terminal state of one endpoint poll.
//
// OutcomeKind is a string type holding one of three predefined values:
// [OutcomeDecoded], [OutcomeRawText], or [OutcomeFailed]. A tagged outcome
// replaces exception-style control flow: the poll loop inspects the kind to
// choose a log level, and nothing propagates past the poll boundary.
type OutcomeKind string

const (
	// OutcomeDecoded indicates the response body parsed as structured
	// JSON and was flattened for logging.
	OutcomeDecoded OutcomeKind = "decoded"

	// OutcomeRawText indicates the response body was not structured
	// JSON and is carried verbatim. This is a degraded logging mode,
	// not an error.
	OutcomeRawText OutcomeKind = "raw_text"

	// OutcomeFailed indicates the request did not produce a usable
	// response: network failure, timeout, or retries exhausted.
	OutcomeFailed OutcomeKind = "failed"
)

// String returns the string representation of the outcome kind.
// This implements the fmt.Stringer interface.
func (k OutcomeKind) String() string {
	return string(k)
}

// Field is one flattened key/value pair extracted from a decoded response.
//
// Fields are held in a slice rather than a map so that document order is
// preserved through to the log record.
type Field struct {
	// Key is the dot/index-joined path from the JSON document root,
	// e.g. "a.b" or "c.0".
	Key string

	// Value is the scalar at that path rendered as a string.
	Value string
}

// PollResult holds the outcome of polling a single endpoint.
//
// PollResult is immutable after creation and contains everything logged
// for the endpoint: identity, timing, and the tagged outcome. Exactly one
// PollResult is produced per configured endpoint per cycle, in configured
// order.
type PollResult struct {
	// Endpoint is the path as configured, before normalization. The
	// terminal log record carries the normalized form, with any leading
	// slash stripped.
	Endpoint string

	// URL is the full URL that was requested.
	URL string

	// StartTime is when the request was dispatched.
	StartTime time.Time

	// EndTime is when the response was received, or when the failure
	// was observed.
	EndTime time.Time

	// RTT is the round-trip duration, always EndTime minus StartTime
	// and never negative.
	RTT time.Duration

	// Outcome tags which of the remaining fields are meaningful.
	Outcome OutcomeKind

	// Fields contains the flattened key/value pairs of a decoded
	// response, in document order. Nil unless Outcome is
	// [OutcomeDecoded].
	Fields []Field

	// Response is the response body: the canonical serialized JSON for
	// [OutcomeDecoded], or the raw text verbatim for [OutcomeRawText].
	// Empty for [OutcomeFailed].
	Response string

	// Error describes the failure. Nil unless Outcome is
	// [OutcomeFailed].
	Error error

	// correlationID links the error-level log record for a failed poll
	// back to this result.
	correlationID string

	// stack is the goroutine stack captured at the failure point.
	stack []byte
}
