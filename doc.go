// Package restmon provides a lightweight synthetic-monitoring client that
// actively polls REST API endpoints and logs their response content and
// round-trip time as structured records.
//
// A restmon [Client] is configured with a base URI, a list of endpoint
// paths, optional basic-auth credentials, and an environment tag. Each
// call to [Client.Run] sweeps every endpoint once, sequentially, and emits
// one log record per endpoint. Callers own invocation cadence: run it from
// cron, a ticker loop, or the bundled CLI.
//
// # Quick Start
//
//	client, err := restmon.New("https://api.example.com",
//	    restmon.WithEndpoints("/health", "/status"),
//	)
//	if err != nil {
//	    slog.Error("failed to create client", "error", err)
//	    os.Exit(1)
//	}
//	defer client.Close()
//
//	results := client.Run(context.Background())
//
// # Configuration
//
// restmon uses the functional options pattern for configuration:
//
//	client, err := restmon.New("https://api.example.com",
//	    restmon.WithEndpoints("/health", "metrics/summary"),
//	    restmon.WithBasicAuth("monitor", password),
//	    restmon.WithEnvironment("staging"),
//	    restmon.WithRequestTimeout(5 * time.Second),
//	    restmon.WithLogger(logger),
//	)
//
// # Outcomes
//
// Every poll terminates in exactly one tagged outcome, inspected rather
// than thrown:
//
//   - [OutcomeDecoded]: the body parsed as JSON; the record carries the
//     canonical serialized body plus every flattened key ("a.b", "c.0").
//   - [OutcomeRawText]: the body was not structured JSON; the record
//     carries it verbatim. Degraded logging, not an error.
//   - [OutcomeFailed]: the request failed after the session's retries;
//     logged at error level with the cause and a stack trace.
//
// A failing endpoint never aborts the sweep: Run always attempts every
// configured endpoint.
//
// # Architecture
//
// restmon consists of several internal packages (under internal/):
//
//   - internal/session: pooled HTTP transport with an explicit
//     retry/backoff policy, fixed credentials, and User-Agent header
//   - internal/flatten: pure JSON flattening for structured log fields
//   - internal/version: package-version resolution for the User-Agent
//
// The internal packages are not part of the public API and may change
// without notice. The config package loads YAML configuration for the
// cmd/restmon CLI.
package restmon
