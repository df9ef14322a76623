package restmon

import (
	"errors"
	"log/slog"
	"time"

	"github.com/kkirsche/restmon/internal/session"
)

// clientConfig holds mutable state during Client construction.
type clientConfig struct {
	endpoints   []string
	creds       session.Credentials
	environment string
	timeout     time.Duration
	logger      *slog.Logger
	policy      session.Policy
}

// Option is a function that configures a [Client] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithEndpoint], [WithEndpoints], [WithBasicAuth],
// [WithEnvironment], [WithRequestTimeout], [WithLogger].
type Option func(*clientConfig) error

// WithEndpoint adds a single endpoint path to the polling list.
//
// The path may be relative ("health") or carry a leading slash
// ("/health"); exactly one leading slash is stripped before the path is
// joined to the base URI. Order is preserved and duplicates are permitted:
// each configured entry is polled once per cycle.
//
// Example:
//
//	client, err := restmon.New("https://api.example.com",
//	    restmon.WithEndpoint("/health"),
//	    restmon.WithEndpoint("status"),
//	)
func WithEndpoint(path string) Option {
	return func(cfg *clientConfig) error {
		cfg.endpoints = append(cfg.endpoints, path)
		return nil
	}
}

// WithEndpoints adds multiple endpoint paths to the polling list.
//
// This is a convenience function for adding several endpoints at once.
// Equivalent to calling [WithEndpoint] multiple times.
func WithEndpoints(paths ...string) Option {
	return func(cfg *clientConfig) error {
		cfg.endpoints = append(cfg.endpoints, paths...)
		return nil
	}
}

// WithBasicAuth attaches a fixed basic-auth credential pair to every
// request issued by the client.
//
// Credentials are optional; without this option requests carry no
// Authorization header.
//
// Returns an error if the username is empty.
func WithBasicAuth(username, password string) Option {
	return func(cfg *clientConfig) error {
		if username == "" {
			return errors.New("basic auth username cannot be empty")
		}
		cfg.creds = session.Credentials{Username: username, Password: password}
		return nil
	}
}

// WithEnvironment sets the environment tag embedded verbatim in every log
// record. Defaults to "prod" if not specified.
//
// Returns an error if the tag is empty.
func WithEnvironment(env string) Option {
	return func(cfg *clientConfig) error {
		if env == "" {
			return errors.New("environment cannot be empty")
		}
		cfg.environment = env
		return nil
	}
}

// WithRequestTimeout sets the timeout applied to each individual request
// attempt, including its body read. Retries and the backoff between them
// are not bounded by it, so the full retry schedule stays reachable; only
// the caller's context can cut a retry sequence short. Defaults to 5
// seconds.
//
// Returns an error if the duration is zero or negative.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the client.
//
// This allows consumers to control where log records are written and in
// what format. The restmon CLI uses a text handler so records come out as
// space-joined key=value tokens. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
