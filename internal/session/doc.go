// Package session builds the reusable HTTP transport restmon issues its
// poll requests through.
//
// A [Session] owns one connection-pooled http.Client for the lifetime of a
// restmon client. Every request passes through a fixed round-tripper chain:
// the retry [Policy] wraps a header round tripper (credentials and
// User-Agent) which wraps the pooled http.Transport.
//
// The main components are:
//
//   - [Session]: long-lived client wrapper with pooling and Close
//   - [Policy]: explicit, inspectable retry/backoff policy
//   - [Credentials]: optional fixed basic-auth pair
//
// Users of the restmon library should not need to interact with this
// package directly. Configuration is done through the main restmon package.
package session
