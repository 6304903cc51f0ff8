// Package webhook implements the outbound HTTP client for the workflow
// automation (n8n) endpoints: lead capture and conversational chat turns.
//
// This file defines the client's error taxonomy. All errors are concrete
// types so callers can branch with errors.As:
//
//   - *ValidationError: bad or missing input; no network call was made
//   - *ConfigError: required endpoint URL not configured; no network call
//   - *NetworkError: transport failure or timeout (Timeout distinguishes)
//   - *WebhookError: the endpoint answered with a non-2xx status
//
// The HTTP layer translates these into stable machine-readable error codes;
// the widget controller absorbs them into chat bubbles. Nothing below this
// package should need to inspect raw transport errors.
package webhook

import "fmt"

// ValidationError reports a payload that failed local validation before any
// network I/O. Field names the offending field ("email", "session_id", ...).
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigError reports that no usable endpoint URL resolved for an operation.
// Endpoint is the logical endpoint name ("lead_capture", "chatbot").
type ConfigError struct {
	Endpoint string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("webhook endpoint %q not configured", e.Endpoint)
}

// NetworkError reports a transport-level failure: connection refused, DNS,
// or the fixed request timeout. Timeout is true when the request was cut
// off by the deadline, which callers surface differently from a hard
// transport failure.
type NetworkError struct {
	Timeout bool
	Err     error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Timeout {
		return "webhook request timed out"
	}
	return fmt.Sprintf("webhook request failed: %v", e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *NetworkError) Unwrap() error { return e.Err }

// WebhookError reports a non-2xx response from the endpoint. Detail carries
// the parsed JSON error message when the body was JSON, or the raw body
// text otherwise.
type WebhookError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *WebhookError) Error() string {
	return fmt.Sprintf("webhook returned %d: %s", e.StatusCode, e.Detail)
}
