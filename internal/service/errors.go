package service

import (
	"errors"
	"fmt"
)

// ErrNoDocument is returned when an extraction is requested without any
// uploaded bytes; downstream steps are skipped.
var ErrNoDocument = errors.New("no document supplied")

// ErrHistoryDisabled is returned by history lookups when the service runs
// without a database.
var ErrHistoryDisabled = errors.New("run history is disabled")

// ConfigError means a required credential or setting is missing. It is
// reported before any network call is made.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// TransportError means the completion request failed on the wire or the
// endpoint returned a non-success status.
type TransportError struct {
	Status int
	Body   string
	Cause  error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("completion request failed: %v", e.Cause)
	}
	return fmt.Sprintf("completion endpoint returned status %d: %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ResponseShapeError means the endpoint answered with a success status but
// the body did not contain choices[0].message.content. The raw body is kept
// for manual inspection.
type ResponseShapeError struct {
	Body string
}

func (e *ResponseShapeError) Error() string {
	return "unexpected completion response shape"
}

// ParseError means the returned text did not parse into the three-column
// table. It is a warning, not a fatal failure: the raw text stays available.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("output did not parse as a transaction table: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
