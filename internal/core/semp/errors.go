package semp

import (
	"errors"
	"fmt"
)

var (
	// ErrAliasNotFound is returned when topic detail is requested for a logical
	// name that no prior discovery call has recorded.
	ErrAliasNotFound = errors.New("topic alias not found")
	// ErrMissingData is returned when a response envelope has no data payload.
	ErrMissingData = errors.New("response envelope has no data")
	// ErrResponseTooLarge is returned when a reply body exceeds MaxResponseSize.
	ErrResponseTooLarge = errors.New("response body too large")
)

// ConfigurationError reports a connection parameter that cannot be used to
// reach the management endpoint. It is raised at open time.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
	Hint   string
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid connection property %s=%q: %s", e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " (hint: " + e.Hint + ")"
	}
	return msg
}

// NetworkFailure wraps a transport error (timeout, refused connection, ...) for
// an in-flight SEMP call.
type NetworkFailure struct {
	Operation Operation
	Err       error
}

func (e *NetworkFailure) Error() string {
	return fmt.Sprintf("SEMP %s request failed: %v", e.Operation, e.Err)
}

func (e *NetworkFailure) Unwrap() error {
	return e.Err
}

// DiscoveryFailure reports a non-200 status on a list call. It aborts the
// whole discovery.
type DiscoveryFailure struct {
	Operation  Operation
	StatusCode int
	Detail     string
}

func (e *DiscoveryFailure) Error() string {
	msg := fmt.Sprintf("bad return code received from SEMP when running %s: %d", e.Operation, e.StatusCode)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// IsDiscoveryFailure reports whether err carries a DiscoveryFailure and returns it.
func IsDiscoveryFailure(err error) (*DiscoveryFailure, bool) {
	var df *DiscoveryFailure
	if errors.As(err, &df) {
		return df, true
	}
	return nil, false
}
