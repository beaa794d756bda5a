package blockgen

import (
	"errors"
	"fmt"
)

// Namespace prefixes every sentinel error message in this package.
const Namespace = "blockgen"

var (
	// ErrWrongState is returned when a public operation is attempted in a
	// state that does not permit it.
	ErrWrongState = errors.New(Namespace + ": operation not permitted in current state")

	// ErrInvalidConfig is returned from New when a configuration value
	// violates a constructor invariant (non-positive BlockIntervalMS or
	// BlockQueueCapacity, or negative MaxRatePerSecond).
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")
)

// wrongStateError carries the operation name and the state it was
// attempted in, for diagnostic logging, while still matching
// errors.Is(err, ErrWrongState).
type wrongStateError struct {
	op    string
	state State
}

func newWrongStateError(op string, s State) error {
	return &wrongStateError{op: op, state: s}
}

func (e *wrongStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s while in state %s", Namespace, e.op, e.state)
}

func (e *wrongStateError) Unwrap() error { return ErrWrongState }

// configurationError wraps ErrInvalidConfig with the offending field.
type configurationError struct {
	field  string
	reason string
}

func newConfigurationError(field, reason string) error {
	return &configurationError{field: field, reason: reason}
}

func (e *configurationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", Namespace, e.field, e.reason)
}

func (e *configurationError) Unwrap() error { return ErrInvalidConfig }
