package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// The error taxonomy is small and unforgiving: every error here is a
// programmer-contract violation, surfaced immediately and never retried.

// IllegalActionError reports a move that violates turn order, bounds or
// occupancy.
type IllegalActionError struct {
	Move   PlayerMove
	Reason string
}

func (err IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %s: %s", err.Move, err.Reason)
}

// TerminalStateError reports a search or action attempted past game end.
type TerminalStateError struct {
	Op string
}

func (err TerminalStateError) Error() string {
	return fmt.Sprintf("%s on a terminal state", err.Op)
}

// ConfigurationError reports an unsatisfiable game or engine configuration.
type ConfigurationError struct {
	Reason string
}

func (err ConfigurationError) Error() string { return err.Reason }

// IsIllegalAction reports whether err (or its cause) is an IllegalActionError.
func IsIllegalAction(err error) bool {
	_, ok := errors.Cause(err).(IllegalActionError)
	return ok
}

// IsTerminalState reports whether err (or its cause) is a TerminalStateError.
func IsTerminalState(err error) bool {
	_, ok := errors.Cause(err).(TerminalStateError)
	return ok
}

// IsConfiguration reports whether err (or its cause) is a ConfigurationError.
func IsConfiguration(err error) bool {
	_, ok := errors.Cause(err).(ConfigurationError)
	return ok
}
