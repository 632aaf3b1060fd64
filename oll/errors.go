package oll

import "fmt"

// MisconfigError reports a fatal setup mistake: an encoding other than the
// totalizer, or a problem type that doesn't match the search path invoked.
type MisconfigError struct {
	Reason string
}

func (e *MisconfigError) Error() string {
	return fmt.Sprintf("oll: misconfiguration: %s", e.Reason)
}

// InvariantError reports a violated internal invariant, not something a
// caller can provoke through legitimate use: UNSAT before any SAT, a
// BoundMapping lookup miss, weight underflow on a split.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("oll: invariant violation: %s", e.Reason)
}
