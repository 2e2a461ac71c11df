package eval

import "fmt"

// FrozenError is the panic payload raised when code attempts to mutate a
// snapshot after it has been frozen.
//
// This is deliberately loud. Malformed authoring data and dangling parent
// references are absorbed (evaluation must stay total mid-scrub), but a
// write to a frozen snapshot is a caller-side bug that would silently
// break scrub-independence if allowed to succeed - cached snapshots are
// shared by identity across every consumer of the frame.
type FrozenError struct {
	// Snapshot names the snapshot kind ("EvaluatedLayer" or "FrameState").
	Snapshot string

	// Op names the attempted mutation.
	Op string
}

// Error implements the error interface.
func (e *FrozenError) Error() string {
	return fmt.Sprintf("%s: %s on frozen snapshot", e.Snapshot, e.Op)
}

// panicFrozen raises a FrozenError. Split out so the freeze checks in the
// builders stay one line.
func panicFrozen(snapshot, op string) {
	panic(&FrozenError{Snapshot: snapshot, Op: op})
}
