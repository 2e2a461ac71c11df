// Package testutil provides deterministic helpers shared by tests.
package testutil

import "strconv"

// IDSequence produces deterministic ids for tests, replacing the UUID
// generation authoring uses in production. Unlike production ids it can
// be reset, so the same scenario run twice yields identical ids.
type IDSequence struct {
	prefix string
	n      int
}

// NewIDSequence creates a sequence producing "<prefix>-1", "<prefix>-2", ...
func NewIDSequence(prefix string) *IDSequence {
	return &IDSequence{prefix: prefix}
}

// Next returns the next id in the sequence.
func (s *IDSequence) Next() string {
	s.n++
	return s.prefix + "-" + strconv.Itoa(s.n)
}

// Reset restarts the sequence so a scenario can be replayed with
// identical ids.
func (s *IDSequence) Reset() {
	s.n = 0
}
