// Package version tracks per-layer change counters used as cache-validity
// tokens, plus one global counter for coarse "something changed" signals.
//
// Versions are mutated by authoring operations only - evaluation reads
// them but never writes. A Tracker is owned by exactly one eval.Engine;
// per the engine's single-writer discipline it carries no locking.
package version

// Tracker maps layer identity to a monotonically increasing version
// counter. The zero value is not usable; construct with NewTracker.
//
// INVARIANTS:
//   - A layer's version only moves forward between resets.
//   - The global counter is monotonic for the Tracker's lifetime, even
//     across MarkAllDirty (it records the reset as a change).
//   - Global version is a diagnostic signal only; cache keys use per-layer
//     versions so an edit to one layer never invalidates another.
type Tracker struct {
	layers map[string]int64
	global int64
}

// NewTracker creates a tracker with all layers at version 0.
func NewTracker() *Tracker {
	return &Tracker{layers: make(map[string]int64)}
}

// LayerVersion returns the layer's current version. Never-seen layers
// report 0 without being created.
func (t *Tracker) LayerVersion(id string) int64 {
	return t.layers[id]
}

// MarkDirty records an authoring mutation that could change the layer's
// evaluated output: the layer's version and the global version each
// advance by one. Repeated calls keep incrementing; this is not a no-op
// flag.
func (t *Tracker) MarkDirty(id string) {
	t.layers[id]++
	t.global++
}

// MarkAllDirty resets every known layer back to version 0. Used when a
// project is loaded or replaced, so version numbers from the old project
// cannot alias cached entries of the new one. The global counter still
// advances: observers watching only GlobalVersion see the swap.
func (t *Tracker) MarkAllDirty() {
	t.layers = make(map[string]int64)
	t.global++
}

// GlobalVersion returns the process-lifetime change counter. Exposed for
// bulk-invalidation heuristics; never part of a cache key.
func (t *Tracker) GlobalVersion() int64 {
	return t.global
}
