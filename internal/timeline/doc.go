// Package timeline defines the parsed project graph consumed by the
// evaluation engine: projects, layers, animatable properties, and keyframes.
//
// Everything in this package is authoring-side data. Evaluation never
// mutates it - the evaluator in internal/eval reads these structures and
// produces frozen snapshots. Authoring code that changes anything here is
// responsible for calling the engine's MarkLayerDirty afterwards; the core
// performs no implicit change detection.
//
// INVARIANTS:
//   - Keyframes within a property are sorted ascending by Frame with unique
//     frame values. Authoring owns this invariant; the interpolation kernel
//     still defends against violations by falling back to the static value.
//   - Layer IDs are unique and stable for the lifetime of a project.
//   - ParentID is a back-reference only. Layers form a forest; cycles are an
//     authoring error that evaluation rejects defensively.
package timeline
