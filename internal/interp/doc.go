// Package interp is the interpolation kernel: pure functions turning a
// property's keyframe data into a concrete value at a frame.
//
// Everything here is a pure function of its arguments. No wall-clock time,
// no randomness, no package-level state, no map iteration. This is what
// makes scrub-independence hold: evaluating frame N yields bit-identical
// output whether reached directly, via forward playback, backward
// scrubbing, or random access.
//
// The kernel is total over malformed authoring state. Empty keyframe lists
// flagged animated, non-monotonic frames, and kind mismatches between
// adjacent keyframes all fall back to the property's static value instead
// of failing - an interactive editor must never crash mid-scrub.
package interp
