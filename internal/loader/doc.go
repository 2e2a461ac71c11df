// Package loader decodes project documents into the timeline graph.
//
// Documents are JSON (the storage format of the project store) or YAML,
// validated against an embedded CUE schema before decoding. Validation
// catches structural violations - negative frames, unknown interpolation
// modes, wrong component counts - at the boundary; keyframe ORDERING is
// deliberately not validated here because the evaluator tolerates and
// defends against non-monotonic frames (mid-edit documents must load).
package loader
