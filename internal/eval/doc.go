// Package eval is the frame-evaluation engine: it composes the
// interpolation kernel over a project's layers to produce immutable
// per-frame snapshots, memoized through a version-tracked cache.
//
// ARCHITECTURE:
//
// Injected context, not singletons:
// An Engine owns exactly one version.Tracker and one evalcache.Cache.
// Hosts that need independent evaluation contexts (preview vs. export)
// create independent Engines; there is no package-level shared state.
//
// Evaluation flow:
//  1. Authoring mutates the project graph, then calls MarkLayerDirty.
//  2. The layer's version advances; its cached frames become unreachable.
//  3. The next Evaluate(frame) call misses the cache for that layer,
//     routes through the interpolation kernel, freezes the result, and
//     caches it under the layer's current version.
//  4. The compositor assembles layer snapshots (cache hits are returned
//     by identity, so unchanged layers are reference-equal across calls),
//     composes parent transforms, injects audio state, and returns a
//     frozen FrameState.
//
// DETERMINISM:
// The evaluation path uses no wall-clock time, no randomness, and no
// map-iteration ordering. Output is a pure function of
// (frame, project state at current versions) - evaluate(N) is
// bit-identical whether reached directly, by forward playback, backward
// scrubbing, or random access.
//
// CONCURRENCY:
// Single-threaded by contract. The engine adds no locking; the host
// serializes authoring mutations and evaluation calls. Mutations must
// land (and mark dirty) strictly before the next Evaluate that should
// observe them.
package eval
