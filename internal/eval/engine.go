package eval

import (
	"log/slog"

	"github.com/weyl-labs/lattice/internal/evalcache"
	"github.com/weyl-labs/lattice/internal/timeline"
	"github.com/weyl-labs/lattice/internal/version"
)

// ExpressionSource supplies externally evaluated expression results.
// The core never executes expression code: when a property carries an
// enabled expression, the engine asks its source for the value at
// (layer, property, frame) and substitutes it wholesale. Returning
// ok=false falls back to keyframe evaluation.
//
// Implementations must be pure functions of their arguments or
// scrub-independence is lost on the caller's side.
type ExpressionSource interface {
	ResolveExpression(layerID, property string, frame int) (timeline.Value, bool)
}

// Engine is the evaluation context: one version tracker plus one bounded
// evaluation cache, with the evaluator and compositor hanging off it.
//
// Engines are independent - state in one is invisible to another. Hosts
// create one per evaluation context (preview, export) and serialize all
// calls on it; the engine carries no locking.
type Engine struct {
	tracker *version.Tracker
	cache   *evalcache.Cache[*EvaluatedLayer]
	exprs   ExpressionSource
	log     *slog.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithCacheSize bounds the evaluation cache to n entries.
// Default: evalcache.DefaultMaxSize.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		e.cache = evalcache.New[*EvaluatedLayer](n)
	}
}

// WithExpressionSource installs the external expression evaluator.
func WithExpressionSource(src ExpressionSource) Option {
	return func(e *Engine) {
		e.exprs = src
	}
}

// WithLogger sets the logger for authoring-mutation diagnostics.
// The evaluation path itself never logs.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an Engine with a fresh tracker and cache.
func New(opts ...Option) *Engine {
	e := &Engine{
		tracker: version.NewTracker(),
		cache:   evalcache.New[*EvaluatedLayer](evalcache.DefaultMaxSize),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MarkLayerDirty records an authoring mutation to the layer. Cached
// frames for the layer become unreachable (version mismatch) without
// being eagerly deleted.
func (e *Engine) MarkLayerDirty(id string) {
	e.tracker.MarkDirty(id)
	e.log.Debug("layer marked dirty", "layer", id, "version", e.tracker.LayerVersion(id))
}

// MarkAllLayersDirty resets every layer version to 0 and drops the whole
// cache. Used on project load/replace: versions restart at 0, so stale
// entries from the previous project must not survive to alias them.
func (e *Engine) MarkAllLayersDirty() {
	e.tracker.MarkAllDirty()
	e.cache.Clear()
	e.log.Debug("all layers marked dirty", "global_version", e.tracker.GlobalVersion())
}

// ClearLayerCache removes every cached frame for the layer without
// touching its version.
func (e *Engine) ClearLayerCache(id string) {
	e.cache.ClearLayer(id)
}

// ClearEvaluationCache removes all cached entries without touching
// versions.
func (e *Engine) ClearEvaluationCache() {
	e.cache.Clear()
}

// LayerVersion returns the layer's current version (0 for unseen layers).
func (e *Engine) LayerVersion(id string) int64 {
	return e.tracker.LayerVersion(id)
}

// GlobalVersion returns the coarse "something changed" counter.
func (e *Engine) GlobalVersion() int64 {
	return e.tracker.GlobalVersion()
}

// CacheStats returns evaluation-cache occupancy for telemetry.
func (e *Engine) CacheStats() evalcache.Stats {
	return e.cache.Stats()
}

// CachedEvaluation returns the cached snapshot for (layerID, frame) if it
// is valid at the layer's current version. Diagnostic/test surface; the
// evaluator uses the same lookup internally.
func (e *Engine) CachedEvaluation(layerID string, frame int) (*EvaluatedLayer, bool) {
	return e.cache.Get(layerID, e.tracker.LayerVersion(layerID), frame)
}
