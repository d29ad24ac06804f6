package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"tagforge-hq/tagforge/pkg/engine"
	"tagforge-hq/tagforge/pkg/pagectx"
	"tagforge-hq/tagforge/pkg/snippet"
	"tagforge-hq/tagforge/pkg/telemetry/metrics"
)

// Output markers wrapped around every non-empty block so the managed
// region is identifiable in page source.
const (
	markerStart = "<!-- TagForge Start -->"
	markerEnd   = "<!-- TagForge End -->"
)

// Options adjusts one render call.
type Options struct {
	// Preview skips the cache read so editors always see current state.
	// The result is still written back.
	Preview bool
}

// Pipeline renders positions: select, concatenate, wrap in markers, cache.
// It is safe for concurrent use.
type Pipeline struct {
	selector *Selector
	registry *engine.Registry
	cache    OutputCache
	logger   *slog.Logger
	metrics  *metrics.Collector

	// generation is folded into every cache key. InvalidateAll bumps it,
	// orphaning all cached entries in one store-free step.
	generation atomic.Uint64
}

// NewPipeline creates a render pipeline. A nil cache disables output
// caching, a nil registry gets the built-in rule types, and a nil metrics
// collector disables instrumentation.
func NewPipeline(selector *Selector, registry *engine.Registry, cache OutputCache, logger *slog.Logger, collector *metrics.Collector) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		selector: selector,
		registry: registry,
		cache:    cache,
		logger:   logger.With("component", "render"),
		metrics:  collector,
	}
}

// Render produces the output block for one position. Failures degrade to an
// empty block: a page must never break because a snippet or the store did.
// An empty result is cached like any other so positions with nothing to
// emit stay cheap.
func (p *Pipeline) Render(ctx context.Context, position snippet.Position, page pagectx.Context, opts Options) string {
	start := time.Now()

	key := p.cacheKey(position, page)
	if p.cache != nil && !opts.Preview {
		if cached, ok := p.cache.Get(key); ok {
			p.recordCacheHit(position)
			return cached
		}
		p.recordCacheMiss(position)
	}

	eval := engine.NewEvaluator(p.registry, p.logger)
	renderables, err := p.selector.Select(ctx, position, page, eval)
	if err != nil {
		p.logger.Error("selection failed, emitting empty block",
			"position", position,
			"error", err,
		)
		p.recordRender(position, 0, time.Since(start), &Error{Position: position, Err: err})
		return ""
	}

	output := p.assemble(position, renderables)
	if p.cache != nil {
		p.cache.Set(key, output)
	}

	p.recordRender(position, len(renderables), time.Since(start), nil)
	return output
}

// assemble concatenates renderable code blocks and wraps the result in the
// managed-region markers. An empty selection yields an empty string, not
// empty markers.
func (p *Pipeline) assemble(position snippet.Position, renderables []Renderable) string {
	if len(renderables) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(markerStart)
	b.WriteString("\n")
	for _, r := range renderables {
		b.WriteString(r.Code)
		b.WriteString("\n")
	}
	b.WriteString(markerEnd)
	b.WriteString("\n")

	p.logger.Debug("rendered position",
		"position", position,
		"snippets", len(renderables),
	)
	return b.String()
}

// RenderAll renders every position for one request context. Positions are
// returned in document order.
func (p *Pipeline) RenderAll(ctx context.Context, page pagectx.Context, opts Options) map[snippet.Position]string {
	out := make(map[snippet.Position]string, len(snippet.Positions()))
	for _, pos := range snippet.Positions() {
		out[pos] = p.Render(ctx, pos, page, opts)
	}
	return out
}

// InvalidateAll orphans every cached output block. Expiry collects the
// orphans; nothing is recomputed until the next request asks for it.
func (p *Pipeline) InvalidateAll() {
	p.generation.Add(1)
	if p.metrics != nil {
		p.metrics.RecordInvalidation()
	}
	p.logger.Info("output cache invalidated", "generation", p.generation.Load())
}

// Generation returns the current cache generation, for diagnostics.
func (p *Pipeline) Generation() uint64 {
	return p.generation.Load()
}

func (p *Pipeline) cacheKey(position snippet.Position, page pagectx.Context) string {
	return fmt.Sprintf("%s:%d:%s", position, p.generation.Load(), page.Fingerprint().Hex())
}

func (p *Pipeline) recordCacheHit(position snippet.Position) {
	if p.metrics != nil {
		p.metrics.RecordCacheHit(string(position))
	}
}

func (p *Pipeline) recordCacheMiss(position snippet.Position) {
	if p.metrics != nil {
		p.metrics.RecordCacheMiss(string(position))
	}
}

func (p *Pipeline) recordRender(position snippet.Position, snippets int, duration time.Duration, err error) {
	if p.metrics != nil {
		p.metrics.RecordRender(string(position), snippets, duration, err)
	}
}
