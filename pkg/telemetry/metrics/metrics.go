// Package metrics registers and records the server's Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tagforge"

// Collector owns every metric the server records.
//
// Metrics:
//   - tagforge_renders_total: renders by position and outcome
//   - tagforge_render_duration_seconds: render latency by position
//   - tagforge_render_snippets: snippets emitted per render
//   - tagforge_cache_hits_total / tagforge_cache_misses_total
//   - tagforge_cache_invalidations_total
//   - tagforge_validation_failures_total: authoring-time rejections by check class
//   - tagforge_selector_rejections_total: candidates dropped, by reason
type Collector struct {
	registry *prometheus.Registry

	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderSnippets *prometheus.HistogramVec

	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	cacheInvalidations prometheus.Counter

	validationFailures *prometheus.CounterVec
	selectorRejections *prometheus.CounterVec
}

// NewCollector creates and registers all metrics. A nil registry gets a
// fresh one.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,

		rendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Total renders by position and outcome",
			},
			[]string{"position", "outcome"},
		),

		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Render latency by position",
				Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
			},
			[]string{"position"},
		),

		renderSnippets: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_snippets",
				Help:      "Snippets emitted per render",
				Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
			},
			[]string{"position"},
		),

		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Output cache hits by position",
			},
			[]string{"position"},
		),

		cacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Output cache misses by position",
			},
			[]string{"position"},
		),

		cacheInvalidations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_invalidations_total",
				Help:      "Whole-cache invalidations",
			},
		),

		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Authoring-time code rejections by check class",
			},
			[]string{"class"},
		),

		selectorRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "selector_rejections_total",
				Help:      "Snippet candidates dropped during selection, by reason",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		c.rendersTotal,
		c.renderDuration,
		c.renderSnippets,
		c.cacheHits,
		c.cacheMisses,
		c.cacheInvalidations,
		c.validationFailures,
		c.selectorRejections,
	)

	return c
}

// RecordRender records one render call.
func (c *Collector) RecordRender(position string, snippets int, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.rendersTotal.WithLabelValues(position, outcome).Inc()
	c.renderDuration.WithLabelValues(position).Observe(duration.Seconds())
	c.renderSnippets.WithLabelValues(position).Observe(float64(snippets))
}

// RecordCacheHit records an output-cache hit.
func (c *Collector) RecordCacheHit(position string) {
	c.cacheHits.WithLabelValues(position).Inc()
}

// RecordCacheMiss records an output-cache miss.
func (c *Collector) RecordCacheMiss(position string) {
	c.cacheMisses.WithLabelValues(position).Inc()
}

// RecordInvalidation records a whole-cache invalidation.
func (c *Collector) RecordInvalidation() {
	c.cacheInvalidations.Inc()
}

// RecordValidationFailure records an authoring-time rejection.
func (c *Collector) RecordValidationFailure(class string) {
	c.validationFailures.WithLabelValues(class).Inc()
}

// RecordSelectorRejection records a candidate dropped during selection.
func (c *Collector) RecordSelectorRejection(reason string) {
	c.selectorRejections.WithLabelValues(reason).Inc()
}

// Registry exposes the underlying registry for additional collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the /metrics HTTP handler.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
