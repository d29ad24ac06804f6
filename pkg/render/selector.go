package render

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"tagforge-hq/tagforge/pkg/config"
	"tagforge-hq/tagforge/pkg/engine"
	"tagforge-hq/tagforge/pkg/pagectx"
	"tagforge-hq/tagforge/pkg/snippet"
	"tagforge-hq/tagforge/pkg/telemetry/metrics"
	"tagforge-hq/tagforge/pkg/template"
)

// Renderable is one code block that survived selection for a position,
// ready to concatenate into the output.
type Renderable struct {
	ID       string
	Name     string
	Code     string
	Priority int
}

// Selection rejection reasons, as recorded against the rejections metric.
const (
	rejectDevice     = "device"
	rejectConditions = "conditions"
	rejectEmptyCode  = "empty_code"
	rejectNoTemplate = "no_template"
)

// Selector gathers the code blocks eligible for a position: configured
// catalog services first, then stored snippets. Both pass the same gates
// (device class, condition tree, non-empty code) before ordering by
// priority.
type Selector struct {
	services map[string]config.ServiceConfig
	store    snippet.Store
	logger   *slog.Logger
	metrics  *metrics.Collector
}

// NewSelector creates a selector. Either services or store may be nil when
// that source is not configured; a nil metrics collector disables rejection
// counting.
func NewSelector(services map[string]config.ServiceConfig, store snippet.Store, logger *slog.Logger, collector *metrics.Collector) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		services: services,
		store:    store,
		logger:   logger.With("component", "selector"),
		metrics:  collector,
	}
}

// Select returns the renderables for a position under the given request
// context, ordered by priority ascending with source order breaking ties.
// The evaluator is shared across the whole render so condition results are
// memoized between positions of the same request.
func (s *Selector) Select(ctx context.Context, position snippet.Position, page pagectx.Context, eval *engine.Evaluator) ([]Renderable, error) {
	seen := make(map[string]bool)
	out := s.selectServices(position, page, eval, seen)

	if s.store != nil {
		stored, err := s.store.FindActiveByPosition(ctx, position)
		if err != nil {
			return nil, fmt.Errorf("loading snippets for %s: %w", position, err)
		}
		for _, sn := range stored {
			if seen[sn.ID] {
				continue
			}
			r, ok := s.selectSnippet(sn, page, eval)
			if !ok {
				continue
			}
			seen[sn.ID] = true
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out, nil
}

// selectServices walks the catalog in display order so equal-priority
// services render in a stable, predictable sequence.
func (s *Selector) selectServices(position snippet.Position, page pagectx.Context, eval *engine.Evaluator, seen map[string]bool) []Renderable {
	if len(s.services) == 0 {
		return nil
	}

	var out []Renderable
	for _, def := range template.All() {
		svc, ok := s.services[def.Key]
		if !ok || !svc.Enabled {
			continue
		}

		code, ok := s.serviceCode(def, svc, position)
		if !ok {
			continue
		}
		if !deviceMatches(snippet.DeviceTarget(svc.Device), page.Device) {
			s.reject(rejectDevice)
			continue
		}
		if !eval.Evaluate(svc.Conditions, page) {
			s.reject(rejectConditions)
			continue
		}

		priority := svc.Priority
		if priority == 0 {
			priority = snippet.DefaultPriority
		}
		seen[def.Key] = true
		out = append(out, Renderable{
			ID:       def.Key,
			Name:     def.Name,
			Code:     code,
			Priority: priority,
		})
	}
	return out
}

// serviceCode resolves the code a service emits at the position, or false
// when it emits nothing there. A dual-position service configured for head
// also emits its companion block into body.
func (s *Selector) serviceCode(def *template.Service, svc config.ServiceConfig, position snippet.Position) (string, bool) {
	effective := svc.Position
	if effective == "" {
		effective = def.DefaultPosition
	}

	here := effective == string(position)
	if def.DualPosition && position == snippet.PositionBody {
		here = true
	}
	if !here {
		return "", false
	}

	if !svc.TemplateEnabled() {
		code := strings.TrimSpace(svc.CustomCode)
		if code == "" {
			s.reject(rejectEmptyCode)
			return "", false
		}
		return code, true
	}

	if svc.TrackingID == "" {
		s.reject(rejectEmptyCode)
		return "", false
	}
	code := def.Code(svc.TrackingID, string(position))
	if code == "" {
		s.reject(rejectNoTemplate)
		return "", false
	}
	return code, true
}

func (s *Selector) selectSnippet(sn *snippet.Snippet, page pagectx.Context, eval *engine.Evaluator) (Renderable, bool) {
	if !deviceMatches(sn.Device, page.Device) {
		s.reject(rejectDevice)
		return Renderable{}, false
	}
	if !eval.Evaluate(sn.Conditions, page) {
		s.reject(rejectConditions)
		return Renderable{}, false
	}

	code := strings.TrimSpace(sn.Code)
	if code == "" {
		s.reject(rejectEmptyCode)
		return Renderable{}, false
	}

	return Renderable{
		ID:       sn.ID,
		Name:     sn.Name,
		Code:     applyLoadMethod(code, sn.CodeType, sn.LoadMethod),
		Priority: sn.Priority,
	}, true
}

// applyLoadMethod rewrites script tags for async or defer loading. Bare
// JavaScript is wrapped in a script tag first so the attribute has
// somewhere to land. Only javascript snippets are touched.
func applyLoadMethod(code string, codeType snippet.CodeType, method snippet.LoadMethod) string {
	if method == snippet.LoadNormal || method == "" || codeType != snippet.CodeJavaScript {
		return code
	}
	if !strings.Contains(code, "<script") {
		code = "<script>\n" + code + "\n</script>"
	}
	return strings.ReplaceAll(code, "<script", "<script "+string(method))
}

func deviceMatches(target snippet.DeviceTarget, device pagectx.Device) bool {
	if target == "" || target == snippet.DeviceAll {
		return true
	}
	return string(target) == string(device)
}

func (s *Selector) reject(reason string) {
	if s.metrics != nil {
		s.metrics.RecordSelectorRejection(reason)
	}
}
