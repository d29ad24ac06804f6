package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"tagforge-hq/tagforge/pkg/pagectx"
	"tagforge-hq/tagforge/pkg/render"
	"tagforge-hq/tagforge/pkg/sanitize"
	"tagforge-hq/tagforge/pkg/snippet"
	"tagforge-hq/tagforge/pkg/template"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender emits the output block for one position. The request
// context arrives as query parameters; the block ships as text/html so
// hosts can splice it into a page verbatim.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	position := snippet.Position(chi.URLParam(r, "position"))
	if !validPosition(position) {
		writeError(w, http.StatusNotFound, "unknown position "+string(position))
		return
	}

	page := pageFromQuery(r)
	opts := render.Options{Preview: boolParam(r, "preview")}

	block := s.pipeline.Render(r.Context(), position, page, opts)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(block))
}

type validateRequest struct {
	Code string `json:"code"`
	Kind string `json:"kind"`
}

type validateResponse struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

// handleValidate runs authoring-time validation. Imports go through here
// too; a block that fails validation never reaches a store.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind := sanitize.Kind(req.Kind)
	switch kind {
	case sanitize.KindHTML, sanitize.KindJavaScript, sanitize.KindCSS:
	case "":
		kind = sanitize.KindHTML
	default:
		writeError(w, http.StatusBadRequest, "unknown code kind "+req.Kind)
		return
	}

	result := s.validator.Validate(req.Code, kind)
	if !result.OK {
		s.recordValidationFailure("code")
	}
	writeJSON(w, http.StatusOK, validateResponse{OK: result.OK, Errors: result.Errors})
}

type previewResponse struct {
	Service string `json:"service"`
	Name    string `json:"name"`
	Code    string `json:"code"`
}

// handlePreview renders a catalog service's template with a supplied
// tracking ID, bypassing persistence and the output cache. Dual-position
// services show both their blocks.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("service")
	id := r.URL.Query().Get("id")

	def, ok := template.Lookup(key)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown service "+key)
		return
	}
	if err := def.ValidateID(id); err != nil {
		s.recordValidationFailure("tracking_id")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var code string
	if def.DualPosition {
		code = template.Preview([]string{
			def.Code(id, template.VariantHead),
			def.Code(id, template.VariantBody),
		})
	} else {
		code = def.Code(id, def.DefaultPosition)
	}

	writeJSON(w, http.StatusOK, previewResponse{Service: def.Key, Name: def.Name, Code: code})
}

func (s *Server) handleInvalidate(w http.ResponseWriter, _ *http.Request) {
	s.pipeline.InvalidateAll()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"generation": s.pipeline.Generation(),
	})
}

type serviceStats struct {
	Enabled    int            `json:"enabled"`
	Templated  int            `json:"templated"`
	CustomCode int            `json:"custom_code"`
	ByPosition map[string]int `json:"by_position"`
}

type statsResponse struct {
	Services           serviceStats   `json:"services"`
	SnippetsByPosition map[string]int `json:"snippets_by_position"`
	CacheGeneration    uint64         `json:"cache_generation"`
}

// handleStats reports enabled-service counts and active snippet counts per
// position, for operator dashboards.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := statsResponse{
		Services:           serviceStats{ByPosition: make(map[string]int)},
		SnippetsByPosition: make(map[string]int),
		CacheGeneration:    s.pipeline.Generation(),
	}

	for key, svc := range s.cfg.Services {
		if !svc.Enabled {
			continue
		}
		def, ok := template.Lookup(key)
		if !ok {
			continue
		}
		stats.Services.Enabled++
		if svc.TemplateEnabled() {
			stats.Services.Templated++
		} else {
			stats.Services.CustomCode++
		}
		position := svc.Position
		if position == "" {
			position = def.DefaultPosition
		}
		stats.Services.ByPosition[position]++
	}

	if s.store != nil {
		for _, pos := range snippet.Positions() {
			active, err := s.store.FindActiveByPosition(r.Context(), pos)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "stats unavailable: "+err.Error())
				return
			}
			if len(active) > 0 {
				stats.SnippetsByPosition[string(pos)] = len(active)
			}
		}
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) recordValidationFailure(class string) {
	if s.metrics != nil {
		s.metrics.RecordValidationFailure(class)
	}
}

// pageFromQuery builds the request context from query parameters. Absent
// parameters leave zero values; Now defaults to the server clock.
func pageFromQuery(r *http.Request) pagectx.Context {
	q := r.URL.Query()
	entityID, _ := strconv.ParseInt(q.Get("entity_id"), 10, 64)

	now := time.Now()
	if raw := q.Get("now"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			now = parsed
		}
	}

	return pagectx.Context{
		PageType:   q.Get("page_type"),
		EntityID:   entityID,
		Categories: splitParam(q.Get("categories")),
		Tags:       splitParam(q.Get("tags")),
		LoggedIn:   q.Get("logged_in") == "true" || q.Get("logged_in") == "1",
		Roles:      splitParam(q.Get("roles")),
		Device:     pagectx.Device(q.Get("device")),
		URL:        q.Get("url"),
		Now:        now,
	}
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolParam(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "true" || v == "1"
}

func validPosition(p snippet.Position) bool {
	for _, pos := range snippet.Positions() {
		if p == pos {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
