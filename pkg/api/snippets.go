package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tagforge-hq/tagforge/pkg/sanitize"
	"tagforge-hq/tagforge/pkg/snippet"
)

// requireWriter answers 501 when the configured store backend has no write
// path (the YAML file source is read-only; edit the files instead).
func (s *Server) requireWriter(w http.ResponseWriter) bool {
	if s.writer == nil {
		writeError(w, http.StatusNotImplemented, "snippet store is read-only")
		return false
	}
	return true
}

func (s *Server) handleListSnippets(w http.ResponseWriter, r *http.Request) {
	if !s.requireWriter(w) {
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	filter := snippet.ListFilter{
		Status:   snippet.Status(q.Get("status")),
		Position: snippet.Position(q.Get("position")),
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Limit:    limit,
		Offset:   offset,
	}

	list, err := s.writer.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"snippets": list, "count": len(list)})
}

func (s *Server) handleGetSnippet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sn, err := s.store.Get(r.Context(), id)
	if err != nil {
		var notFound *snippet.NotFoundError
		if errors.As(err, &notFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sn)
}

func (s *Server) handleCreateSnippet(w http.ResponseWriter, r *http.Request) {
	if !s.requireWriter(w) {
		return
	}

	sn, ok := s.decodeSnippet(w, r)
	if !ok {
		return
	}

	if err := s.writer.Create(r.Context(), sn); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.pipeline.InvalidateAll()
	writeJSON(w, http.StatusCreated, sn)
}

func (s *Server) handleUpdateSnippet(w http.ResponseWriter, r *http.Request) {
	if !s.requireWriter(w) {
		return
	}

	sn, ok := s.decodeSnippet(w, r)
	if !ok {
		return
	}
	sn.ID = chi.URLParam(r, "id")

	if err := s.writer.Update(r.Context(), sn); err != nil {
		var notFound *snippet.NotFoundError
		if errors.As(err, &notFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.pipeline.InvalidateAll()
	writeJSON(w, http.StatusOK, sn)
}

func (s *Server) handleDeleteSnippet(w http.ResponseWriter, r *http.Request) {
	if !s.requireWriter(w) {
		return
	}

	if err := s.writer.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		var notFound *snippet.NotFoundError
		if errors.As(err, &notFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.pipeline.InvalidateAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleSnippet(w http.ResponseWriter, r *http.Request) {
	if !s.requireWriter(w) {
		return
	}

	id := chi.URLParam(r, "id")
	status, err := s.writer.ToggleStatus(r.Context(), id)
	if err != nil {
		var notFound *snippet.NotFoundError
		if errors.As(err, &notFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.pipeline.InvalidateAll()
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(status)})
}

// decodeSnippet parses, defaults, and validates an incoming snippet. The
// code runs through the full authoring-time validator and the defensive
// strip pass before anything touches a store.
func (s *Server) decodeSnippet(w http.ResponseWriter, r *http.Request) (*snippet.Snippet, bool) {
	var sn snippet.Snippet
	if err := json.NewDecoder(r.Body).Decode(&sn); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	sn.ApplyDefaults()
	if err := sn.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}

	result := s.validator.Validate(sn.Code, sanitize.Kind(sn.CodeType))
	if !result.OK {
		s.recordValidationFailure("code")
		writeJSON(w, http.StatusUnprocessableEntity, validateResponse{OK: false, Errors: result.Errors})
		return nil, false
	}
	sn.Code = sanitize.Strip(sn.Code)

	return &sn, true
}
