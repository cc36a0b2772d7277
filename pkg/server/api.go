package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/patterns/internal/errors"
	"github.com/vango-dev/patterns/pkg/catalog"
)

// apiError is the JSON error body.
type apiError struct {
	Code       string `json:"code,omitempty"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (s *Server) listPatterns(w http.ResponseWriter, r *http.Request) {
	all, err := s.catalog.All(r.Context())
	if err != nil {
		s.apiFailure(w, r, err)
		return
	}

	if q := r.URL.Query().Get("category"); q != "" {
		c, err := catalog.ParseCategory(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Code: "P060", Error: err.Error()})
			return
		}
		filtered := all[:0:0]
		for _, p := range all {
			if p.Category == c {
				filtered = append(filtered, p)
			}
		}
		all = filtered
	}

	if all == nil {
		all = []catalog.Pattern{}
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) getPattern(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.catalog.Get(r.Context(), id)
	if err == nil {
		writeJSON(w, http.StatusOK, p)
		return
	}

	if _, ok := catalog.IsNotFound(err); ok {
		body := apiError{Code: "P001", Error: err.Error()}
		if all, aerr := s.catalog.All(r.Context()); aerr == nil {
			if guess, ok := catalog.Suggest(all, id); ok {
				body.Suggestion = fmt.Sprintf("did you mean %q?", guess.ID)
			}
		}
		writeJSON(w, http.StatusNotFound, body)
		return
	}
	s.apiFailure(w, r, err)
}

func (s *Server) apiFailure(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		return
	}
	coded := errors.FromError(err, "P003")
	s.logger.Error("catalog query failed", "path", r.URL.Path, "error", coded)
	writeJSON(w, http.StatusInternalServerError, apiError{Code: coded.Code, Error: coded.Message})
}

// health reports liveness and the open live sessions.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.count(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
