package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/erabu/internal/models"
	"github.com/hyperjump/erabu/internal/pattern"
	"github.com/hyperjump/erabu/internal/search"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request",
		zap.String("keywords", query.Keywords),
		zap.String("algorithm", query.Algorithm),
		zap.Int("top_n", query.TopN))
	response, err := s.service.Search(r.Context(), &query)
	if err != nil {
		s.respondSearchError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSearchPatterns(w http.ResponseWriter, r *http.Request) {
	var query models.PatternQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("pattern search request",
		zap.Strings("patterns", query.Patterns),
		zap.String("algorithm", query.Algorithm),
		zap.Int("top_n", query.TopN))
	response, err := s.service.SearchPatterns(r.Context(), &query)
	if err != nil {
		s.respondSearchError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

// respondSearchError maps search failures to status codes: caller mistakes
// (empty query, unknown algorithm) are 400s, everything else is a 500.
func (s *Server) respondSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, search.ErrEmptyQuery), errors.Is(err, pattern.ErrUnsupportedAlgorithm):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	detailID, err := strconv.ParseInt(chi.URLParam(r, "detailID"), 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid detail id")
		return
	}
	summary, err := s.service.Summary(r.Context(), detailID)
	if err != nil {
		if errors.Is(err, search.ErrDocumentUnavailable) {
			s.respondError(w, http.StatusNotFound, "document unavailable")
			return
		}
		s.logger.Error("summary failed", zap.Int64("detail_id", detailID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	applications, err := s.storage.CountApplications(r.Context())
	if err != nil {
		s.logger.Error("status: count applications failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"ingestion":    s.docs.Progress(),
		"documents":    s.docs.Len(),
		"applications": applications,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
