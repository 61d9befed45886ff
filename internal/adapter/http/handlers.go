package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/couchcryptid/calendar-map-service/internal/domain"
)

type geocodeRequest struct {
	Address string `json:"address"`
}

type batchRequest struct {
	Addresses   []string `json:"addresses"`
	Concurrency int      `json:"concurrency,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	var req geocodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	loc, err := s.geocoding.Resolve(r.Context(), req.Address)
	if err != nil {
		s.writeResolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) handleGeocodeBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	outcome, err := s.geocoding.ResolveMany(r.Context(), req.Addresses, req.Concurrency)
	if err != nil {
		s.writeResolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.geocoding.CacheStats())
}

func (s *Server) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	removed := s.geocoding.ClearCache()
	s.logger.Info("cache cleared", "removed", removed)
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// handleMap serves the enriched calendar map. The window defaults to the
// next 7 days; callers override it with RFC 3339 from/to query params.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	from := time.Now()
	to := from.Add(7 * 24 * time.Hour)

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid 'from' timestamp"})
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid 'to' timestamp"})
			return
		}
		to = t
	}

	view, err := s.maps.MapView(r.Context(), from, to)
	if err != nil {
		s.logger.Error("map view failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// writeResolveError maps the resolution error taxonomy onto HTTP statuses.
func (s *Server) writeResolveError(w http.ResponseWriter, err error) {
	var resolveErr *domain.ResolveError
	if !errors.As(err, &resolveErr) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch resolveErr.Kind {
	case domain.KindInvalidInput, domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindProviderNotConfigured:
		status = http.StatusServiceUnavailable
	case domain.KindProviderError:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, errorResponse{
		Error: resolveErr.Message,
		Kind:  string(resolveErr.Kind),
	})
}
