package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/redflag/internal/scraper"
	"github.com/jonathan/redflag/internal/types"
)

// maxBodyBytes bounds the analyze request body.
const maxBodyBytes = 64 << 10

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze scrapes and analyzes one profile
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgUsernameRequired)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgUsernameRequired)
		return
	}

	result, err := s.analyzer.AnalyzeUsername(r.Context(), req.Username)
	if err != nil {
		status, msg := HTTPStatus(err)
		s.logger.Error("analyze failed",
			"request_id", requestID(r.Context()),
			"username", req.Username,
			"status", status,
			"error", err)
		s.errorResponse(w, status, msg)
		return
	}

	s.jsonResponse(w, http.StatusOK, result.Response())
}

// handleGetProfile returns the last stored analysis for a username
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, msgStoreDisabled)
		return
	}

	username, err := scraper.NormalizeUsername(r.PathValue("username"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidUsername)
		return
	}

	rec, err := s.profiles.GetProfile(r.Context(), username)
	if err != nil {
		s.logger.Error("profile lookup failed",
			"request_id", requestID(r.Context()),
			"username", username,
			"error", err)
		s.errorResponse(w, http.StatusInternalServerError, msgLookupFailed)
		return
	}
	if rec == nil {
		s.errorResponse(w, http.StatusNotFound, msgProfileNotFound)
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("error encoding JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
