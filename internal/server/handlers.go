package server

import (
	"encoding/json"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"streamgate/internal/logging"
	"streamgate/internal/media"
)

// maxExtractBody bounds the /extract request body; it carries a single URL.
const maxExtractBody = 64 * 1024

type extractRequest struct {
	URL string `json:"url"`
}

// handleExtract resolves an embed URL into a direct media locator. Only
// input validation produces a client-error status; extraction failures are
// normal outcomes and still return 200 with a fallback embed URL.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxExtractBody)).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, media.Outcome{Message: "URL is required"})
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, media.Outcome{Message: "URL is required"})
		return
	}

	out, err := s.resolver.Resolve(r.Context(), req.URL)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, media.Outcome{Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// handleProxy relays media bytes from the url query parameter to the
// client, preserving range semantics.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		http.Error(w, "url parameter is required", http.StatusBadRequest)
		return
	}

	s.relay.Proxy(w, r, target)
}

type healthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutine"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "healthy",
		Version:      Version,
		Uptime:       time.Since(s.start).Round(time.Second).String(),
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": Version})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debug("encoding response: %v", err)
	}
}
