// Package server is an illustrative HTTP+SSE demo front end for the
// Simulator: it streams SimulationSnapshot images and console log lines to
// a browser client. It is not part of the specified public contract;
// cmd/lumensim and this package are both reference editor/presenter
// implementations.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/kavehsim/lumensim/pkg/catalogue"
)

// Server serves the demo simulation endpoints.
type Server struct {
	port int
}

// NewServer creates a demo server listening on port.
func NewServer(port int) *Server {
	return &Server{port: port}
}

// Start registers routes and blocks serving HTTP.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/catalogue", s.handleCatalogue)
	mux.HandleFunc("/api/simulate", s.handleSimulate)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting lumensim demo server on http://localhost%s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleCatalogue lists the built-in demo layouts a client can request from
// /api/simulate.
func (s *Server) handleCatalogue(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(catalogue.List())
}

// parseIntParam parses an integer query parameter with a default and range.
func parseIntParam(values map[string][]string, key string, defaultValue, min, max int) (int, error) {
	vals, ok := values[key]
	if !ok || len(vals) == 0 || vals[0] == "" {
		return defaultValue, nil
	}
	var parsed int
	if _, err := fmt.Sscanf(vals[0], "%d", &parsed); err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, vals[0])
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", key, min, max, parsed)
	}
	return parsed, nil
}

// parseFloatParam parses a float query parameter with a default and range.
func parseFloatParam(values map[string][]string, key string, defaultValue, min, max float64) (float64, error) {
	vals, ok := values[key]
	if !ok || len(vals) == 0 || vals[0] == "" {
		return defaultValue, nil
	}
	var parsed float64
	if _, err := fmt.Sscanf(vals[0], "%g", &parsed); err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, vals[0])
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %g and %g, got %g", key, min, max, parsed)
	}
	return parsed, nil
}
