package debug

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-drift/beacon/pkg/registry"
)

func jsonIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Server exposes registry and presenter state over HTTP for tooling.
//
// Endpoints:
//
//	GET /registry       registry snapshot as JSON
//	GET /registry.yaml  registry snapshot as YAML
//	GET /presenters     tracked presenter bindings as JSON
//	GET /health         liveness check
//
// Handlers capture snapshots through the registry's own accessors, which
// take the registry lock in shared mode; with an unlocked registry the
// server should only be queried between frames.
type Server struct {
	reg    *registry.Registry
	census *Census

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewServer creates a debug server over reg. census may be nil, in which
// case /presenters reports an empty list.
func NewServer(reg *registry.Registry, census *Census) *Server {
	if census == nil {
		census = NewCensus()
	}
	return &Server{reg: reg, census: census}
}

// Census returns the census the server reports from.
func (s *Server) Census() *Census {
	return s.census
}

// Start binds the server on the given port and serves in the background.
// Returns the actual port, useful when port is 0 for ephemeral allocation.
// Starting an already-running server returns its current port.
func (s *Server) Start(port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().(*net.TCPAddr).Port, nil
	}

	// Bind first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, fmt.Errorf("debug server listen: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/registry", s.handleRegistry)
	mux.HandleFunc("/registry.yaml", s.handleRegistryYAML)
	mux.HandleFunc("/presenters", s.handlePresenters)
	mux.HandleFunc("/health", handleHealth)

	server := &http.Server{Handler: mux}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
			fmt.Printf("debug server error: %v\n", err)
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, err := CaptureRegistry(s.reg).JSON()
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleRegistryYAML(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, err := CaptureRegistry(s.reg).YAML()
	if err != nil {
		http.Error(w, fmt.Sprintf("yaml encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(data)
}

func (s *Server) handlePresenters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snaps := s.census.Snapshot()
	payload := struct {
		Count      int                 `json:"count"`
		Presenters []PresenterSnapshot `json:"presenters,omitempty"`
	}{Count: len(snaps), Presenters: snaps}

	data, err := jsonIndent(payload)
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
