package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shhan95/firecode-watch/internal/dashboard"
)

// Loader produces one page view per request. dashboard.Controller satisfies
// it; tests inject stubs.
type Loader interface {
	Load(ctx context.Context) *dashboard.PageView
}

// Server is the dashboard HTTP server. It serves the rendered page, a JSON
// status API, the raw data files, and an SSE stream for refresh events.
type Server struct {
	loader  Loader
	dataDir string
	addr    string
	mux     *http.ServeMux
	hub     *Hub
}

// NewServer creates a dashboard server.
func NewServer(loader Loader, dataDir, addr string) *Server {
	s := &Server{
		loader:  loader,
		dataDir: dataDir,
		addr:    addr,
		mux:     http.NewServeMux(),
		hub:     NewHub(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/", s.pageHandler())
	s.mux.HandleFunc("/api/status", s.statusHandler())
	s.mux.HandleFunc("/api/report", s.reportHandler())
	s.mux.HandleFunc("/api/events", s.eventsHandler())
	s.mux.HandleFunc("/healthz", s.healthHandler())

	// The raw resources stay fetchable exactly as a static host would serve
	// them; the dashboard's own fetch layer reads these paths.
	s.mux.Handle("/data/", http.StripPrefix("/data/", http.FileServer(http.Dir(s.dataDir))))
}

// Handler exposes the mux for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	go s.hub.Run()
	return http.ListenAndServe(s.addr, s.mux)
}

// BroadcastRefresh tells connected clients the resources changed.
func (s *Server) BroadcastRefresh(files []string) {
	s.hub.Broadcast(Event{Type: "refresh", Data: files})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
