// Package server serves the generated site locally with live reload
package server

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"net/http"
	"time"

	"treesite/internal/config"

	"github.com/gorilla/mux"
)

//go:embed livereload.js
var livereloadScript []byte

// Server is the preview HTTP server for a generated site
type Server struct {
	config     *config.Config
	router     *mux.Router
	httpServer *http.Server
	hub        *Hub
	watcher    *Watcher
	rebuild    func() error
}

// New creates a preview server. rebuild regenerates the site from its
// source; it is invoked whenever the tree file changes. When the site was
// generated from the built-in sample tree there is nothing to watch and
// rebuild may be nil.
func New(cfg *config.Config, rebuild func() error) (*Server, error) {
	s := &Server{
		config:  cfg,
		router:  mux.NewRouter(),
		rebuild: rebuild,
	}

	s.hub = NewHub()

	if cfg.TreeFile != "" && rebuild != nil {
		watcher, err := NewWatcher(cfg.TreeFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create watcher: %w", err)
		}
		s.watcher = watcher
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/ws", s.hub.HandleWebSocket)
	s.router.HandleFunc("/livereload.js", s.handleLivereloadScript).Methods("GET")

	// The generated site itself
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.config.OutputDir)))
}

func (s *Server) handleLivereloadScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Write(livereloadScript)
}

// Handler returns the server's root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.hub.Run()

	if s.watcher != nil {
		go s.watchTreeFile()
	}

	log.Printf("Preview server starting on http://localhost:%d", s.config.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}

// watchTreeFile regenerates the site and reloads connected pages whenever
// the tree source file changes.
func (s *Server) watchTreeFile() {
	for range s.watcher.Events() {
		log.Printf("Tree file changed, regenerating site")
		if err := s.rebuild(); err != nil {
			log.Printf("Regeneration failed: %v", err)
			continue
		}
		s.hub.BroadcastReload()
	}
}
