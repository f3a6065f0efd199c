package server

import "net/http"

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Question answering
	mux.HandleFunc("/ask", s.app.AskHandler.AskHandler)

	// Index management
	mux.HandleFunc("/api/index/rebuild", s.app.IndexHandler.RebuildHandler)
	mux.HandleFunc("/api/index/status", s.app.IndexHandler.StatusHandler)

	// System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
