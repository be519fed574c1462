package httpserver

import (
	"net/http"
	"time"

	"trip-planner-go/internal/config"
)

// New builds the HTTP server around the router. Write timeout stays above
// the router's per-request timeout so slow uploads are cut by the handler
// chain, not the server.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
