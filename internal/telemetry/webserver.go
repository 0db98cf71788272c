package telemetry

import (
	"context"
	"net/http"
	"time"
)

// WebServer exposes the hub's history, latest spectrum, and a live event
// stream over HTTP for external plotting tools.
type WebServer struct {
	addr string
	hub  *Hub
}

// NewWebServer builds a server bound to addr, backed by the given hub.
func NewWebServer(addr string, hub *Hub) *WebServer {
	return &WebServer{addr: addr, hub: hub}
}

// Start serves until the context is canceled.
func (s *WebServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/history", s.hub.handleHistory)
	mux.HandleFunc("/api/spectrum", s.hub.handleSpectrum)
	mux.HandleFunc("/api/live", s.hub.handleLive)

	srv := &http.Server{Addr: s.addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
