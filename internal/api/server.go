// Package api exposes the health coach over HTTP. Routes live under
// /v1: per-user logs, profile, and suggestion generation, plus a
// service-wide health check.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erandawijewantha/personalized-health-coach/internal/config"
)

// Server wraps the HTTP listener with the configured timeouts.
type Server struct {
	httpServer *http.Server
}

func NewServer(cfg config.ServerConfig, engine *gin.Engine) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Run blocks serving requests until Shutdown is called.
func (s *Server) Run() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
