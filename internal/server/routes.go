package server

import (
	"github.com/nfrund/roster/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	s.rosterHandler.Register(s.E.Group("/rooms"), middleware.RateLimiter())

	s.E.GET("/healthz", s.rosterHandler.HealthCheck)
}
