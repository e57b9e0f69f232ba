package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/roster/internal/app"
	"github.com/nfrund/roster/internal/config"
	"github.com/nfrund/roster/internal/handlers"
	appmiddleware "github.com/nfrund/roster/internal/middleware"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E    *echo.Echo
	Cfg  *config.Config
	Deps *app.Dependencies

	rosterHandler *handlers.RosterHandler
	logger        *slog.Logger
}

// New creates a Server around already-built dependencies. Call RegisterRoutes
// before Start.
func New(cfg *config.Config, deps *app.Dependencies) *Server {
	logger := slog.Default().With("component", "server")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger(logger))
	setupErrorHandling(e)

	return &Server{
		E:             e,
		Cfg:           cfg,
		Deps:          deps,
		rosterHandler: handlers.NewRosterHandler(deps.Store),
		logger:        logger,
	}
}
