// Package server exposes the scenario/feedback gateway over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alkime/coach/internal/app"
	"github.com/alkime/coach/internal/config"
	"github.com/alkime/coach/internal/gateway"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Gateway produces scenarios and feedback.
type Gateway interface {
	GenerateScenario(ctx context.Context) (gateway.Scenario, error)
	GetFeedback(ctx context.Context, question, answer string) (string, error)
}

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *slog.Logger
	router *gin.Engine
	gw     Gateway
}

// New creates a new Server instance
func New(cfg *config.Config, logger *slog.Logger, gw Gateway) (*Server, error) {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	logger.Debug("Configured trusted proxies", "proxies", cfg.TrustedProxies)

	server := &Server{
		config: cfg,
		logger: logger,
		router: router,
		gw:     gw,
	}

	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server, nil
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server
func Run(s *Server) error {
	s.logger.Info("Server listening", "port", s.config.Port)
	return s.router.Run(":" + s.config.Port)
}

func (s *Server) setupRoutes() {
	// local media only; S3 objects are served by the bucket
	if s.config.MediaStore == app.MediaLocal {
		s.router.Use(static.Serve(config.MediaRoute, static.LocalFile(s.config.MediaDir, false)))
		s.logger.Debug("Serving local media", "dir", s.config.MediaDir, "route", config.MediaRoute)
	}

	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.POST("/scenario", s.handleScenario)
		api.POST("/feedback", s.handleFeedback)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "coach",
	})
}
