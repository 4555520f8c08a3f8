package server

import (
	"log/slog"
	"time"

	"github.com/alkime/coach/internal/app"
	"github.com/alkime/coach/internal/config"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// setupSecurityMiddleware configures and applies security middleware to the router
func setupSecurityMiddleware(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	production := cfg.Env == config.EnvProduction

	// HSTS only behind TLS in production
	stsSeconds := int64(0)
	if production {
		stsSeconds = int64(cfg.HSTSMaxAge)
	}

	mediaHost := ""
	if cfg.MediaStore == app.MediaS3 {
		mediaHost = cfg.S3PublicURL
	}

	router.Use(secure.New(secure.Config{
		STSSeconds:            stsSeconds,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: config.BuildCSP(cfg.CSPMode, mediaHost),
	}))

	logger.Debug("Configured security middleware",
		"hsts_enabled", production,
		"csp_mode", cfg.CSPMode,
	)
}

// requestLogger logs one structured line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
