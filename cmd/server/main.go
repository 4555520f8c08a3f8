package main

import (
	"context"
	"log"

	"github.com/alkime/coach/internal/app"
	"github.com/alkime/coach/internal/config"
	"github.com/alkime/coach/internal/logger"
	"github.com/alkime/coach/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.SetupLogger(cfg)

	l.Info("Starting coach server",
		"env", cfg.Env,
		"port", cfg.Port,
		"images", cfg.ImageProvider,
		"questions", cfg.QuestionProvider,
		"feedback", cfg.FeedbackProvider,
		"media", cfg.MediaStore,
	)

	gw, _, err := app.NewGateway(context.Background(), cfg.Options())
	if err != nil {
		l.Error("Failed to set up generation", "error", err)
		log.Fatalf("Fatal: %v", err)
	}

	srv, err := server.New(cfg, l, gw)
	if err != nil {
		l.Error("Failed to create server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}

	if err := server.Run(srv); err != nil {
		l.Error("Failed to start server", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
