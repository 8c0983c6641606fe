package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"blogapi/config"
	"blogapi/internal/app"
	"blogapi/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	gin.SetMode(gin.ReleaseMode)

	log := logger.New(cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Error("init failed", "error", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
