package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/invoza/webapp/internal/config"
	"github.com/invoza/webapp/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()

	// Load configuration from environment
	cfg := config.Load()

	if err := logger.Init(cfg); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	log := logger.L()
	defer func() { _ = log.Sync() }()

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatal("failed to build application", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("api_base_url", cfg.API.BaseURL),
			zap.Bool("dev", cfg.App.Dev))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server stopped gracefully")
}
