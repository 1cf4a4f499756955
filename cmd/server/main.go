package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blagoySimandov/synthdata/internal/api"
	"github.com/blagoySimandov/synthdata/internal/config"
	"github.com/blagoySimandov/synthdata/internal/generator"
	"github.com/blagoySimandov/synthdata/internal/logger"
	"github.com/blagoySimandov/synthdata/internal/metrics"
)

func main() {
	cfg := config.Load()
	logger.Setup(os.Stdout, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		fatal("Invalid configuration", err)
	}

	ctx := context.Background()
	client, err := generator.NewCompletionClient(ctx, cfg)
	if err != nil {
		fatal("Failed to create completion client", err)
	}

	gen, err := generator.NewFromConfig(cfg, client)
	if err != nil {
		fatal("Failed to create generator", err)
	}

	handler := api.NewGenerateHandler(gen, api.GenerateHandlerConfig{
		DefaultRows:    cfg.DefaultRows,
		MaxRows:        cfg.MaxRows,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	router := api.SetupRoutes(handler, metrics.NewRegistry(), cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.CompletionTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Log.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Log.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Log.Info("Server starting",
		"addr", cfg.ServerAddr,
		"provider", cfg.LLMProvider,
		"model", cfg.Model,
		"schema_policy", cfg.SchemaPolicy,
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fatal("Server failed to start", err)
	}

	logger.Log.Info("Server stopped")
}

func fatal(msg string, err error) {
	logger.Log.Error(msg, "error", err)
	os.Exit(1)
}
