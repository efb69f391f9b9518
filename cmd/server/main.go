// Package main provides the tide prediction HTTP server.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"go.ngs.io/tide-atlas/internal/config"
	httpHandler "go.ngs.io/tide-atlas/internal/http"
	"go.ngs.io/tide-atlas/internal/usecase"
)

const version = "0.2.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	registryPath := flag.String("models", getEnv("MODEL_REGISTRY", "./models.yaml"), "Path to the model registry YAML")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tide-atlas server version %s\n", version)
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	port := getEnv("PORT", "8080")

	registry, err := config.Load(*registryPath)
	if err != nil {
		logger.Fatal("loading model registry", zap.String("path", *registryPath), zap.Error(err))
	}

	logger.Info("starting tide-atlas server",
		zap.String("version", version),
		zap.String("port", port),
		zap.Strings("models", registry.Names()),
	)

	service := usecase.NewService(registry)
	router := httpHandler.SetupRouter(service)

	addr := fmt.Sprintf(":%s", port)
	logger.Info("listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
