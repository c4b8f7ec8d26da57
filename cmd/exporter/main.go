package main

import (
	"context"
	"log"

	"cache-metrics-exporter/internal/agent"
	"cache-metrics-exporter/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := agent.BuildLogger(cfg)
	a := agent.New(cfg, logger)

	if err := a.Run(context.Background()); err != nil {
		logger.Error("exporter runtime failed", "error", err)
	}
}
