package main

import (
	"context"
	"log"

	"github.com/bochaco/stableset-net/internal/config"
	"github.com/bochaco/stableset-net/internal/handlers/cli"
	"github.com/bochaco/stableset-net/internal/infra/peers"
	redisstorage "github.com/bochaco/stableset-net/internal/infra/storage/redis"
	"github.com/bochaco/stableset-net/internal/pkg/logger"
	"github.com/bochaco/stableset-net/internal/pkg/telemetry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, cfg.ServiceName)
		if err != nil {
			log.Fatalf("initializing telemetry: %v", err)
		}
		defer func() {
			_ = shutdown(ctx)
		}()
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	storage, err := redisstorage.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal(ctx, "connecting to redis", "addr", cfg.RedisAddr, "error", err)
	}
	defer func() {
		_ = storage.Close()
	}()

	var contacts *peers.Fetcher
	if cfg.NetworkContactsURL != "" {
		contacts = peers.NewFetcher(cfg.NetworkContactsURL)
	}

	if err := cli.Run(ctx, storage, storage, contacts); err != nil {
		logger.Fatal(ctx, "command failed", "error", err)
	}
}
