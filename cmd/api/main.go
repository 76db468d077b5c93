package main

import (
	"log/slog"
	"os"

	documentationservice "eventmesh/contexts/mesh-core/documentation-service"
	"eventmesh/contexts/mesh-core/documentation-service/adapters/memory"
	postgresadapter "eventmesh/contexts/mesh-core/documentation-service/adapters/postgres"
	"eventmesh/internal/platform/config"
	"eventmesh/internal/platform/db"
	"eventmesh/internal/platform/httpserver"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Connect the durable store, or degrade to the in-memory store.
// 3) Build module wiring (ports + adapters + use cases).
// 4) Start HTTP server.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err.Error())
		os.Exit(1)
	}

	var module documentationservice.Module
	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		logger.Warn("durable store unreachable, serving from in-memory store",
			"event", "durable_store_unreachable",
			"module", "cmd/api",
			"layer", "bootstrap",
			"error", err.Error(),
		)
		module = documentationservice.NewInMemoryModule(nil, logger)
	} else {
		defer func() { _ = pg.Close() }()
		repository := postgresadapter.NewRepository(pg.DB, logger)
		deps := documentationservice.Dependencies{
			Events:      repository,
			Narratives:  repository,
			Clock:       postgresadapter.SystemClock{},
			IDGenerator: postgresadapter.UUIDGenerator{},
			Logger:      logger,
		}
		if cfg.EnableFallbackStore {
			deps.Fallback = memory.Global()
		}
		module = documentationservice.NewModule(deps)
	}

	server := httpserver.New(module, logger, ":"+cfg.HTTPPort)
	if err := server.Start(); err != nil {
		logger.Error("http server stopped", "error", err.Error())
		os.Exit(1)
	}
}
