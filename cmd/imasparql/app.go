package main

import (
	"log/slog"

	"github.com/YutaGoto/imasparql-mcp-server/internal/config"
	"github.com/YutaGoto/imasparql-mcp-server/internal/engine"
	"github.com/YutaGoto/imasparql-mcp-server/internal/graph"
	"github.com/YutaGoto/imasparql-mcp-server/internal/metrics"
)

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	client  *graph.Client
	metrics *metrics.Metrics
	engine  *engine.Engine
	cleanup func() error
}

func loadApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, cleanup := config.SetupLogger(cfg.Log.File, level)

	client, err := graph.NewClient(cfg.Endpoint, graph.WithTimeout(cfg.Timeout))
	if err != nil {
		_ = cleanup()
		return nil, err
	}

	m := metrics.New()
	eng := engine.New(client,
		engine.WithAllowedIRIPrefixes(cfg.AllowedIRIPrefixes),
		engine.WithMetrics(m),
		engine.WithLogger(logger),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		metrics: m,
		engine:  eng,
		cleanup: cleanup,
	}, nil
}

func (a *app) Close() {
	_ = a.cleanup()
}
