package mcp

import (
	"context"
	"log/slog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/YutaGoto/imasparql-mcp-server/internal/engine"
)

type Server struct {
	engine engine.Querier
	logger *slog.Logger
	mcp    *sdk.Server
}

func NewServer(q engine.Querier, logger *slog.Logger, version string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine: q,
		logger: logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "imasparql",
			Version: version,
		}, nil),
	}
	s.mcp.AddReceivingMiddleware(LoggingMiddleware(logger))
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
