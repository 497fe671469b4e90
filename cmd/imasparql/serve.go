package main

import (
	"context"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/YutaGoto/imasparql-mcp-server/internal/mcp"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting mcp server", "transport", "stdio", "endpoint", a.client.Endpoint(), "version", version)
	server := mcp.NewServer(a.engine, a.logger, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
