package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/YutaGoto/imasparql-mcp-server/internal/rpc"
)

const shutdownTimeout = 10 * time.Second

func serveHTTPCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-http",
		Short: "Start the JSON-RPC HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServeHTTP(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides http.addr")
	return cmd
}

func runServeHTTP(addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if addr == "" {
		addr = a.cfg.HTTP.Addr
	}
	server := rpc.NewServer(a.engine, a.metrics, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
