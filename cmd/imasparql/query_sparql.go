package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YutaGoto/imasparql-mcp-server/internal/graph"
)

func querySparqlCmd() *cobra.Command {
	var accept string
	cmd := &cobra.Command{
		Use:   "sparql <query>",
		Short: "Execute a raw SPARQL query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSparql(strings.Join(args, " "), accept)
		},
	}
	cmd.Flags().StringVar(&accept, "accept", graph.AcceptJSON, "Accept header sent to the endpoint")
	return cmd
}

func runSparql(query, accept string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.client.Execute(context.Background(), query, accept)
	if err != nil {
		return err
	}
	if resp.Text != "" {
		fmt.Fprintln(os.Stdout, resp.Text)
		return nil
	}
	return printJSON(resp)
}
