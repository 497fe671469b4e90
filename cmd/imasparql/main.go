package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/YutaGoto/imasparql-mcp-server/internal/config"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "imasparql",
		Short:         "Query the im@sparql dataset over MCP, HTTP or the command line",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		},
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the config file")
	root.AddCommand(serveCmd())
	root.AddCommand(serveHTTPCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
