package cmd

import (
	"context"
	"fmt"

	"vaults-mcp/internal/app"

	"github.com/spf13/cobra"
)

type serveOptions struct {
	transport  string
	host       string
	port       int
	configPath string
	debug      bool
}

// newServeCmd defines the serve command, the entry point MCP clients launch.
func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the vaults-mcp MCP server",
		Long: `Starts the MCP server and exposes every Vaults tool to the connected client.

Transports:

1. stdio (default):
   - MCP frames are exchanged over stdin and stdout, logs go to stderr.
   - This is what desktop MCP clients expect when they launch the binary.

2. sse (--transport sse):
   - Serves MCP over HTTP Server-Sent Events on --host and --port.
   - Clients connect to http://<host>:<port>/sse.

Configuration:
  vaults-mcp loads ~/.config/vaults-mcp/config.yaml, then ./.vaults-mcp/config.yaml,
  then .env and VAULTS_* environment variables. --config replaces both YAML files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", "", "Transport to serve on: stdio or sse (default from configuration)")
	cmd.Flags().StringVar(&opts.host, "host", "", "SSE bind host (default from configuration)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "SSE bind port (default from configuration)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a configuration file")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg := app.NewConfig(opts.debug, opts.configPath)
	cfg.Transport = opts.transport
	cfg.Host = opts.host
	cfg.Port = opts.port

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}
