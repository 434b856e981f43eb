package cmd

import (
	"context"
	"fmt"

	"vaults-mcp/internal/app"
	"vaults-mcp/internal/cli"

	"github.com/spf13/cobra"
)

type callOptions struct {
	args       string
	output     string
	server     string
	configPath string
	debug      bool
}

func newCallCmd() *cobra.Command {
	opts := &callOptions{}

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Run a single tool and print its result",
		Long: `Runs one tool and prints the markdown it returns. The command exits non-zero
when the tool reports an error.

By default the tool runs in process against the configured backend. With --server
the call is sent to a vaults-mcp instance already serving SSE.

Examples:
  vaults-mcp call health_check
  vaults-mcp call get_tenant_overview --args '{"tenant_id": "contoso"}'
  vaults-mcp call health_check --server http://localhost:8080/sse --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.args, "args", "", "Tool arguments as a JSON object")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&opts.server, "server", "", "SSE endpoint of a running vaults-mcp server")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a configuration file")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

func runCall(cmd *cobra.Command, toolName string, opts *callOptions) error {
	arguments, err := cli.ParseArguments(opts.args)
	if err != nil {
		return err
	}
	format, err := cli.ParseOutputFormat(opts.output)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var caller cli.Caller
	if opts.server != "" {
		remote := cli.NewRemoteClient(opts.server)
		if err := remote.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to %s: %w", opts.server, err)
		}
		defer remote.Close()
		caller = remote
	} else {
		application, err := app.NewApplication(app.NewConfig(opts.debug, opts.configPath))
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer application.Close()
		caller = cli.NewLocalCaller(application.Registry())
	}

	executor := cli.NewToolExecutor(caller, cli.ExecutorOptions{Format: format})
	executor.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return executor.Execute(ctx, toolName, arguments)
}
