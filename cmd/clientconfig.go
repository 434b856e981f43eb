package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"vaults-mcp/internal/config"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// For mocking in tests
var clipboardWriteAll = clipboard.WriteAll
var osExecutable = os.Executable

const functionKeyPlaceholder = "<your-function-key>"

type mcpClientServer struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

type mcpClientConfig struct {
	MCPServers map[string]mcpClientServer `json:"mcpServers"`
}

func newClientConfigCmd() *cobra.Command {
	var (
		baseURL string
		copyOut bool
	)

	cmd := &cobra.Command{
		Use:   "client-config",
		Short: "Print the MCP client configuration for vaults-mcp",
		Long: `Prints the JSON snippet MCP clients (e.g. Claude Desktop) use to launch
vaults-mcp over stdio. Replace the function key placeholder before use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := osExecutable()
			if err != nil {
				command = "vaults-mcp"
			}

			data, err := buildClientConfig(command, baseURL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			if copyOut {
				if err := clipboardWriteAll(string(data)); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", config.DefaultBaseURL, "Backend base URL to put in the snippet")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the snippet to the clipboard")
	return cmd
}

func buildClientConfig(command, baseURL string) ([]byte, error) {
	cfg := mcpClientConfig{
		MCPServers: map[string]mcpClientServer{
			"vaults": {
				Command: command,
				Args:    []string{"serve"},
				Env: map[string]string{
					config.EnvPrefix + "BASE_URL":     baseURL,
					config.EnvPrefix + "FUNCTION_KEY": functionKeyPlaceholder,
				},
			},
		},
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode client config: %w", err)
	}
	return data, nil
}
