package cmd

import (
	"fmt"
	"strings"

	"vaults-mcp/internal/cli"
	"vaults-mcp/internal/color"
	"vaults-mcp/internal/tools"

	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools exposed by vaults-mcp",
		Long: `Prints the tool catalog as a table. Tools marked "key" call backend routes
that require the function key (VAULTS_FUNCTION_KEY).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			color.InitializeFromEnv()

			// Listing never reaches the backend
			registry := tools.NewRegistry(nil)

			list := registry.Tools()
			if category != "" {
				c, err := parseCategory(registry, category)
				if err != nil {
					return err
				}
				list = registry.ByCategory(c)
			}

			cli.RenderToolTable(cmd.OutOrStdout(), list)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list tools of this category")
	return cmd
}

func parseCategory(registry *tools.Registry, name string) (tools.Category, error) {
	want := tools.Category(strings.ToLower(strings.TrimSpace(name)))
	var known []string
	for _, c := range registry.Categories() {
		if c == want {
			return c, nil
		}
		known = append(known, string(c))
	}
	return "", fmt.Errorf("unknown category %q (available: %s)", name, strings.Join(known, ", "))
}
