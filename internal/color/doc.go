// Package color holds the terminal palette used by the vaults-mcp CLI.
//
// Colors are lipgloss adaptive colors, so every style has a light and a dark
// variant and lipgloss downsamples them to what the terminal supports. With
// NO_COLOR set or output redirected to a file, styles render as plain text.
//
// # Theme Selection
//
// The background is detected automatically. Initialize forces a theme and
// InitializeFromEnv reads VAULTS_THEME (dark or light).
//
// # Usage Example
//
//	fmt.Println(color.HeaderStyle.Render("Tools"))
//	fmt.Println(color.ErrorStyle.Render("✗ call failed"))
//
// Only the CLI uses this package. The MCP server never styles its output
// because tool results are consumed by other programs.
package color
