package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format for CLI commands
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	case "":
		return OutputFormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", s)
	}
}

// ExecutorOptions contains options for tool execution
type ExecutorOptions struct {
	Format OutputFormat
	Quiet  bool
}

// ToolExecutor runs a tool through a Caller and prints the result.
type ToolExecutor struct {
	caller  Caller
	options ExecutorOptions
	out     io.Writer
	errOut  io.Writer
}

// NewToolExecutor creates a new tool executor writing to stdout and stderr.
func NewToolExecutor(caller Caller, options ExecutorOptions) *ToolExecutor {
	if options.Format == "" {
		options.Format = OutputFormatText
	}
	return &ToolExecutor{
		caller:  caller,
		options: options,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// SetOutput redirects the executor output.
func (e *ToolExecutor) SetOutput(out, errOut io.Writer) {
	e.out = out
	e.errOut = errOut
}

// Execute runs a tool. An error result is printed to stderr and returned as an error.
func (e *ToolExecutor) Execute(ctx context.Context, toolName string, arguments map[string]any) error {
	result, err := e.caller.CallTool(ctx, toolName, arguments)
	if err != nil {
		return fmt.Errorf("failed to execute tool %s: %w", toolName, err)
	}

	if result.IsError {
		return e.formatError(result)
	}
	return e.formatOutput(result)
}

// ParseArguments decodes the --args flag. An empty string yields no arguments.
func ParseArguments(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func resultText(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			parts = append(parts, textContent.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func (e *ToolExecutor) formatError(result *mcp.CallToolResult) error {
	errorMsg := resultText(result)
	fmt.Fprintf(e.errOut, "Error: %s\n", errorMsg)
	return fmt.Errorf("%s", errorMsg)
}

func (e *ToolExecutor) formatOutput(result *mcp.CallToolResult) error {
	if len(result.Content) == 0 {
		if !e.options.Quiet {
			fmt.Fprintln(e.out, "No results")
		}
		return nil
	}

	switch e.options.Format {
	case OutputFormatText:
		fmt.Fprintln(e.out, resultText(result))
		return nil
	case OutputFormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Fprintln(e.out, string(data))
		return nil
	case OutputFormatYAML:
		return e.outputYAML(result)
	default:
		return fmt.Errorf("unsupported output format: %s", e.options.Format)
	}
}

// outputYAML goes through JSON so the MCP field names are kept.
func (e *ToolExecutor) outputYAML(result *mcp.CallToolResult) error {
	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	var data any
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	fmt.Fprint(e.out, string(yamlData))
	return nil
}
