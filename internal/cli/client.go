package cli

import (
	"context"
	"fmt"
	"time"

	"vaults-mcp/internal/tools"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultTimeout = 30 * time.Second

// Caller runs one tool and returns its result.
type Caller interface {
	CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
}

// LocalCaller runs tools in process through the registry.
type LocalCaller struct {
	registry *tools.Registry
}

func NewLocalCaller(registry *tools.Registry) *LocalCaller {
	return &LocalCaller{registry: registry}
}

// CallTool never fails; tool failures come back as error results.
func (c *LocalCaller) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	return c.registry.Call(ctx, name, args), nil
}

// RemoteClient calls tools on a vaults-mcp server already running with the SSE transport.
type RemoteClient struct {
	endpoint string
	client   *client.Client
	timeout  time.Duration
}

// NewRemoteClient creates a client for the SSE endpoint, e.g. http://localhost:8080/sse.
func NewRemoteClient(endpoint string) *RemoteClient {
	return &RemoteClient{
		endpoint: endpoint,
		timeout:  defaultTimeout,
	}
}

// Connect opens the SSE stream and performs the MCP handshake.
func (c *RemoteClient) Connect(ctx context.Context) error {
	sseClient, err := client.NewSSEMCPClient(c.endpoint)
	if err != nil {
		return fmt.Errorf("failed to create sse client: %w", err)
	}

	if err := sseClient.Start(ctx); err != nil {
		return fmt.Errorf("failed to start sse client: %w", err)
	}
	c.client = sseClient

	if err := c.initialize(ctx); err != nil {
		c.Close()
		return fmt.Errorf("initialization failed: %w", err)
	}
	return nil
}

// CallTool executes a tool on the remote server.
func (c *RemoteClient) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.CallTool(timeoutCtx, req)
	if err != nil {
		return nil, fmt.Errorf("tool call failed: %w", err)
	}
	return result, nil
}

// ListTools returns the remote catalog.
func (c *RemoteClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	if c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.ListTools(timeoutCtx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing tools failed: %w", err)
	}
	return result.Tools, nil
}

// Close closes the connection
func (c *RemoteClient) Close() error {
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
	return nil
}

func (c *RemoteClient) initialize(ctx context.Context) error {
	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{
		Name:    "vaults-mcp-cli",
		Version: "1.0.0",
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.client.Initialize(timeoutCtx, req)
	return err
}
