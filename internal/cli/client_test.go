package cli

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemoteClient(t *testing.T) {
	endpoint := "http://localhost:8080/sse"
	client := NewRemoteClient(endpoint)

	assert.Equal(t, endpoint, client.endpoint)
	assert.Equal(t, 30*time.Second, client.timeout)
}

func TestRemoteClient_NotConnected(t *testing.T) {
	client := NewRemoteClient("http://localhost:8080/sse")

	_, err := client.CallTool(context.Background(), "health_check", nil)
	assert.EqualError(t, err, "client not connected")

	_, err = client.ListTools(context.Background())
	assert.EqualError(t, err, "client not connected")

	assert.NotPanics(t, func() {
		_ = client.Close()
	})
}

func TestRemoteClient_Connect_InvalidEndpoint(t *testing.T) {
	client := NewRemoteClient("invalid-endpoint")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := client.Connect(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestRemoteClient_CallsSSEServer(t *testing.T) {
	s := mcpserver.NewMCPServer("vaults-mcp", "1.0.0", mcpserver.WithToolCapabilities(true))
	s.AddTool(
		mcp.NewTool("echo", mcp.WithString("message")),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("echo: " + req.GetString("message", "")), nil
		},
	)
	ts := mcpserver.NewTestServer(s)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := NewRemoteClient(ts.URL + "/sse")
	require.NoError(t, client.Connect(ctx))
	defer client.Close()

	list, err := client.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "echo", list[0].Name)

	result, err := client.CallTool(ctx, "echo", map[string]any{"message": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", resultText(result))
}
