package cli

import (
	"bytes"
	"strings"
	"testing"

	"vaults-mcp/internal/tools"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
)

func TestRenderToolTable(t *testing.T) {
	list := []tools.Tool{
		{
			Definition: mcp.NewTool("health_check", mcp.WithDescription("Check the health status of the Vaults system.")),
			Category:   tools.CategoryHealth,
		},
		{
			Definition:   mcp.NewTool("get_admin_stats", mcp.WithDescription(strings.Repeat("long ", 30))),
			Category:     tools.CategoryAdmin,
			RequiresAuth: true,
		},
	}

	var buf bytes.Buffer
	RenderToolTable(&buf, list)
	out := buf.String()

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "DESCRIPTION")
	assert.Contains(t, out, "health_check")
	assert.Contains(t, out, "Check the health status of the Vaults system.")
	assert.Contains(t, out, "key")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "2 tools")
}

func TestRenderToolTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderToolTable(&buf, nil)
	assert.Contains(t, buf.String(), "No tools found")
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "first", firstLine("  first\nsecond"))
	assert.Equal(t, "", firstLine(""))
}
