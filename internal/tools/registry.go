package tools

import (
	"context"
	"fmt"
	"sort"

	"vaults-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Backend is the part of the API client the tool handlers use.
type Backend interface {
	Get(ctx context.Context, path string, query map[string]any, requiresAuth bool) (any, error)
	Post(ctx context.Context, path string, body any, query map[string]any, requiresAuth bool) (any, error)
	Delete(ctx context.Context, path string, query map[string]any, requiresAuth bool) (any, error)
}

// Category groups tools in listings.
type Category string

const (
	CategoryHealth       Category = "health"
	CategoryAdmin        Category = "admin"
	CategoryConversation Category = "conversation"
	CategoryCopilot      Category = "copilot"
	CategorySecurity     Category = "security"
	CategoryExport       Category = "export"
	CategoryMetrics      Category = "metrics"
	CategoryPayment      Category = "payment"
	CategoryOnboarding   Category = "onboarding"
	CategoryGovernance   Category = "governance"
)

// Handler renders the result of one tool call as markdown text.
type Handler func(ctx context.Context, args Args) (string, error)

// Tool is one entry of the catalog.
type Tool struct {
	Definition   mcp.Tool
	Category     Category
	RequiresAuth bool   // the backend route expects the function key
	Failure      string // prefix of the error text, e.g. "Health check failed"
	Handler      Handler
}

// Name returns the invocation name.
func (t Tool) Name() string {
	return t.Definition.Name
}

// Registry maps tool names to handlers. It is built once and read-only afterwards.
type Registry struct {
	backend Backend
	tools   map[string]Tool
	order   []string
}

// NewRegistry builds the full catalog on top of backend.
func NewRegistry(backend Backend) *Registry {
	r := &Registry{
		backend: backend,
		tools:   make(map[string]Tool),
	}

	groups := [][]Tool{
		r.healthTools(),
		r.adminTools(),
		r.conversationTools(),
		r.copilotTools(),
		r.securityTools(),
		r.exportTools(),
		r.metricsTools(),
		r.paymentTools(),
		r.onboardingTools(),
		r.governanceTools(),
	}
	for _, group := range groups {
		for _, tool := range group {
			r.register(tool)
		}
	}

	logging.Debug("Tools", "Registered %d tools", len(r.order))
	return r
}

func (r *Registry) register(tool Tool) {
	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		panic(fmt.Sprintf("tool %q registered twice", name))
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Tools returns every tool in catalog order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// ByCategory returns the tools of one category in catalog order.
func (r *Registry) ByCategory(category Category) []Tool {
	var out []Tool
	for _, name := range r.order {
		if tool := r.tools[name]; tool.Category == category {
			out = append(out, tool)
		}
	}
	return out
}

// Categories returns the categories present in the catalog, sorted.
func (r *Registry) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, tool := range r.tools {
		if !seen[tool.Category] {
			seen[tool.Category] = true
			out = append(out, tool.Category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Definitions returns the MCP tool definitions in catalog order.
func (r *Registry) Definitions() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Definition)
	}
	return out
}

// ServerTools adapts the catalog for server.MCPServer.AddTools.
func (r *Registry) ServerTools() []server.ServerTool {
	out := make([]server.ServerTool, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		out = append(out, server.ServerTool{
			Tool: tool.Definition,
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return r.handle(ctx, tool, req), nil
			},
		})
	}
	return out
}

// Call dispatches a tool by name. Unknown names and handler failures come back as error results.
func (r *Registry) Call(ctx context.Context, name string, arguments map[string]any) *mcp.CallToolResult {
	tool, ok := r.tools[name]
	if !ok {
		logging.Warn("Tools", "Unknown tool requested: %s", name)
		return mcp.NewToolResultError(fmt.Sprintf("Unknown tool: %s", name))
	}

	if arguments == nil {
		arguments = map[string]any{}
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = arguments
	return r.handle(ctx, tool, req)
}

func (r *Registry) handle(ctx context.Context, tool Tool, req mcp.CallToolRequest) (result *mcp.CallToolResult) {
	name := tool.Name()
	logging.Info("Tools", "Calling tool: %s", name)

	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("%v", p)
			logging.Error("Tools", err, "Tool %s panicked", name)
			result = mcp.NewToolResultError(fmt.Sprintf("Error: %v", p))
		}
	}()

	text, err := tool.Handler(ctx, newArgs(req))
	if err != nil {
		logging.Error("Tools", err, "%s", tool.Failure)
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", tool.Failure, err))
	}
	return mcp.NewToolResultText(text)
}

// get issues a GET and expects a JSON object back.
func (r *Registry) get(ctx context.Context, path string, query map[string]any, requiresAuth bool) (object, error) {
	raw, err := r.backend.Get(ctx, path, query, requiresAuth)
	if err != nil {
		return nil, err
	}
	return expectObject(raw)
}

// post issues a POST and expects a JSON object back.
func (r *Registry) post(ctx context.Context, path string, body any, query map[string]any, requiresAuth bool) (object, error) {
	raw, err := r.backend.Post(ctx, path, body, query, requiresAuth)
	if err != nil {
		return nil, err
	}
	return expectObject(raw)
}
