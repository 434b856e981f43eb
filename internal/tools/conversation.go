package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const previewLimit = 200

func (r *Registry) conversationTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("get_conversation",
				mcp.WithDescription("Get a specific conversation by ID."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
				mcp.WithString("conversation_id",
					mcp.Required(),
					mcp.Description("Conversation ID"),
				),
			),
			Category: CategoryConversation,
			Failure:  "Get conversation failed",
			Handler:  r.getConversation,
		},
		{
			Definition: mcp.NewTool("search_conversations",
				mcp.WithDescription("Search conversations with various filters."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
				mcp.WithString("type", mcp.Description("Conversation type filter")),
				mcp.WithString("user", mcp.Description("User filter")),
				mcp.WithString("start_date", mcp.Description("Start date (YYYY-MM-DD)")),
				mcp.WithString("end_date", mcp.Description("End date (YYYY-MM-DD)")),
				mcp.WithString("keyword", mcp.Description("Keyword search")),
				mcp.WithNumber("page",
					mcp.Description("Page number"),
					mcp.DefaultNumber(1),
				),
				mcp.WithNumber("page_size",
					mcp.Description("Page size"),
					mcp.DefaultNumber(10),
				),
			),
			Category: CategoryConversation,
			Failure:  "Search conversations failed",
			Handler:  r.searchConversations,
		},
		{
			Definition: mcp.NewTool("process_ingestion",
				mcp.WithDescription("Process data ingestion for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Description("Tenant ID"),
					mcp.DefaultString(defaultTenant),
				),
			),
			Category: CategoryConversation,
			Failure:  "Process ingestion failed",
			Handler:  r.processIngestion,
		},
	}
}

func (r *Registry) getConversation(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}
	conversationID, err := args.RequireString("conversation_id")
	if err != nil {
		return "", err
	}

	query := map[string]any{
		"tenantId":       tenantID,
		"conversationId": conversationID,
	}
	result, err := r.get(ctx, "/api/conversations", query, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Conversation Details**\n\n")
	fmt.Fprintf(&b, "- **ID:** %s\n", result.str("id", "N/A"))
	fmt.Fprintf(&b, "- **Tenant ID:** %s\n", result.str("tenantId", "N/A"))
	fmt.Fprintf(&b, "- **User ID:** %s\n", result.str("userId", "N/A"))
	fmt.Fprintf(&b, "- **Title:** %s\n", result.str("title", "Untitled"))
	fmt.Fprintf(&b, "- **Last Activity:** %s\n\n", result.str("lastActivity", "Unknown"))

	if result.flag("content") {
		fmt.Fprintf(&b, "**Content:**\n```\n%s\n```", result.str("content", ""))
	} else {
		b.WriteString("**Content:** No content available")
	}
	return b.String(), nil
}

// searchFilters maps optional argument names to their query parameter.
var searchFilters = []struct {
	arg, param, label string
}{
	{"type", "type", "Type"},
	{"user", "user", "User"},
	{"keyword", "keyword", "Keyword"},
	{"start_date", "startDate", "From"},
	{"end_date", "endDate", "To"},
}

func (r *Registry) searchConversations(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}
	page, err := args.Int("page", 1)
	if err != nil {
		return "", err
	}
	pageSize, err := args.Int("page_size", 10)
	if err != nil {
		return "", err
	}

	query := map[string]any{
		"tenantId": tenantID,
		"page":     page,
		"pageSize": pageSize,
	}
	var criteria []string
	for _, f := range searchFilters {
		if args.Has(f.arg) {
			value := args.String(f.arg, "")
			query[f.param] = value
			criteria = append(criteria, fmt.Sprintf("%s: %s", f.label, value))
		}
	}

	result, err := r.get(ctx, "/api/searchfunction", query, false)
	if err != nil {
		return "", err
	}

	results := result.list("results")
	if len(results) == 0 {
		return fmt.Sprintf("No conversations found for tenant: %s with the specified criteria.", tenantID), nil
	}

	currentPage := result.int("page")
	if !result.has("page") {
		currentPage = 1
	}
	totalPages := result.int("totalPages")

	var b strings.Builder
	fmt.Fprintf(&b, "**Search Results for Tenant: %s**\n\n", tenantID)
	fmt.Fprintf(&b, "**Page %s of %s (Total: %s conversations)**\n\n",
		result.str("page", "1"), result.num("totalPages"), result.num("totalCount"))
	if len(criteria) > 0 {
		fmt.Fprintf(&b, "**Search Criteria:** %s\n\n", strings.Join(criteria, ", "))
	}

	for i, item := range results {
		conversation := asObject(item)
		fmt.Fprintf(&b, "**Result %d: %s**\n", i+1, conversation.str("title", "Untitled"))
		fmt.Fprintf(&b, "- ID: %s\n", conversation.str("id", "N/A"))
		fmt.Fprintf(&b, "- Tenant ID: %s\n", conversation.str("tenantId", "N/A"))
		fmt.Fprintf(&b, "- Last Activity: %s\n", conversation.str("lastActivity", "Unknown"))
		if conversation.flag("preview") {
			fmt.Fprintf(&b, "- Preview: %s\n", truncate(conversation.str("preview", ""), previewLimit))
		}
		b.WriteString("\n")
	}

	if totalPages > 1 {
		fmt.Fprintf(&b, "**Pagination:** Showing page %d of %d. ", currentPage, totalPages)
		if currentPage < totalPages {
			fmt.Fprintf(&b, "Use page=%d to see more results.", currentPage+1)
		}
	}
	return b.String(), nil
}

func (r *Registry) processIngestion(ctx context.Context, args Args) (string, error) {
	tenantID := args.String("tenant_id", defaultTenant)

	result, err := r.get(ctx, "/api/ingestion", map[string]any{"tenantId": tenantID}, false)
	if err != nil {
		return "", err
	}

	status := "Failed"
	if result.flag("Success") {
		status = "Success"
	}

	var b strings.Builder
	b.WriteString("**Ingestion Process Results**\n\n")
	fmt.Fprintf(&b, "- **Status:** %s\n", status)
	fmt.Fprintf(&b, "- **Tenant ID:** %s\n", result.str("TenantId", tenantID))
	fmt.Fprintf(&b, "- **Users Processed:** %s\n", result.num("UsersProcessed"))
	fmt.Fprintf(&b, "- **Interactions Processed:** %s\n", result.num("InteractionsProcessed"))
	fmt.Fprintf(&b, "- **Last Sync Time:** %s\n", result.str("LastSyncTime", "Unknown"))
	fmt.Fprintf(&b, "- **Processed At:** %s\n", result.str("ProcessedAt", "Unknown"))
	writeLastFailure(&b, "- **Last Failure:** %s\n", result)
	return b.String(), nil
}
