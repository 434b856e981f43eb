package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	interactionLimit = 150
	defaultPeriod    = "D7"
)

func (r *Registry) copilotTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("get_copilot_root",
				mcp.WithDescription("Get the root Copilot API information."),
			),
			Category:     CategoryCopilot,
			RequiresAuth: true,
			Failure:      "Get Copilot root failed",
			Handler:      r.copilotRoot,
		},
		{
			Definition: mcp.NewTool("get_copilot_users",
				mcp.WithDescription("Get Copilot users for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
			),
			Category:     CategoryCopilot,
			RequiresAuth: true,
			Failure:      "Get Copilot users failed",
			Handler:      r.copilotUsers,
		},
		{
			Definition: mcp.NewTool("get_interaction_history",
				mcp.WithDescription("Get Copilot interaction history for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
				mcp.WithNumber("top",
					mcp.Description("Number of interactions to return"),
				),
				mcp.WithString("filter",
					mcp.Description("OData filter expression"),
				),
			),
			Category: CategoryCopilot,
			Failure:  "Get interaction history failed",
			Handler:  r.interactionHistory,
		},
		{
			Definition: mcp.NewTool("copilot_retrieve_content",
				mcp.WithDescription("Retrieve content using Copilot search."),
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("Search query"),
				),
				mcp.WithObject("filters",
					mcp.Description("Search filters"),
				),
			),
			Category: CategoryCopilot,
			Failure:  "Copilot retrieve content failed",
			Handler:  r.retrieveContent,
		},
		{
			Definition: mcp.NewTool("get_copilot_usage_summary",
				mcp.WithDescription("Get tenant-level Copilot usage summary from Microsoft Graph Reports API."),
				mcp.WithString("period",
					mcp.Description("Report period"),
					mcp.DefaultString(defaultPeriod),
				),
			),
			Category:     CategoryCopilot,
			RequiresAuth: true,
			Failure:      "Get Copilot usage summary failed",
			Handler:      r.usageSummary,
		},
		{
			Definition: mcp.NewTool("get_copilot_user_count",
				mcp.WithDescription("Get Copilot user count summary from Microsoft Graph Reports API."),
				mcp.WithString("period",
					mcp.Description("Report period"),
					mcp.DefaultString(defaultPeriod),
				),
			),
			Category:     CategoryCopilot,
			RequiresAuth: true,
			Failure:      "Get Copilot user count failed",
			Handler:      r.userCount,
		},
	}
}

func (r *Registry) securityTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("get_security_alerts",
				mcp.WithDescription("Get security alerts from Microsoft Graph Security API."),
			),
			Category:     CategorySecurity,
			RequiresAuth: true,
			Failure:      "Get security alerts failed",
			Handler:      r.securityAlerts,
		},
		{
			Definition: mcp.NewTool("get_high_risk_users",
				mcp.WithDescription("Get high-risk users from Microsoft Graph Identity Protection API."),
			),
			Category:     CategorySecurity,
			RequiresAuth: true,
			Failure:      "Get high-risk users failed",
			Handler:      r.highRiskUsers,
		},
		{
			Definition: mcp.NewTool("get_policy_violations",
				mcp.WithDescription("Get compliance policy information from Microsoft Graph Compliance API."),
			),
			Category:     CategorySecurity,
			RequiresAuth: true,
			Failure:      "Get policy violations failed",
			Handler:      r.policyViolations,
		},
	}
}

func (r *Registry) copilotRoot(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/copilot", nil, true)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Microsoft 365 Copilot API Root**\n\n")
	fmt.Fprintf(&b, "- **ID:** %s\n", result.str("id", "N/A"))
	fmt.Fprintf(&b, "- **Display Name:** %s\n", result.str("displayName", "N/A"))
	fmt.Fprintf(&b, "- **Description:** %s\n\n", result.str("description", "N/A"))

	b.WriteString("**Available Endpoints:**\n")
	fmt.Fprintf(&b, "- Users: %s\n", result.obj("users").str("href", "N/A"))
	fmt.Fprintf(&b, "- Interaction History: %s\n", result.obj("interactionHistory").str("href", "N/A"))
	fmt.Fprintf(&b, "- Search Function: %s\n", result.obj("searchFunction").str("href", "N/A"))
	return b.String(), nil
}

func (r *Registry) copilotUsers(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}

	result, err := r.get(ctx, "/api/vaults/users", map[string]any{"tenantId": tenantID}, true)
	if err != nil {
		return "", err
	}

	users := result.list("users")
	if len(users) == 0 {
		return fmt.Sprintf("No Copilot users found for tenant: %s", tenantID), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Copilot Users for Tenant: %s**\n\n", tenantID)
	fmt.Fprintf(&b, "**Total Users: %d**\n\n", len(users))
	for i, item := range users {
		user := asObject(item)
		fmt.Fprintf(&b, "**User %d: %s**\n", i+1, user.str("displayName", "Unknown"))
		fmt.Fprintf(&b, "- ID: %s\n", user.str("id", "N/A"))
		fmt.Fprintf(&b, "- Email: %s\n", user.str("email", "N/A"))
		fmt.Fprintf(&b, "- Copilot Enabled: %s\n", yesNo(user.flag("copilotEnabled")))
		fmt.Fprintf(&b, "- Last Activity: %s\n\n", user.str("lastActivity", "Never"))
	}
	return b.String(), nil
}

func (r *Registry) interactionHistory(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}

	query := map[string]any{"tenantId": tenantID}
	if args.Has("top") {
		top, err := args.Int("top", 0)
		if err != nil {
			return "", err
		}
		query["$top"] = top
	}
	if args.Has("filter") {
		query["$filter"] = args.String("filter", "")
	}

	result, err := r.get(ctx, "/api/vaults/interactionHistory", query, false)
	if err != nil {
		return "", err
	}

	interactions := result.list("value")
	if len(interactions) == 0 {
		return fmt.Sprintf("No interaction history found for tenant: %s", tenantID), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Copilot Interaction History for Tenant: %s**\n\n", tenantID)
	fmt.Fprintf(&b, "**Showing %d interactions**\n\n", len(interactions))
	for i, item := range interactions {
		interaction := asObject(item)
		fmt.Fprintf(&b, "**Interaction %d**\n", i+1)
		fmt.Fprintf(&b, "- ID: %s\n", interaction.str("id", "N/A"))
		fmt.Fprintf(&b, "- User ID: %s\n", interaction.str("userId", "N/A"))
		fmt.Fprintf(&b, "- Session ID: %s\n", interaction.str("sessionId", "N/A"))
		fmt.Fprintf(&b, "- Created: %s\n", interaction.str("createdDateTime", "Unknown"))
		if interaction.flag("userPrompt") {
			fmt.Fprintf(&b, "- User Prompt: %s\n", truncate(interaction.str("userPrompt", ""), interactionLimit))
		}
		if interaction.flag("aiResponse") {
			fmt.Fprintf(&b, "- AI Response: %s\n", truncate(interaction.str("aiResponse", ""), interactionLimit))
		}
		b.WriteString("\n")
	}

	if result.flag("@odata.nextLink") {
		fmt.Fprintf(&b, "**More Results Available:** %s\n", result.str("@odata.nextLink", ""))
	}
	return b.String(), nil
}

func (r *Registry) retrieveContent(ctx context.Context, args Args) (string, error) {
	query, err := args.RequireString("query")
	if err != nil {
		return "", err
	}
	filters, err := args.Object("filters")
	if err != nil {
		return "", err
	}
	if filters == nil {
		filters = map[string]any{}
	}

	body := map[string]any{
		"query":   query,
		"filters": filters,
	}
	result, err := r.post(ctx, "/api/vaults/retrieve", body, nil, false)
	if err != nil {
		return "", err
	}

	results := result.list("results")
	if len(results) == 0 {
		return fmt.Sprintf("No content found for query: '%s'", query), nil
	}

	var b strings.Builder
	b.WriteString("**Copilot Content Retrieval Results**\n\n")
	fmt.Fprintf(&b, "**Query:** %s\n", query)
	if len(filters) > 0 {
		f := object(filters)
		descriptions := make([]string, 0, len(f))
		for _, key := range f.keys() {
			descriptions = append(descriptions, fmt.Sprintf("%s: %s", key, render(f[key])))
		}
		fmt.Fprintf(&b, "**Filters:** %s\n", strings.Join(descriptions, ", "))
	}
	fmt.Fprintf(&b, "**Results Found:** %d\n\n", len(results))

	for i, item := range results {
		content := asObject(item)
		fmt.Fprintf(&b, "**Result %d: %s**\n", i+1, content.str("title", "Untitled"))
		fmt.Fprintf(&b, "- ID: %s\n", content.str("id", "N/A"))
		fmt.Fprintf(&b, "- URL: %s\n", content.str("url", "N/A"))
		fmt.Fprintf(&b, "- Last Modified: %s\n", content.str("lastModified", "Unknown"))
		if content.flag("content") {
			fmt.Fprintf(&b, "- Content: %s\n", truncate(content.str("content", ""), previewLimit))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// firstReport returns the first entry of a Graph reports "value" array.
func firstReport(result object) (object, bool) {
	reports := result.list("value")
	if len(reports) == 0 {
		return nil, false
	}
	return asObject(reports[0]), true
}

func (r *Registry) usageSummary(ctx context.Context, args Args) (string, error) {
	period := args.String("period", defaultPeriod)

	result, err := r.get(ctx, "/api/vaults/usage/summary", map[string]any{"period": period}, true)
	if err != nil {
		return "", err
	}
	summary, ok := firstReport(result)
	if !ok {
		return fmt.Sprintf("No usage summary data available for period: %s", period), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Copilot Usage Summary (Period: %s)**\n\n", period)
	writeReportHeader(&b, summary, period)
	b.WriteString("**Usage Metrics:**\n")
	fmt.Fprintf(&b, "- **Copilot Enabled Users:** %s\n", summary.num("copilotEnabledUsers"))
	fmt.Fprintf(&b, "- **Copilot Active Users:** %s\n", summary.num("copilotActiveUsers"))
	fmt.Fprintf(&b, "- **Utilization Rate:** %s%%\n", summary.num("utilizationRate"))
	return b.String(), nil
}

func (r *Registry) userCount(ctx context.Context, args Args) (string, error) {
	period := args.String("period", defaultPeriod)

	result, err := r.get(ctx, "/api/vaults/users/count", map[string]any{"period": period}, true)
	if err != nil {
		return "", err
	}
	counts, ok := firstReport(result)
	if !ok {
		return fmt.Sprintf("No user count data available for period: %s", period), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Copilot User Count Summary (Period: %s)**\n\n", period)
	writeReportHeader(&b, counts, period)
	b.WriteString("**User Counts:**\n")
	fmt.Fprintf(&b, "- **Total Users:** %s\n", counts.num("totalUsers"))
	fmt.Fprintf(&b, "- **Enabled Users:** %s\n", counts.num("enabledUsers"))
	fmt.Fprintf(&b, "- **Active Users:** %s\n", counts.num("activeUsers"))
	return b.String(), nil
}

func writeReportHeader(b *strings.Builder, report object, period string) {
	fmt.Fprintf(b, "- **Report Date:** %s\n", report.str("reportDate", "Unknown"))
	fmt.Fprintf(b, "- **Report Refresh Date:** %s\n", report.str("reportRefreshDate", "Unknown"))
	fmt.Fprintf(b, "- **Report Period:** %s\n\n", report.str("reportPeriod", period))
}

func (r *Registry) securityAlerts(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/v1/copilot/security/alerts", nil, true)
	if err != nil {
		return "", err
	}

	alerts := result.list("value")
	if len(alerts) == 0 {
		return "No security alerts found.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Security Alerts (%d alerts)**\n\n", len(alerts))
	for i, item := range alerts {
		alert := asObject(item)
		fmt.Fprintf(&b, "**Alert %d: %s**\n", i+1, alert.str("displayName", "Unnamed Alert"))
		fmt.Fprintf(&b, "- **ID:** %s\n", alert.str("id", "N/A"))
		fmt.Fprintf(&b, "- **Category:** %s\n", alert.str("category", "Unknown"))
		fmt.Fprintf(&b, "- **Severity:** %s\n", strings.ToUpper(alert.str("severity", "Unknown")))
		fmt.Fprintf(&b, "- **Status:** %s\n", alert.str("status", "Unknown"))
		fmt.Fprintf(&b, "- **Created:** %s\n", alert.str("createdDateTime", "Unknown"))
		fmt.Fprintf(&b, "- **Assigned To:** %s\n\n", alert.str("assignedTo", "Unassigned"))
	}
	return b.String(), nil
}

func (r *Registry) highRiskUsers(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/v1/copilot/security/risky-users", nil, true)
	if err != nil {
		return "", err
	}

	users := result.list("value")
	if len(users) == 0 {
		return "No high-risk users found.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**High-Risk Users (%d users)**\n\n", len(users))
	for i, item := range users {
		user := asObject(item)
		fmt.Fprintf(&b, "**User %d: %s**\n", i+1, user.str("userDisplayName", "Unknown"))
		fmt.Fprintf(&b, "- **ID:** %s\n", user.str("id", "N/A"))
		fmt.Fprintf(&b, "- **UPN:** %s\n", user.str("userPrincipalName", "N/A"))
		fmt.Fprintf(&b, "- **Risk Level:** %s\n", strings.ToUpper(user.str("riskLevel", "Unknown")))
		fmt.Fprintf(&b, "- **Risk State:** %s\n", user.str("riskState", "Unknown"))
		fmt.Fprintf(&b, "- **Risk Detail:** %s\n", user.str("riskDetail", "Unknown"))
		fmt.Fprintf(&b, "- **Last Updated:** %s\n\n", user.str("riskLastUpdatedDateTime", "Unknown"))
	}
	return b.String(), nil
}

func (r *Registry) policyViolations(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/v1/copilot/compliance/violations", nil, true)
	if err != nil {
		return "", err
	}

	violations := result.list("value")
	if len(violations) == 0 {
		return "No policy violations found.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Policy Violations (%d violations)**\n\n", len(violations))
	for i, item := range violations {
		violation := asObject(item)
		fmt.Fprintf(&b, "**Violation %d: %s**\n", i+1, violation.str("displayName", "Unknown Violation"))
		fmt.Fprintf(&b, "- **ID:** %s\n", violation.str("id", "N/A"))
		fmt.Fprintf(&b, "- **Partner Tenant ID:** %s\n", violation.str("partnerTenantId", "N/A"))
		fmt.Fprintf(&b, "- **Partner State:** %s\n", violation.str("partnerState", "Unknown"))
		fmt.Fprintf(&b, "- **Last Heartbeat:** %s\n\n", violation.str("lastHeartbeatDateTime", "Unknown"))
	}
	return b.String(), nil
}
