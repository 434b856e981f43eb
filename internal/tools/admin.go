package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultTenant   = "default-tenant"
	maxTenantUsers  = 200
	defaultUserPage = 50
)

func (r *Registry) adminTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("get_admin_stats",
				mcp.WithDescription("Get administrative statistics for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Description("Tenant ID"),
					mcp.DefaultString(defaultTenant),
				),
			),
			Category: CategoryAdmin,
			Failure:  "Get admin stats failed",
			Handler:  r.adminStats,
		},
		{
			Definition: mcp.NewTool("get_audit_policies",
				mcp.WithDescription("Get audit policies for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
			),
			Category: CategoryAdmin,
			Failure:  "Get audit policies failed",
			Handler:  r.auditPolicies,
		},
		{
			Definition: mcp.NewTool("list_tenant_users",
				mcp.WithDescription("List users in a tenant."),
				mcp.WithString("filter",
					mcp.Description("Filter string"),
				),
				mcp.WithNumber("top",
					mcp.Description("Number of users to return"),
					mcp.DefaultNumber(defaultUserPage),
					mcp.Max(maxTenantUsers),
				),
				mcp.WithString("user_type",
					mcp.Description("User type filter"),
				),
			),
			Category:     CategoryAdmin,
			RequiresAuth: true,
			Failure:      "List tenant users failed",
			Handler:      r.listTenantUsers,
		},
		{
			Definition: mcp.NewTool("update_audit_policies",
				mcp.WithDescription("Update audit policies for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
				mcp.WithArray("policies",
					mcp.Required(),
					mcp.Description("List of policies to update"),
					mcp.Items(map[string]any{"type": "object", "additionalProperties": true}),
				),
			),
			Category: CategoryAdmin,
			Failure:  "Update audit policies failed",
			Handler:  r.updateAuditPolicies,
		},
		{
			Definition: mcp.NewTool("delete_audit_policy",
				mcp.WithDescription("Delete a specific audit policy."),
				mcp.WithString("policy_id",
					mcp.Required(),
					mcp.Description("Policy ID to delete"),
				),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
			),
			Category: CategoryAdmin,
			Failure:  "Delete audit policy failed",
			Handler:  r.deleteAuditPolicy,
		},
		{
			Definition: mcp.NewTool("get_user_invitation_status",
				mcp.WithDescription("Get invitation status for a specific user."),
				mcp.WithString("user_id",
					mcp.Required(),
					mcp.Description("User ID"),
				),
			),
			Category:     CategoryAdmin,
			RequiresAuth: true,
			Failure:      "Get user invitation status failed",
			Handler:      r.userInvitationStatus,
		},
	}
}

func (r *Registry) adminStats(ctx context.Context, args Args) (string, error) {
	tenantID := args.String("tenant_id", defaultTenant)

	result, err := r.get(ctx, "/api/stats/adminstats", map[string]any{"tenantId": tenantID}, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Administrative Statistics for Tenant: %s**\n\n", result.str("TenantId", tenantID))

	b.WriteString("**User Statistics:**\n")
	fmt.Fprintf(&b, "- Total Users: %s\n", result.num("TotalUsers"))
	fmt.Fprintf(&b, "- Active Users: %s\n\n", result.num("ActiveUsers"))

	b.WriteString("**Policy Statistics:**\n")
	fmt.Fprintf(&b, "- Total Policies: %s\n", result.num("TotalPolicies"))
	fmt.Fprintf(&b, "- Active Policies: %s\n", result.num("ActivePolicies"))
	fmt.Fprintf(&b, "- High Risk Policies: %s\n\n", result.num("HighRiskPolicies"))

	b.WriteString("**Interaction Statistics:**\n")
	fmt.Fprintf(&b, "- Total Interactions: %s\n", result.num("TotalInteractions"))
	fmt.Fprintf(&b, "- Interactions with PII: %s\n", result.num("InteractionsWithPii"))
	fmt.Fprintf(&b, "- Policy Violations: %s\n\n", result.num("PolicyViolations"))

	b.WriteString("**System Information:**\n")
	fmt.Fprintf(&b, "- Last Sync Time: %s\n", result.str("LastSyncTime", "Unknown"))
	fmt.Fprintf(&b, "- Processed At: %s\n", result.str("ProcessedAt", "Unknown"))
	writeLastFailure(&b, "- Last Failure: %s\n", result)

	return b.String(), nil
}

// writeLastFailure prints LastFailureMessage, or None when the field is empty.
func writeLastFailure(b *strings.Builder, format string, result object) {
	failure := "None"
	if result.flag("LastFailureMessage") {
		failure = result.str("LastFailureMessage", "None")
	}
	fmt.Fprintf(b, format, failure)
}

func (r *Registry) auditPolicies(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}

	result, err := r.get(ctx, "/api/policies", map[string]any{"tenantId": tenantID}, false)
	if err != nil {
		return "", err
	}

	policies := result.list("policies")
	if len(policies) == 0 {
		return fmt.Sprintf("No audit policies found for tenant: %s", tenantID), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Audit Policies for Tenant: %s**\n\n", tenantID)
	fmt.Fprintf(&b, "**Total Policies: %d**\n\n", len(policies))

	for i, item := range policies {
		policy := asObject(item)
		fmt.Fprintf(&b, "**Policy %d: %s**\n", i+1, policy.str("name", "Unnamed"))
		fmt.Fprintf(&b, "- ID: %s\n", policy.str("id", "N/A"))
		fmt.Fprintf(&b, "- Description: %s\n", policy.str("description", "No description"))
		fmt.Fprintf(&b, "- Risk Level: %s\n", policy.str("riskLevel", "Unknown"))
		fmt.Fprintf(&b, "- Action: %s\n", policy.str("action", "Unknown"))
		fmt.Fprintf(&b, "- Sensitivity: %s/10\n", policy.num("sensitivity"))
		fmt.Fprintf(&b, "- Enabled: %s\n", yesNo(policy.flag("isEnabled")))
		fmt.Fprintf(&b, "- Trigger Count: %s\n", policy.num("triggerCount"))
		if rules := policy.list("detectionRules"); len(rules) > 0 {
			fmt.Fprintf(&b, "- Detection Rules: %s\n", joinValues(rules))
		}
		if categories := policy.list("categories"); len(categories) > 0 {
			fmt.Fprintf(&b, "- Categories: %s\n", joinValues(categories))
		}
		fmt.Fprintf(&b, "- Created: %s\n", policy.str("createdAt", "Unknown"))
		fmt.Fprintf(&b, "- Updated: %s\n\n", policy.str("updatedAt", "Unknown"))
	}
	return b.String(), nil
}

func (r *Registry) updateAuditPolicies(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}
	policies, err := args.RequireList("policies")
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"tenantId": tenantID,
		"policies": policies,
	}
	result, err := r.post(ctx, "/api/policies/config", body, nil, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Policy Update Results**\n\n")
	fmt.Fprintf(&b, "- Message: %s\n", result.str("message", "Update completed"))
	fmt.Fprintf(&b, "- Updated Count: %s\n\n", result.num("updatedCount"))

	if updated := result.list("policies"); len(updated) > 0 {
		b.WriteString("**Updated Policies:**\n")
		for _, item := range updated {
			policy := asObject(item)
			fmt.Fprintf(&b, "- %s (ID: %s)\n", policy.str("name", "Unnamed"), policy.str("id", "N/A"))
			fmt.Fprintf(&b, "  Updated at: %s\n", policy.str("updatedAt", "Unknown"))
		}
	}
	return b.String(), nil
}

func (r *Registry) deleteAuditPolicy(ctx context.Context, args Args) (string, error) {
	policyID, err := args.RequireString("policy_id")
	if err != nil {
		return "", err
	}
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}

	raw, err := r.backend.Delete(ctx, "/api/policies/"+url.PathEscape(policyID), map[string]any{"tenantId": tenantID}, false)
	if err != nil {
		return "", err
	}
	result, err := expectObject(raw)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("**Policy Deletion Result**\n\n%s", result.str("message", "Policy deleted successfully")), nil
}

func (r *Registry) listTenantUsers(ctx context.Context, args Args) (string, error) {
	top, err := args.Int("top", defaultUserPage)
	if err != nil {
		return "", err
	}
	query := map[string]any{"top": min(top, maxTenantUsers)}
	if args.Has("filter") {
		query["filter"] = args.String("filter", "")
	}
	if args.Has("user_type") {
		query["userType"] = args.String("user_type", "")
	}

	result, err := r.get(ctx, "/api/tenant/users", query, true)
	if err != nil {
		return "", err
	}

	users := result.list("users")
	if len(users) == 0 {
		return "No users found for the specified criteria.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Tenant Users (%d of %s total)**\n\n", len(users), result.str("totalCount", fmt.Sprint(len(users))))
	if result.flag("hasMore") {
		b.WriteString("⚠️ *More users available - adjust your query parameters to see more*\n\n")
	}

	for i, item := range users {
		user := asObject(item)
		fmt.Fprintf(&b, "**User %d: %s**\n", i+1, user.str("displayName", "Unknown"))
		fmt.Fprintf(&b, "- ID: %s\n", user.str("id", "N/A"))
		fmt.Fprintf(&b, "- Email: %s\n", user.str("email", "N/A"))
		fmt.Fprintf(&b, "- User Type: %s\n", user.str("userType", "Unknown"))
		fmt.Fprintf(&b, "- Account Enabled: %s\n", yesNo(user.flag("accountEnabled")))
		fmt.Fprintf(&b, "- Created: %s\n", user.str("createdDateTime", "Unknown"))
		fmt.Fprintf(&b, "- Last Sign In: %s\n", user.str("lastSignIn", "Never"))
		if user.flag("externalUserState") {
			fmt.Fprintf(&b, "- External User State: %s\n", user.str("externalUserState", ""))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (r *Registry) userInvitationStatus(ctx context.Context, args Args) (string, error) {
	userID, err := args.RequireString("user_id")
	if err != nil {
		return "", err
	}

	result, err := r.get(ctx, "/api/tenant/users/"+url.PathEscape(userID)+"/invitation", nil, true)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**User Invitation Status**\n\n")
	b.WriteString("**User Information:**\n")
	fmt.Fprintf(&b, "- ID: %s\n", result.str("userId", userID))
	fmt.Fprintf(&b, "- Display Name: %s\n", result.str("displayName", "Unknown"))
	fmt.Fprintf(&b, "- Email: %s\n", result.str("email", "N/A"))
	fmt.Fprintf(&b, "- User Type: %s\n", result.str("userType", "Unknown"))
	fmt.Fprintf(&b, "- Account Enabled: %s\n\n", yesNo(result.flag("accountEnabled")))

	b.WriteString("**Invitation Status:**\n")
	fmt.Fprintf(&b, "- Is Invited: %s\n", yesNo(result.flag("isInvited")))
	fmt.Fprintf(&b, "- Invitation Accepted: %s\n", yesNo(result.flag("invitationAccepted")))
	if result.flag("externalUserState") {
		fmt.Fprintf(&b, "- External User State: %s\n", result.str("externalUserState", ""))
	}
	if result.flag("externalUserStateChangeDateTime") {
		fmt.Fprintf(&b, "- State Changed: %s\n", result.str("externalUserStateChangeDateTime", ""))
	}
	fmt.Fprintf(&b, "- Created: %s\n", result.str("createdDateTime", "Unknown"))
	return b.String(), nil
}
