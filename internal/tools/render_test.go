package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck_SortsComponents(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{
		"status": "healthy",
		"timestamp": "2024-01-01T00:00:00Z",
		"message": "ok",
		"components": {
			"storage": {"status": "healthy", "duration": 12, "message": "fine"},
			"cosmos": {"status": "degraded", "duration": 40}
		},
		"version": "1.2.3"
	}`)}

	text, isErr := callTool(t, backend, "health_check", nil)
	require.False(t, isErr)

	assert.Contains(t, text, "**System Health Status: HEALTHY**")
	assert.Contains(t, text, "- **cosmos:** degraded (40ms) - No message")
	assert.Contains(t, text, "- **storage:** healthy (12ms) - fine")
	assert.Less(t, strings.Index(text, "cosmos"), strings.Index(text, "storage"))
	assert.Contains(t, text, "\n**Version:** 1.2.3")
	assert.NotContains(t, text, "Environment")
}

func TestQueueMetrics_DefaultQueue(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"messages": {"active": 3, "total": 5}}`)}

	text, isErr := callTool(t, backend, "get_queue_metrics", nil)
	require.False(t, isErr)

	call := backend.lastCall(t)
	assert.Equal(t, "invite-queue", call.Query["queue"])
	assert.True(t, call.Auth)
	assert.Contains(t, text, "**Queue Metrics: invite-queue**")
	assert.Contains(t, text, "- Active: 3\n")
	assert.Contains(t, text, "- Dead Letter: 0\n")
}

func TestListTenantUsers_CapsTop(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"users": []}`)}

	text, isErr := callTool(t, backend, "list_tenant_users", map[string]any{"top": float64(500)})
	require.False(t, isErr)

	assert.Equal(t, 200, backend.lastCall(t).Query["top"])
	assert.Equal(t, "No users found for the specified criteria.", text)
}

func TestSearchConversations_Pagination(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{
		"results": [{"id": "c1", "title": "Q3 planning", "preview": "`+strings.Repeat("a", 250)+`"}],
		"page": 2,
		"totalPages": 3,
		"totalCount": 25
	}`)}

	text, isErr := callTool(t, backend, "search_conversations", map[string]any{
		"tenant_id": "t1",
		"keyword":   "budget",
		"page":      float64(2),
	})
	require.False(t, isErr)

	call := backend.lastCall(t)
	assert.Equal(t, 2, call.Query["page"])
	assert.Equal(t, 10, call.Query["pageSize"])
	assert.Equal(t, "budget", call.Query["keyword"])
	assert.NotContains(t, call.Query, "user")

	assert.Contains(t, text, "**Page 2 of 3 (Total: 25 conversations)**")
	assert.Contains(t, text, "**Search Criteria:** Keyword: budget")
	assert.Contains(t, text, strings.Repeat("a", 200)+"...")
	assert.NotContains(t, text, strings.Repeat("a", 201))
	assert.Contains(t, text, "Use page=3 to see more results.")
}

func TestInteractionHistory_ODataParameters(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{
		"value": [{"id": "i1", "userPrompt": "`+strings.Repeat("p", 160)+`", "aiResponse": "short"}],
		"@odata.nextLink": "https://next"
	}`)}

	text, isErr := callTool(t, backend, "get_interaction_history", map[string]any{
		"tenant_id": "t1",
		"top":       float64(5),
		"filter":    "userId eq 'u1'",
	})
	require.False(t, isErr)

	call := backend.lastCall(t)
	assert.False(t, call.Auth)
	assert.Equal(t, 5, call.Query["$top"])
	assert.Equal(t, "userId eq 'u1'", call.Query["$filter"])

	assert.Contains(t, text, "- User Prompt: "+strings.Repeat("p", 150)+"...\n")
	assert.Contains(t, text, "- AI Response: short\n")
	assert.Contains(t, text, "**More Results Available:** https://next")
}

func TestRetrieveContent_DefaultFilters(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"results": []}`)}

	text, isErr := callTool(t, backend, "copilot_retrieve_content", map[string]any{"query": "budget"})
	require.False(t, isErr)

	body, ok := backend.lastCall(t).Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "budget", body["query"])
	assert.Equal(t, map[string]any{}, body["filters"])
	assert.Equal(t, "No content found for query: 'budget'", text)
}

func TestRetrieveContent_FiltersSorted(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"results": [{"title": "Doc"}]}`)}

	text, isErr := callTool(t, backend, "copilot_retrieve_content", map[string]any{
		"query":   "budget",
		"filters": map[string]any{"site": "finance", "author": "ana"},
	})
	require.False(t, isErr)
	assert.Contains(t, text, "**Filters:** author: ana, site: finance\n")
	assert.Contains(t, text, "**Result 1: Doc**")
}

func TestSecurityAlerts_UppercasesSeverity(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"value": [{"displayName": "Impossible travel", "severity": "high"}]}`)}

	text, isErr := callTool(t, backend, "get_security_alerts", nil)
	require.False(t, isErr)
	assert.Contains(t, text, "**Security Alerts (1 alerts)**")
	assert.Contains(t, text, "- **Severity:** HIGH")
	assert.Contains(t, text, "- **Assigned To:** Unassigned")
}

func TestUsageSummary_EmptyReport(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"value": []}`)}

	text, isErr := callTool(t, backend, "get_copilot_usage_summary", nil)
	require.False(t, isErr)
	assert.Equal(t, "D7", backend.lastCall(t).Query["period"])
	assert.Equal(t, "No usage summary data available for period: D7", text)
}

func TestListExports_GroupsByDate(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `[
		{"name": "a.json", "path": "exports/t1/2024-01-02/a.json", "size": 2097152},
		{"name": "b.json", "path": "exports/t1/2024-01-01/b.json", "size": 2048},
		{"name": "c.json", "path": "c.json", "size": 12}
	]`)}

	text, isErr := callTool(t, backend, "list_exports", map[string]any{"tenant_id": "t1"})
	require.False(t, isErr)

	assert.Contains(t, text, "**Total Export Files: 3**")
	assert.Contains(t, text, "**Date: 2024-01-01** (1 files)")
	assert.Contains(t, text, "  - Size: 2.0 MB\n")
	assert.Contains(t, text, "  - Size: 2.0 KB\n")
	assert.Contains(t, text, "  - Size: 12 bytes\n")
	assert.Contains(t, text, "  - URL: No URL\n")

	first := strings.Index(text, "2024-01-01")
	second := strings.Index(text, "2024-01-02")
	unknown := strings.Index(text, "**Date: Unknown**")
	assert.Less(t, first, second)
	assert.Less(t, second, unknown)
}

func TestListExports_EdgeCases(t *testing.T) {
	t.Run("object response", func(t *testing.T) {
		backend := &fakeBackend{response: decode(t, `{"files": []}`)}
		text, isErr := callTool(t, backend, "list_exports", map[string]any{"tenant_id": "t1"})
		require.False(t, isErr)
		assert.Equal(t, "Unexpected response format for exports list", text)
	})

	t.Run("empty with date", func(t *testing.T) {
		backend := &fakeBackend{response: []any{}}
		text, isErr := callTool(t, backend, "list_exports", map[string]any{"tenant_id": "t1", "date": "2024-01-01"})
		require.False(t, isErr)
		assert.Equal(t, "2024-01-01", backend.lastCall(t).Query["date"])
		assert.Equal(t, "No exports found for tenant: t1 for date 2024-01-01", text)
	})
}

func TestUsageMetrics_Formatting(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{
		"tenantId": "t1",
		"interactions": {"total": 12345, "dailyAverage": 41.26, "growthRate": 5},
		"apps": {"Word": 100, "Teams": 300},
		"activity": {"peakHours": {"14": 5, "9": 3, "10": 4}}
	}`)}

	text, isErr := callTool(t, backend, "get_usage_metrics", map[string]any{"tenant_id": "t1"})
	require.False(t, isErr)

	call := backend.lastCall(t)
	assert.NotContains(t, call.Query, "startDate")
	assert.NotContains(t, call.Query, "endDate")

	assert.Contains(t, text, "- Total Interactions: 12,345\n")
	assert.Contains(t, text, "- Daily Average: 41.3\n")
	assert.Contains(t, text, "- Teams: 300 interactions (75.0%)\n")
	assert.Contains(t, text, "- Word: 100 interactions (25.0%)\n")
	assert.Less(t, strings.Index(text, "Teams"), strings.Index(text, "Word"))
	assert.NotContains(t, text, "Seat Utilization")

	nine := strings.Index(text, "  - 9:00: 3 users")
	ten := strings.Index(text, "  - 10:00: 4 users")
	fourteen := strings.Index(text, "  - 14:00: 5 users")
	require.NotEqual(t, -1, nine)
	assert.Less(t, nine, ten)
	assert.Less(t, ten, fourteen)
}

func TestTenantOverview_HealthAndTrends(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{
		"healthScore": 65,
		"trends": {"userGrowth": 3.5, "interactionGrowth": -2, "conversationGrowth": 0}
	}`)}

	text, isErr := callTool(t, backend, "get_tenant_overview", map[string]any{"tenant_id": "t1"})
	require.False(t, isErr)

	assert.Contains(t, text, "**Tenant Overview: t1**")
	assert.Contains(t, text, "**Health Score:** 🟡 65/100")
	assert.Contains(t, text, "- User Growth: +3.5%")
	assert.Contains(t, text, "- Interaction Growth: -2%")
	assert.Contains(t, text, "- Conversation Growth: +0%")
}

func TestBillingStatus(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{
		"customerEmail": "billing@example.com",
		"subscriptionStatus": "past_due",
		"invoices": [
			{"Id": "in_1", "AmountDue": 1999, "Status": "paid", "InvoicePdf": "https://pdf"},
			{"Id": "in_2", "Status": "mystery"}
		]
	}`)}

	text, isErr := callTool(t, backend, "get_billing_status", map[string]any{"tenant_id": "t1"})
	require.False(t, isErr)

	assert.Contains(t, text, "- **Subscription Status:** ⚠️ Past_Due\n")
	assert.Contains(t, text, "**Invoice History (2 invoices):**")
	assert.Contains(t, text, "- Amount: $19.99\n")
	assert.Contains(t, text, "- Status: ✅ Paid\n")
	assert.Contains(t, text, "- PDF: https://pdf\n")
	assert.Contains(t, text, "- Amount: $0.00\n")
	assert.Contains(t, text, "- Status: ❓ Mystery\n")
}

func TestBillingStatus_NoInvoices(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"subscriptionStatus": "active"}`)}

	text, isErr := callTool(t, backend, "get_billing_status", map[string]any{"tenant_id": "t1"})
	require.False(t, isErr)
	assert.Contains(t, text, "✅ Active")
	assert.Contains(t, text, "**No invoice history available.**")
}

func TestSeatStatus(t *testing.T) {
	t.Run("standard", func(t *testing.T) {
		backend := &fakeBackend{response: decode(t, `{"purchasedSeats": 10, "activeSeats": 7, "maxSeats": 10, "canAddUsers": true}`)}
		text, isErr := callTool(t, backend, "get_seat_status", map[string]any{"tenant_id": "t1"})
		require.False(t, isErr)

		assert.Contains(t, text, "💺 **Standard Seat-Based Billing**")
		assert.Contains(t, text, "✅ **Can Add Users:** Yes (3 seats available)")
		assert.Contains(t, text, "- **Usage:** 70.0% [███████░░░]")
	})

	t.Run("enterprise", func(t *testing.T) {
		backend := &fakeBackend{response: decode(t, `{"isEnterprise": true, "activeSeats": 400, "maxSeats": 10}`)}
		text, isErr := callTool(t, backend, "get_seat_status", map[string]any{"tenant_id": "t1"})
		require.False(t, isErr)

		assert.Contains(t, text, "🏢 **Enterprise Customer**")
		assert.Contains(t, text, "Yes (Enterprise - No limits)")
		assert.NotContains(t, text, "**Usage:**")
	})

	t.Run("full", func(t *testing.T) {
		backend := &fakeBackend{response: decode(t, `{"activeSeats": 10, "maxSeats": 10}`)}
		text, isErr := callTool(t, backend, "get_seat_status", map[string]any{"tenant_id": "t1"})
		require.False(t, isErr)

		assert.Contains(t, text, "❌ **Can Add Users:** No (Seat limit reached)")
		assert.Contains(t, text, "[██████████]")
	})
}

func TestCreateCheckout(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"sessionId": "cs_1"}`)}
	args := map[string]any{"tenant_id": "t1", "success_url": "https://ok", "cancel_url": "https://cancel"}

	text, isErr := callTool(t, backend, "create_stripe_checkout", args)
	require.False(t, isErr)

	assert.Equal(t, map[string]any{
		"tenantId":   "t1",
		"successUrl": "https://ok",
		"cancelUrl":  "https://cancel",
	}, backend.lastCall(t).Body)
	assert.Contains(t, text, "- **Session ID:** cs_1")
	assert.Contains(t, text, "- **Checkout URL:** None")
	assert.Contains(t, text, "❌ **Error** - Failed to create checkout session.")
}

func TestCreatePaymentLink_RequiresIntegerSeats(t *testing.T) {
	backend := &fakeBackend{}
	text, isErr := callTool(t, backend, "create_stripe_payment_link", map[string]any{
		"tenant_id":   "t1",
		"seats":       2.5,
		"success_url": "https://ok",
		"cancel_url":  "https://cancel",
	})

	assert.True(t, isErr)
	assert.True(t, strings.HasPrefix(text, "Create Stripe payment link failed: "), text)
	assert.Empty(t, backend.calls)
}

func TestStripeWebhook_IsStatic(t *testing.T) {
	backend := &fakeBackend{}
	text, isErr := callTool(t, backend, "stripe_webhook", nil)

	require.False(t, isErr)
	assert.Empty(t, backend.calls)
	assert.Contains(t, text, "**Webhook Endpoint:** `POST /api/stripe/webhook`")
	assert.Contains(t, text, "`checkout.session.completed`")
}

func TestCompleteOnboarding_Defaults(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"success": true, "message": "done"}`)}

	text, isErr := callTool(t, backend, "complete_onboarding", map[string]any{
		"tenant_id":                    "t1",
		"azure_ad_app_id":              "app",
		"azure_storage_account_name":   "acct",
		"azure_storage_container_name": "exports",
	})
	require.False(t, isErr)

	body, ok := backend.lastCall(t).Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "90days", body["retentionPolicy"])
	assert.Equal(t, 90, body["customRetentionDays"])
	assert.Equal(t, "daily", body["exportSchedule"])
	assert.Equal(t, "02:00", body["exportTime"])

	assert.Contains(t, text, "- **Status:** ✅ Success")
	assert.Contains(t, text, "- Export Schedule: daily at 02:00")
}

func TestSendOnboardingEmail_Status(t *testing.T) {
	args := map[string]any{"tenant_id": "t1", "admin_email": "admin@example.com"}

	text, _ := callTool(t, &fakeBackend{response: decode(t, `{"success": true}`)}, "send_onboarding_email", args)
	assert.Contains(t, text, "- **Status:** ✅ Sent")
	assert.Contains(t, text, "- **Message:** No message provided")

	text, _ = callTool(t, &fakeBackend{response: decode(t, `{"success": false}`)}, "send_onboarding_email", args)
	assert.Contains(t, text, "- **Status:** ❌ Failed")
}

func TestInviteUser_OptionalLines(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"success": true, "state": "Invited", "inviteId": "inv-1"}`)}

	text, isErr := callTool(t, backend, "invite_user", map[string]any{"tenant_id": "t1", "admin_email": "a@example.com"})
	require.False(t, isErr)

	call := backend.lastCall(t)
	assert.True(t, call.Auth)
	body := call.Body.(map[string]any)
	assert.Equal(t, "https://myapplications.microsoft.com", body["redirectUrl"])
	assert.Equal(t, "System", body["invitedBy"])

	assert.Contains(t, text, "- **Invitation ID:** inv-1")
	assert.NotContains(t, text, "User ID")
	assert.NotContains(t, text, "**Error:**")
}

func TestResendInvitation_RetryCount(t *testing.T) {
	backend := &fakeBackend{response: decode(t, `{"success": false, "retryCount": 2}`)}

	text, isErr := callTool(t, backend, "resend_invitation", map[string]any{"tenant_id": "t1"})
	require.False(t, isErr)

	assert.Equal(t, "Admin", backend.lastCall(t).Body.(map[string]any)["requestedBy"])
	assert.Contains(t, text, "- **Retry Count:** 2/5")
	assert.Contains(t, text, "- **Status:** ❌ Failed")
}
