package tools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const usageBarCells = 10

var subscriptionEmoji = map[string]string{
	"active":   "✅",
	"canceled": "❌",
	"past_due": "⚠️",
	"unpaid":   "🔴",
	"trialing": "🆓",
}

var invoiceEmoji = map[string]string{
	"paid":  "✅",
	"open":  "📝",
	"void":  "❌",
	"draft": "📄",
}

const webhookInfo = `**Stripe Webhook Information**

ℹ️ **Note:** Webhooks are processed automatically by the Vaults Azure Function App.

**Supported Webhook Events:**
- ` + "`checkout.session.completed`" + ` - Updates seat counts when payment completes
- ` + "`invoice.payment_succeeded`" + ` - Processes successful subscription payments
- ` + "`customer.created`" + ` - Links Stripe customer to tenant
- ` + "`customer.subscription.created`" + ` - Sets up subscription tracking
- ` + "`customer.subscription.updated`" + ` - Updates subscription status

**Webhook Endpoint:** ` + "`POST /api/stripe/webhook`" + `
**Authentication:** Stripe signature validation

🔧 **For debugging webhook issues:**
1. Check Azure Function App logs
2. Verify webhook signature configuration
3. Monitor seat status updates after payments
`

func (r *Registry) paymentTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("get_billing_status",
				mcp.WithDescription("Get billing status and invoice history for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
			),
			Category:     CategoryPayment,
			RequiresAuth: true,
			Failure:      "Get billing status failed",
			Handler:      r.billingStatus,
		},
		{
			Definition: mcp.NewTool("create_stripe_checkout",
				mcp.WithDescription("Create a Stripe checkout session for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
				mcp.WithString("success_url",
					mcp.Required(),
					mcp.Description("Success URL"),
				),
				mcp.WithString("cancel_url",
					mcp.Required(),
					mcp.Description("Cancel URL"),
				),
			),
			Category: CategoryPayment,
			Failure:  "Create Stripe checkout failed",
			Handler:  r.createCheckout,
		},
		{
			Definition: mcp.NewTool("create_stripe_payment_link",
				mcp.WithDescription("Create a Stripe payment link for seat-based billing."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
				mcp.WithNumber("seats",
					mcp.Required(),
					mcp.Description("Number of seats"),
				),
				mcp.WithString("success_url",
					mcp.Required(),
					mcp.Description("Success URL"),
				),
				mcp.WithString("cancel_url",
					mcp.Required(),
					mcp.Description("Cancel URL"),
				),
			),
			Category: CategoryPayment,
			Failure:  "Create Stripe payment link failed",
			Handler:  r.createPaymentLink,
		},
		{
			Definition: mcp.NewTool("get_seat_status",
				mcp.WithDescription("Get current seat allocation and usage for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
			),
			Category:     CategoryPayment,
			RequiresAuth: true,
			Failure:      "Get seat status failed",
			Handler:      r.seatStatus,
		},
		{
			Definition: mcp.NewTool("stripe_webhook",
				mcp.WithDescription("Get information about Stripe webhook processing."),
			),
			Category: CategoryPayment,
			Failure:  "Stripe webhook info failed",
			Handler: func(context.Context, Args) (string, error) {
				return webhookInfo, nil
			},
		},
	}
}

func (r *Registry) createCheckout(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}
	successURL, err := args.RequireString("success_url")
	if err != nil {
		return "", err
	}
	cancelURL, err := args.RequireString("cancel_url")
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"tenantId":   tenantID,
		"successUrl": successURL,
		"cancelUrl":  cancelURL,
	}
	result, err := r.post(ctx, "/api/v1/stripe/checkout", body, nil, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Stripe Checkout Session Created**\n\n")
	fmt.Fprintf(&b, "- **Tenant ID:** %s\n", tenantID)
	fmt.Fprintf(&b, "- **Session ID:** %s\n", render(result["sessionId"]))
	fmt.Fprintf(&b, "- **Checkout URL:** %s\n\n", render(result["url"]))
	fmt.Fprintf(&b, "- **Success URL:** %s\n", successURL)
	fmt.Fprintf(&b, "- **Cancel URL:** %s\n\n", cancelURL)

	if result.flag("url") {
		b.WriteString("✅ **Ready for payment** - Customer can now complete checkout using the provided URL.")
	} else {
		b.WriteString("❌ **Error** - Failed to create checkout session.")
	}
	return b.String(), nil
}

func (r *Registry) billingStatus(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}

	result, err := r.get(ctx, "/api/v1/stripe/billing/"+url.PathEscape(tenantID), nil, true)
	if err != nil {
		return "", err
	}

	status := result.str("subscriptionStatus", "Unknown")

	var b strings.Builder
	fmt.Fprintf(&b, "**Billing Status for Tenant: %s**\n\n", tenantID)
	fmt.Fprintf(&b, "- **Customer Email:** %s\n", result.str("customerEmail", "N/A"))
	fmt.Fprintf(&b, "- **Subscription Status:** %s %s\n", statusEmoji(subscriptionEmoji, status), titleCase(status))
	fmt.Fprintf(&b, "- **Current Period Ends:** %s\n\n", result.str("currentPeriodEnd", "Unknown"))

	invoices := result.list("invoices")
	if len(invoices) == 0 {
		b.WriteString("**No invoice history available.**\n")
		return b.String(), nil
	}

	fmt.Fprintf(&b, "**Invoice History (%d invoices):**\n\n", len(invoices))
	for i, item := range invoices {
		invoice := asObject(item)
		invoiceStatus := invoice.str("Status", "Unknown")

		fmt.Fprintf(&b, "**Invoice %d:**\n", i+1)
		fmt.Fprintf(&b, "- ID: %s\n", invoice.str("Id", "N/A"))
		fmt.Fprintf(&b, "- Amount: $%.2f\n", invoice.float("AmountDue")/100)
		fmt.Fprintf(&b, "- Status: %s %s\n", statusEmoji(invoiceEmoji, invoiceStatus), titleCase(invoiceStatus))
		fmt.Fprintf(&b, "- Created: %s\n", invoice.str("Created", "Unknown"))
		if invoice.flag("InvoicePdf") {
			fmt.Fprintf(&b, "- PDF: %s\n", invoice.str("InvoicePdf", ""))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func statusEmoji(table map[string]string, status string) string {
	if emoji, ok := table[strings.ToLower(status)]; ok {
		return emoji
	}
	return "❓"
}

func (r *Registry) createPaymentLink(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}
	seats, err := args.RequireInt("seats")
	if err != nil {
		return "", err
	}
	successURL, err := args.RequireString("success_url")
	if err != nil {
		return "", err
	}
	cancelURL, err := args.RequireString("cancel_url")
	if err != nil {
		return "", err
	}

	body := map[string]any{
		"tenantId":   tenantID,
		"seats":      seats,
		"successUrl": successURL,
		"cancelUrl":  cancelURL,
	}
	result, err := r.post(ctx, "/api/v1/stripe/payment-links", body, nil, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Stripe Payment Link Created**\n\n")
	fmt.Fprintf(&b, "- **Tenant ID:** %s\n", tenantID)
	fmt.Fprintf(&b, "- **Payment Link ID:** %s\n", render(result["paymentLinkId"]))
	fmt.Fprintf(&b, "- **Seats Requested:** %s\n", render(result["seats"]))
	fmt.Fprintf(&b, "- **Payment URL:** %s\n\n", render(result["url"]))
	fmt.Fprintf(&b, "- **Success URL:** %s\n", successURL)
	fmt.Fprintf(&b, "- **Cancel URL:** %s\n\n", cancelURL)

	if result.flag("url") {
		b.WriteString("✅ **Ready for payment** - Customer can now purchase seats using the payment link.")
	} else {
		b.WriteString("❌ **Error** - Failed to create payment link.")
	}
	return b.String(), nil
}

func (r *Registry) seatStatus(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}

	result, err := r.get(ctx, "/api/v1/stripe/seats/"+url.PathEscape(tenantID), nil, true)
	if err != nil {
		return "", err
	}

	enterprise := result.flag("isEnterprise")
	active := result.float("activeSeats")
	maxSeats := result.float("maxSeats")

	var b strings.Builder
	fmt.Fprintf(&b, "**Seat Status for Tenant: %s**\n\n", result.str("tenantId", tenantID))
	if enterprise {
		b.WriteString("🏢 **Enterprise Customer** - Unlimited seats available\n\n")
	} else {
		b.WriteString("💺 **Standard Seat-Based Billing**\n\n")
	}

	fmt.Fprintf(&b, "- **Purchased Seats:** %s\n", result.num("purchasedSeats"))
	fmt.Fprintf(&b, "- **Active Seats:** %s\n", result.num("activeSeats"))
	fmt.Fprintf(&b, "- **Maximum Seats:** %s\n", result.num("maxSeats"))
	fmt.Fprintf(&b, "- **Last Updated:** %s\n\n", result.str("lastSeatUpdate", "N/A"))

	switch {
	case enterprise:
		b.WriteString("✅ **Can Add Users:** Yes (Enterprise - No limits)\n")
	case result.flag("canAddUsers"):
		available := strconv.FormatFloat(maxSeats-active, 'f', -1, 64)
		fmt.Fprintf(&b, "✅ **Can Add Users:** Yes (%s seats available)\n", available)
	default:
		b.WriteString("❌ **Can Add Users:** No (Seat limit reached)\n")
	}

	if !enterprise && maxSeats > 0 {
		pct := active / maxSeats * 100
		fmt.Fprintf(&b, "- **Usage:** %.1f%% [%s]\n", pct, usageBar(pct))
	}
	return b.String(), nil
}

// usageBar draws one filled cell per full 10%.
func usageBar(pct float64) string {
	filled := int(pct / 10)
	if filled < 0 {
		filled = 0
	}
	empty := usageBarCells - filled
	if empty < 0 {
		empty = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}
