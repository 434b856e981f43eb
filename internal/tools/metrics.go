package tools

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	recentDays = 7
	topApps    = 5
)

func (r *Registry) metricsTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("get_usage_metrics",
				mcp.WithDescription("Get detailed usage metrics for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
				mcp.WithString("start_date",
					mcp.Description("Start date (YYYY-MM-DD)"),
				),
				mcp.WithString("end_date",
					mcp.Description("End date (YYYY-MM-DD)"),
				),
			),
			Category:     CategoryMetrics,
			RequiresAuth: true,
			Failure:      "Get usage metrics failed",
			Handler:      r.usageMetrics,
		},
		{
			Definition: mcp.NewTool("get_tenant_overview",
				mcp.WithDescription("Get high-level tenant overview and metrics."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
			),
			Category:     CategoryMetrics,
			RequiresAuth: true,
			Failure:      "Get tenant overview failed",
			Handler:      r.tenantOverview,
		},
	}
}

func (r *Registry) usageMetrics(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}

	query := map[string]any{"tenantId": tenantID}
	if args.Has("start_date") {
		query["startDate"] = args.String("start_date", "")
	}
	if args.Has("end_date") {
		query["endDate"] = args.String("end_date", "")
	}

	result, err := r.get(ctx, "/api/metrics/usage", query, true)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Usage Metrics for Tenant: %s**\n\n", result.str("tenantId", tenantID))

	if period := result.obj("period"); len(period) > 0 {
		fmt.Fprintf(&b, "**Period:** %s to %s\n\n", period.str("start", "Unknown"), period.str("end", "Unknown"))
	}

	if seats := result.obj("seats"); len(seats) > 0 {
		b.WriteString("**Seat Utilization:**\n")
		fmt.Fprintf(&b, "- Active Seats: %s\n", seats.num("active"))
		fmt.Fprintf(&b, "- Total Seats: %s\n", seats.num("total"))
		fmt.Fprintf(&b, "- Licensed Seats: %s\n", seats.num("licensed"))
		fmt.Fprintf(&b, "- Utilization Rate: %s%%\n\n", seats.num("utilizationRate"))
	}

	if interactions := result.obj("interactions"); len(interactions) > 0 {
		b.WriteString("**Interaction Statistics:**\n")
		fmt.Fprintf(&b, "- Total Interactions: %s\n", comma(interactions["total"]))
		fmt.Fprintf(&b, "- Daily Average: %s\n", fixed1(interactions["dailyAverage"]))
		fmt.Fprintf(&b, "- Growth Rate: %s%%\n\n", interactions.num("growthRate"))
	}

	if apps := result.obj("apps"); len(apps) > 0 {
		b.WriteString("**Application Usage:**\n")
		entries := byCountDesc(apps)
		var total float64
		for _, e := range entries {
			total += e.Value
		}
		for _, e := range entries {
			var pct float64
			if total > 0 {
				pct = e.Value / total * 100
			}
			fmt.Fprintf(&b, "- %s: %s interactions (%.1f%%)\n", e.Name, comma(e.Count), pct)
		}
		b.WriteString("\n")
	}

	if conversations := result.obj("conversations"); len(conversations) > 0 {
		b.WriteString("**Conversation Statistics:**\n")
		fmt.Fprintf(&b, "- Total Threads: %s\n", comma(conversations["threads"]))
		fmt.Fprintf(&b, "- Average Length: %s messages\n", fixed1(conversations["averageLength"]))
		fmt.Fprintf(&b, "- Total Messages: %s\n\n", comma(conversations["totalMessages"]))
	}

	if activity := result.obj("activity"); len(activity) > 0 {
		b.WriteString("**Activity Patterns:**\n")

		if daily := activity.obj("dailyActivity"); len(daily) > 0 {
			b.WriteString("- Recent Daily Activity:\n")
			days := daily.keys()
			if len(days) > recentDays {
				days = days[len(days)-recentDays:]
			}
			for _, day := range days {
				fmt.Fprintf(&b, "  - %s: %s users\n", day, render(daily[day]))
			}
		}

		if peaks := activity.obj("peakHours"); len(peaks) > 0 {
			b.WriteString("- Peak Hours (users active):\n")
			for _, hour := range hoursInOrder(peaks) {
				fmt.Fprintf(&b, "  - %s:00: %s users\n", hour, render(peaks[hour]))
			}
		}
	}
	return b.String(), nil
}

// hoursInOrder sorts hour keys numerically. Keys that are not numbers sort last.
func hoursInOrder(peaks object) []string {
	hours := peaks.keys()
	sort.SliceStable(hours, func(i, j int) bool {
		a, errA := strconv.Atoi(hours[i])
		b, errB := strconv.Atoi(hours[j])
		switch {
		case errA != nil:
			return false
		case errB != nil:
			return true
		default:
			return a < b
		}
	})
	return hours
}

func (r *Registry) tenantOverview(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}

	result, err := r.get(ctx, "/api/metrics/overview", map[string]any{"tenantId": tenantID}, true)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Tenant Overview: %s**\n\n", result.str("tenantId", tenantID))
	fmt.Fprintf(&b, "**Last Updated:** %s\n\n", result.str("lastUpdated", "Unknown"))
	fmt.Fprintf(&b, "**Health Score:** %s %s/100\n\n", healthEmoji(result.float("healthScore")), result.num("healthScore"))

	if current := result.obj("current"); len(current) > 0 {
		b.WriteString("**Current Period Summary:**\n")
		if period := current.obj("period"); len(period) > 0 {
			fmt.Fprintf(&b, "- Period: %s to %s\n", period.str("start", "Unknown"), period.str("end", "Unknown"))
		}
		fmt.Fprintf(&b, "- Active Users: %s\n", current.num("activeUsers"))
		fmt.Fprintf(&b, "- Total Interactions: %s\n", comma(current["totalInteractions"]))
		fmt.Fprintf(&b, "- Daily Average: %s\n\n", fixed1(current["averageDaily"]))

		if apps := current.obj("topApps"); len(apps) > 0 {
			b.WriteString("**Top Applications:**\n")
			entries := byCountDesc(apps)
			if len(entries) > topApps {
				entries = entries[:topApps]
			}
			for _, e := range entries {
				fmt.Fprintf(&b, "- %s: %s interactions\n", e.Name, comma(e.Count))
			}
			b.WriteString("\n")
		}
	}

	if trends := result.obj("trends"); len(trends) > 0 {
		b.WriteString("**Growth Trends:**\n")
		fmt.Fprintf(&b, "- User Growth: %s%%\n", signed(trends, "userGrowth"))
		fmt.Fprintf(&b, "- Interaction Growth: %s%%\n", signed(trends, "interactionGrowth"))
		fmt.Fprintf(&b, "- Conversation Growth: %s%%\n", signed(trends, "conversationGrowth"))
	}
	return b.String(), nil
}

func healthEmoji(score float64) string {
	switch {
	case score >= 80:
		return "🟢"
	case score >= 60:
		return "🟡"
	default:
		return "🔴"
	}
}

// signed renders a growth figure with an explicit "+" for non-negative values.
func signed(o object, key string) string {
	v := o.num(key)
	if o.float(key) >= 0 {
		return "+" + v
	}
	return v
}
