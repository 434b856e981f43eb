package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (r *Registry) healthTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("health_check",
				mcp.WithDescription("Check the health status of the Vaults system."),
			),
			Category: CategoryHealth,
			Failure:  "Health check failed",
			Handler:  r.healthCheck,
		},
		{
			Definition: mcp.NewTool("get_service_bus_health",
				mcp.WithDescription("Get Service Bus health status and queue metrics."),
			),
			Category:     CategoryHealth,
			RequiresAuth: true,
			Failure:      "Service Bus health check failed",
			Handler:      r.serviceBusHealth,
		},
		{
			Definition: mcp.NewTool("get_queue_metrics",
				mcp.WithDescription("Get detailed metrics for a specific queue."),
				mcp.WithString("queue",
					mcp.Description("Queue name"),
					mcp.DefaultString("invite-queue"),
				),
			),
			Category:     CategoryHealth,
			RequiresAuth: true,
			Failure:      "Queue metrics failed",
			Handler:      r.queueMetrics,
		},
		{
			Definition: mcp.NewTool("health_check_live",
				mcp.WithDescription("Check liveness status of the Vaults system."),
			),
			Category: CategoryHealth,
			Failure:  "Liveness check failed",
			Handler:  r.healthLive,
		},
		{
			Definition: mcp.NewTool("health_check_ready",
				mcp.WithDescription("Check readiness status of the Vaults system."),
			),
			Category: CategoryHealth,
			Failure:  "Readiness check failed",
			Handler:  r.healthReady,
		},
		{
			Definition: mcp.NewTool("health_check_simple",
				mcp.WithDescription("Simple health check with minimal dependencies."),
			),
			Category: CategoryHealth,
			Failure:  "Simple health check failed",
			Handler:  r.healthSimple,
		},
		{
			Definition: mcp.NewTool("health_check_config",
				mcp.WithDescription("Configuration health check."),
			),
			Category: CategoryHealth,
			Failure:  "Configuration health check failed",
			Handler:  r.healthConfig,
		},
		{
			Definition: mcp.NewTool("health_check_service",
				mcp.WithDescription("Service dependency health check."),
			),
			Category: CategoryHealth,
			Failure:  "Service health check failed",
			Handler:  r.healthService,
		},
	}
}

func (r *Registry) healthCheck(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/health", nil, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**System Health Status: %s**\n\n", strings.ToUpper(result.str("status", "unknown")))
	fmt.Fprintf(&b, "**Timestamp:** %s\n", result.str("timestamp", "Unknown"))
	fmt.Fprintf(&b, "**Message:** %s\n\n", result.str("message", "No message"))

	if result.has("components") {
		components := result.obj("components")
		b.WriteString("**Component Health:**\n")
		for _, name := range components.keys() {
			details := components.obj(name)
			fmt.Fprintf(&b, "- **%s:** %s (%sms) - %s\n", name,
				details.str("status", "unknown"), details.num("duration"), details.str("message", "No message"))
		}
	}
	if result.has("version") {
		fmt.Fprintf(&b, "\n**Version:** %s", result.str("version", ""))
	}
	if result.has("environment") {
		fmt.Fprintf(&b, "\n**Environment:** %s", result.str("environment", ""))
	}
	return b.String(), nil
}

func (r *Registry) serviceBusHealth(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/admin/servicebus/health", nil, true)
	if err != nil {
		return "", err
	}

	overall := result.obj("overall")
	var b strings.Builder
	fmt.Fprintf(&b, "**Service Bus Health Status: %s**\n\n", strings.ToUpper(overall.str("status", "unknown")))
	fmt.Fprintf(&b, "**Available:** %s\n", yesNo(overall.flag("available")))
	fmt.Fprintf(&b, "**Monitoring Enabled:** %s\n\n", yesNo(overall.flag("monitoringEnabled")))

	if result.has("queues") {
		queues := result.obj("queues")
		b.WriteString("**Queue Status:**\n")
		for _, key := range queues.keys() {
			queue := queues.obj(key)
			fmt.Fprintf(&b, "- **%s:** %s (Available: %s)\n",
				queue.str("name", key), queue.str("status", "unknown"), yesNo(queue.flag("available")))
			if queue.has("metrics") {
				metrics := queue.obj("metrics")
				fmt.Fprintf(&b, "  - Active Messages: %s\n", metrics.num("activeMessages"))
				fmt.Fprintf(&b, "  - Dead Letter Messages: %s\n", metrics.num("deadLetterMessages"))
				fmt.Fprintf(&b, "  - Total Messages: %s\n", metrics.num("totalMessages"))
				fmt.Fprintf(&b, "  - Size: %s bytes\n", metrics.num("sizeInBytes"))
			}
		}
	}
	if result.has("features") {
		writeFeatures(&b, "\n**Features:**\n", result.obj("features"))
	}
	return b.String(), nil
}

func (r *Registry) queueMetrics(ctx context.Context, args Args) (string, error) {
	queue := args.String("queue", "invite-queue")

	result, err := r.get(ctx, "/api/admin/servicebus/metrics", map[string]any{"queue": queue}, true)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Queue Metrics: %s**\n\n", result.str("queueName", queue))
	fmt.Fprintf(&b, "**Timestamp:** %s\n\n", result.str("timestamp", "Unknown"))

	if result.has("messages") {
		messages := result.obj("messages")
		b.WriteString("**Message Counts:**\n")
		fmt.Fprintf(&b, "- Active: %s\n", messages.num("active"))
		fmt.Fprintf(&b, "- Dead Letter: %s\n", messages.num("deadLetter"))
		fmt.Fprintf(&b, "- Scheduled: %s\n", messages.num("scheduled"))
		fmt.Fprintf(&b, "- Total: %s\n\n", messages.num("total"))
	}
	if result.has("size") {
		size := result.obj("size")
		b.WriteString("**Size Information:**\n")
		fmt.Fprintf(&b, "- Current Size: %s bytes\n", size.num("currentBytes"))
		fmt.Fprintf(&b, "- Max Size: %s MB\n", size.num("maxMegabytes"))
		fmt.Fprintf(&b, "- Utilization: %s%%\n\n", size.num("utilizationPercent"))
	}
	if result.has("configuration") {
		b.WriteString("**Configuration:**\n")
		fmt.Fprintf(&b, "- Max Delivery Count: %s\n\n", result.obj("configuration").num("maxDeliveryCount"))
	}
	if result.has("timestamps") {
		timestamps := result.obj("timestamps")
		b.WriteString("**Timestamps:**\n")
		fmt.Fprintf(&b, "- Created: %s\n", timestamps.str("created", "Unknown"))
		fmt.Fprintf(&b, "- Updated: %s\n", timestamps.str("updated", "Unknown"))
		fmt.Fprintf(&b, "- Accessed: %s\n\n", timestamps.str("accessed", "Unknown"))
	}
	if result.has("featureStatus") {
		writeFeatures(&b, "**Features:**\n", result.obj("featureStatus"))
	}
	return b.String(), nil
}

func writeFeatures(b *strings.Builder, heading string, features object) {
	b.WriteString(heading)
	for _, name := range features.keys() {
		fmt.Fprintf(b, "- %s: %s\n", name, enabledDisabled(features.flag(name)))
	}
}

func (r *Registry) healthLive(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/health/live", nil, false)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("**Liveness Status: %s**\n\n**Timestamp:** %s\n**Message:** %s",
		strings.ToUpper(result.str("status", "unknown")),
		result.str("timestamp", "Unknown"),
		result.str("message", "No message")), nil
}

func (r *Registry) healthReady(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/health/ready", nil, false)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Readiness Status: %s**\n\n", strings.ToUpper(result.str("status", "unknown")))
	fmt.Fprintf(&b, "**Timestamp:** %s\n\n", result.str("timestamp", "Unknown"))
	if result.has("checks") {
		checks := result.obj("checks")
		b.WriteString("**Dependency Checks:**\n")
		for _, name := range checks.keys() {
			fmt.Fprintf(&b, "- **%s:** %s\n", name, checks.str(name, ""))
		}
	}
	return b.String(), nil
}

func (r *Registry) healthSimple(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/health/simple", nil, false)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("**Simple Health Check: %s**\n\n**Message:** %s\n**Dependencies:** %s",
		strings.ToUpper(result.str("status", "unknown")),
		result.str("message", "No message"),
		joinValues(result.list("dependencies"))), nil
}

func (r *Registry) healthConfig(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/health/config", nil, false)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("**Configuration Health Check: %s**\n\n**Message:** %s\n**Dependencies:** %s\n**Cosmos Config Available:** %s",
		strings.ToUpper(result.str("status", "unknown")),
		result.str("message", "No message"),
		joinValues(result.list("dependencies")),
		yesNo(result.flag("cosmosConfigExists"))), nil
}

func (r *Registry) healthService(ctx context.Context, _ Args) (string, error) {
	result, err := r.get(ctx, "/api/health/service", nil, false)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("**Service Health Check: %s**\n\n**Message:** %s\n**Dependencies:** %s\n**Health Service Available:** %s",
		strings.ToUpper(result.str("status", "unknown")),
		result.str("message", "No message"),
		joinValues(result.list("dependencies")),
		yesNo(result.flag("healthServiceExists"))), nil
}
