package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const unknownDate = "Unknown"

func (r *Registry) exportTools() []Tool {
	return []Tool{
		{
			Definition: mcp.NewTool("list_exports",
				mcp.WithDescription("List available exports for a tenant."),
				mcp.WithString("tenant_id",
					mcp.Required(),
					mcp.Description("Tenant ID"),
				),
				mcp.WithString("date",
					mcp.Description("Export date filter"),
				),
			),
			Category: CategoryExport,
			Failure:  "List exports failed",
			Handler:  r.listExports,
		},
	}
}

func (r *Registry) listExports(ctx context.Context, args Args) (string, error) {
	tenantID, err := args.RequireString("tenant_id")
	if err != nil {
		return "", err
	}

	query := map[string]any{"tenantId": tenantID}
	date := ""
	if args.Has("date") {
		date = args.String("date", "")
		query["date"] = date
	}

	raw, err := r.backend.Get(ctx, "/api/listexportsfunction", query, false)
	if err != nil {
		return "", err
	}
	exports, ok := raw.([]any)
	if !ok {
		return "Unexpected response format for exports list", nil
	}

	if len(exports) == 0 {
		filter := ""
		if args.Has("date") {
			filter = " for date " + date
		}
		return fmt.Sprintf("No exports found for tenant: %s%s", tenantID, filter), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Available Exports for Tenant: %s**\n\n", tenantID)
	if args.Has("date") {
		fmt.Fprintf(&b, "**Date Filter:** %s\n\n", date)
	}
	fmt.Fprintf(&b, "**Total Export Files: %d**\n\n", len(exports))

	groups := make(map[string][]object)
	for _, item := range exports {
		export := asObject(item)
		day := exportDate(export.str("path", ""))
		groups[day] = append(groups[day], export)
	}

	days := make([]string, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		files := groups[day]
		fmt.Fprintf(&b, "**Date: %s** (%d files)\n", day, len(files))
		for _, export := range files {
			fmt.Fprintf(&b, "- **%s**\n", export.str("name", "Unknown"))
			fmt.Fprintf(&b, "  - Size: %s\n", fileSize(export["size"]))
			fmt.Fprintf(&b, "  - Modified: %s\n", export.str("lastModified", "Unknown"))
			fmt.Fprintf(&b, "  - URL: %s\n", export.str("url", "No URL"))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// exportDate returns the first YYYY-MM-DD shaped segment of a blob path.
func exportDate(path string) string {
	if !strings.Contains(path, "/") {
		return unknownDate
	}
	for _, part := range strings.Split(path, "/") {
		if len(part) == 10 && strings.Count(part, "-") == 2 {
			return part
		}
	}
	return unknownDate
}

func fileSize(v any) string {
	size, _ := toFloat(v)
	switch {
	case size > 1024*1024:
		return fmt.Sprintf("%.1f MB", size/(1024*1024))
	case size > 1024:
		return fmt.Sprintf("%.1f KB", size/1024)
	case v == nil:
		return "0 bytes"
	default:
		return render(v) + " bytes"
	}
}
