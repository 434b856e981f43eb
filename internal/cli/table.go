package cli

import (
	"fmt"
	"io"
	"strings"

	"vaults-mcp/internal/color"
	"vaults-mcp/internal/tools"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	columnGap           = "  "
	maxDescriptionWidth = 60
)

// RenderToolTable prints the catalog as an aligned table, one tool per row.
func RenderToolTable(w io.Writer, list []tools.Tool) {
	if len(list) == 0 {
		fmt.Fprintln(w, color.MutedStyle.Render("No tools found"))
		return
	}

	headers := []string{"NAME", "CATEGORY", "AUTH", "DESCRIPTION"}
	rows := make([][]string, 0, len(list))
	for _, tool := range list {
		auth := "-"
		if tool.RequiresAuth {
			auth = "key"
		}
		rows = append(rows, []string{
			tool.Name(),
			string(tool.Category),
			auth,
			runewidth.Truncate(firstLine(tool.Definition.Description), maxDescriptionWidth, "..."),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	styles := []lipgloss.Style{color.NameStyle, color.CategoryStyle, color.AuthStyle, lipgloss.NewStyle()}

	fmt.Fprintln(w, renderRow(headers, widths, func(int) lipgloss.Style { return color.HeaderStyle }))
	fmt.Fprintln(w, color.BorderStyle.Render(strings.Repeat("─", totalWidth(widths))))
	for _, row := range rows {
		fmt.Fprintln(w, renderRow(row, widths, func(i int) lipgloss.Style { return styles[i] }))
	}
	fmt.Fprintln(w, color.MutedStyle.Render(fmt.Sprintf("\n%d tools", len(rows))))
}

// renderRow pads before styling so escape codes do not count towards the width.
func renderRow(cells []string, widths []int, style func(int) lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i < len(cells)-1 {
			cell = runewidth.FillRight(cell, widths[i])
		}
		parts[i] = style(i).Render(cell)
	}
	return strings.Join(parts, columnGap)
}

func totalWidth(widths []int) int {
	total := runewidth.StringWidth(columnGap) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return total
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
