package modals

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderSelectableList renders a simple list with selection highlighting.
// Returns the rendered list string. selectedIndex indicates which item is selected.
func RenderSelectableList(items []string, selectedIndex int) string {
	var result strings.Builder
	for i, item := range items {
		style := ListItemStyle
		prefix := "  "
		if i == selectedIndex {
			style = ListSelectedStyle
			prefix = "> "
		}
		result.WriteString(style.Render(prefix+item) + "\n")
	}
	return result.String()
}

// TruncatePath truncates a path from the beginning with ellipsis.
// Widths are display columns, so CJK characters count double.
func TruncatePath(path string, maxLen int) string {
	if runewidth.StringWidth(path) <= maxLen {
		return path
	}
	return "..." + runewidth.TruncateLeft(path, runewidth.StringWidth(path)-maxLen+3, "")
}

// TruncateString truncates a string from the end with ellipsis
func TruncateString(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	return runewidth.Truncate(s, maxLen, "...")
}
