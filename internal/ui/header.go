package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/lipgloss/v2"
)

// Header represents the top header bar
type Header struct {
	width        int
	conversation string
	themeName    string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConversation sets the conversation title to display
func (h *Header) SetConversation(title string) {
	h.conversation = title
}

// SetThemeName sets the theme name to display
func (h *Header) SetThemeName(name string) {
	h.themeName = name
}

// View renders the header
func (h *Header) View() string {
	// Build the content string (without styling)
	titleText := " parley"
	var rightText string
	if h.conversation != "" {
		rightText = h.conversation
		if h.themeName != "" {
			rightText += " (" + h.themeName + ")"
		}
		rightText += " "
	}

	// Calculate padding
	paddingLen := h.width - utf8.RuneCountInString(titleText) - utf8.RuneCountInString(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	// Render with gradient background
	return h.renderGradient(fullContent, h.themeName)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background.
// themeName is used to identify and mute the theme-name portion of the text.
func (h *Header) renderGradient(content string, themeName string) string {
	if len(content) == 0 {
		return ""
	}

	// Get colors from current theme
	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(theme.Bg)

	// Text color from theme
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	// Find where the theme-name portion starts (if present)
	themeStart := -1
	if themeName != "" {
		themeMarker := "(" + themeName + ")"
		themeStart = strings.Index(content, themeMarker)
	}

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		// Calculate interpolation factor (0.0 to 1.0)
		t := float64(i) / float64(width)

		// Interpolate colors
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		// Create color string
		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		// Determine if this character is in the theme-name portion
		inThemeName := themeStart >= 0 && i >= themeStart

		// Style for this character
		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < 7) // Bold for "parley" title

		if inThemeName {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
