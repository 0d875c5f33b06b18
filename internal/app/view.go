package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ahollic/parley/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}

	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.composer.SetWidth(m.width)

	chatHeight := m.height - ui.HeaderHeight - ui.FooterHeight - m.composer.Height()
	if chatHeight < 1 {
		chatHeight = 1
	}
	m.chat.SetSize(m.width, chatHeight)
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Update footer context for conditional bindings
	chatFocused := m.focus == FocusChat
	blockFocused := m.chat.FocusedBlockKey() != ""
	m.footer.SetContext(chatFocused, m.loading, blockFocused, m.modal.IsVisible())

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.chat.View(),
		m.composer.View(),
		m.footer.View(),
	)

	// Overlay modal if visible
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	return view
}
