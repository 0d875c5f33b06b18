package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/ahollic/parley/internal/keys"
	"github.com/ahollic/parley/internal/logger"
	"github.com/ahollic/parley/internal/ui"
	"github.com/ahollic/parley/internal/ui/modals"
)

// handleModalKey routes modal key events to the appropriate handler based on
// modal state type.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.WelcomeState:
		return m.handleWelcomeModal(key)
	case *modals.AttachState:
		return m.handleAttachModal(key, msg)
	case *modals.NewConversationState:
		return m.handleNewConversationModal(key, msg, s)
	}

	// Default: forward to the modal state
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// handleWelcomeModal handles key events for the welcome modal.
func (m *Model) handleWelcomeModal(key string) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Enter, keys.Escape:
		// Mark welcome as shown and save
		m.config.MarkWelcomeShown()
		if err := m.config.Save(); err != nil {
			logger.Warn("App: failed to save welcome-shown flag: %v", err)
		}
		m.modal.Hide()
	}
	return m, nil
}

// handleAttachModal handles key events for the attach-file modal. Selection
// is reported by the picker itself via FilePickedMsg.
func (m *Model) handleAttachModal(key string, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key == keys.Escape {
		m.modal.Hide()
		return m, nil
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// handleNewConversationModal handles key events for the new-conversation form.
func (m *Model) handleNewConversationModal(key string, msg tea.KeyPressMsg, state *modals.NewConversationState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil

	case keys.Enter:
		title := strings.TrimSpace(state.ConversationTitle())
		if title == "" {
			title = "New conversation"
		}
		return m.startConversation(title, state.SelectedTheme())
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// startConversation clears the transcript and applies the chosen theme.
func (m *Model) startConversation(title, themeName string) (tea.Model, tea.Cmd) {
	m.modal.Hide()

	if themeName != "" && themeName != string(ui.CurrentThemeName()) {
		ui.SetThemeByName(themeName)
		m.config.SetTheme(themeName)
		if err := m.config.Save(); err != nil {
			logger.Warn("App: failed to save theme: %v", err)
		}
	}
	m.header.SetThemeName(string(ui.CurrentThemeName()))

	m.conversationTitle = title
	m.header.SetConversation(title)

	// Abandon any in-flight reply along with the old transcript
	m.replySeq++
	m.loading = false
	m.composer.SetLoading(false)
	m.attachments = nil
	m.composer.SetAttachments(nil)
	m.composer.Reset()

	cmds := []tea.Cmd{
		m.chat.SetMessages(nil),
		m.footer.Flash(ui.FlashSuccess, "started "+title),
	}

	m.updateSizes()
	return m, tea.Batch(cmds...)
}
