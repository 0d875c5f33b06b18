package app

import (
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/ahollic/parley/internal/chat"
	"github.com/ahollic/parley/internal/keys"
	"github.com/ahollic/parley/internal/logger"
	"github.com/ahollic/parley/internal/notification"
	"github.com/ahollic/parley/internal/ui"
	"github.com/ahollic/parley/internal/ui/modals"
)

// statFile is swapped out in tests
var statFile = os.Stat

// Update handles messages. This is the core Bubble Tea update function that
// routes all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		return m, nil

	case tea.PasteStartMsg:
		// A bracketed paste is the terminal analog of dragging a file over
		// the composer; light up the drop target until it completes
		if m.focus == FocusComposer && !m.modal.IsVisible() {
			m.composer.SetDropTarget(true)
		}

	case tea.PasteEndMsg:
		m.composer.SetDropTarget(false)

	case tea.KeyPressMsg:
		if model, cmd := m.handleKeyPress(msg); model != nil {
			return model, cmd
		}
		// Not handled here; fall through to the focused panel

	case StartupModalMsg:
		return m.handleStartupModals()

	case AssistantReplyMsg:
		return m.handleAssistantReply(msg)

	case ui.SendMsg:
		return m.handleSend(msg)

	case ui.CancelMsg:
		return m.handleCancel()

	case ui.AttachRequestMsg:
		return m.openAttachModal()

	case ui.NewConversationMsg:
		return m.openNewConversationModal()

	case ui.RemoveAttachmentMsg:
		return m.handleRemoveAttachment(msg)

	case ui.FileDroppedMsg:
		m.composer.SetDropTarget(false)
		return m.addAttachment(msg.Path)

	case ui.DraftChangedMsg:
		// The textarea may have grown or shrunk
		m.updateSizes()
		return m, nil

	case modals.FilePickedMsg:
		m.modal.Hide()
		return m.addAttachment(msg.Path)

	case ui.CopyFailedMsg:
		return m, m.footer.Flash(ui.FlashError, "copy failed")

	case ui.FlashTimeoutMsg:
		m.footer.Update(msg)
		return m, nil
	}

	// Update modal
	if m.modal.IsVisible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Transcript components need ticks and render results regardless of focus
	if cmd := m.chat.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	// The composer owns cursor blink and paste handling
	if cmd := m.composer.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.updateSizes()

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should
// fall through to the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	logger.Log("App: KeyPressMsg key=%q focus=%v modalVisible=%v", key, m.focus, m.modal.IsVisible())

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// Handle ctrl+c specially - always quits
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	// Tab switches between composer and transcript
	if key == keys.Tab {
		if m.focus == FocusComposer {
			m.setFocus(FocusChat)
		} else {
			m.setFocus(FocusComposer)
		}
		return m, nil
	}

	// Escape returns to the composer from the transcript
	if key == keys.Escape && m.focus == FocusChat {
		m.setFocus(FocusComposer)
		return m, nil
	}

	// Route to focused panel
	if m.focus == FocusChat {
		cmd := m.chat.Update(msg)
		return m, cmd
	}
	cmd := m.composer.Update(msg)
	m.updateSizes()
	return m, cmd
}

// handleStartupModals shows the welcome modal on first run
func (m *Model) handleStartupModals() (tea.Model, tea.Cmd) {
	if !m.config.HasSeenWelcome() {
		m.modal.Show(modals.NewWelcomeState())
	}
	return m, nil
}

// handleSend appends the user message and requests a reply
func (m *Model) handleSend(msg ui.SendMsg) (tea.Model, tea.Cmd) {
	userMsg := chat.NewMessage(chat.RoleUser, msg.Content)
	userMsg.Attachments = m.attachments

	m.attachments = nil
	m.composer.Reset()
	m.composer.SetAttachments(nil)

	cmds := []tea.Cmd{m.chat.AppendMessage(userMsg)}

	if m.responder != nil {
		m.loading = true
		m.composer.SetLoading(true)
		m.replySeq++
		seq := m.replySeq

		transcript := m.chat.Messages()
		responder := m.responder
		cmds = append(cmds, func() tea.Msg {
			return AssistantReplyMsg{
				Seq:     seq,
				Message: responder.Reply(userMsg, transcript),
			}
		})
	}

	m.updateSizes()
	return m, tea.Batch(cmds...)
}

// handleCancel abandons the in-flight reply
func (m *Model) handleCancel() (tea.Model, tea.Cmd) {
	if !m.loading {
		return m, nil
	}

	// The stale sequence makes the eventual reply a no-op
	m.replySeq++
	m.loading = false
	m.composer.SetLoading(false)

	return m, m.footer.Flash(ui.FlashInfo, "reply canceled")
}

// handleAssistantReply appends a responder reply unless it went stale
func (m *Model) handleAssistantReply(msg AssistantReplyMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.replySeq || !m.loading {
		logger.Log("App: discarding stale reply seq=%d current=%d", msg.Seq, m.replySeq)
		return m, nil
	}

	m.loading = false
	m.composer.SetLoading(false)

	cmds := []tea.Cmd{m.chat.AppendMessage(msg.Message)}

	if m.config.GetNotificationsEnabled() && !m.windowFocused {
		title := m.conversationTitle
		if title == "" {
			title = "Conversation"
		}
		cmds = append(cmds, func() tea.Msg {
			notification.ReplyReceived(title)
			return nil
		})
	}

	m.updateSizes()
	return m, tea.Batch(cmds...)
}

// openAttachModal shows a fresh file picker
func (m *Model) openAttachModal() (tea.Model, tea.Cmd) {
	state, cmd := modals.NewAttachState()
	m.modal.Show(state)
	return m, cmd
}

// openNewConversationModal shows the new-conversation form
func (m *Model) openNewConversationModal() (tea.Model, tea.Cmd) {
	names := ui.ThemeNames()
	ids := make([]string, len(names))
	display := make([]string, len(names))
	for i, name := range names {
		ids[i] = string(name)
		display[i] = ui.GetTheme(name).Name
	}

	m.modal.Show(modals.NewNewConversationState(ids, display, string(ui.CurrentThemeName())))
	return m, nil
}

// handleRemoveAttachment drops one pending attachment
func (m *Model) handleRemoveAttachment(msg ui.RemoveAttachmentMsg) (tea.Model, tea.Cmd) {
	if msg.Index < 0 || msg.Index >= len(m.attachments) {
		return m, nil
	}
	m.attachments = append(m.attachments[:msg.Index], m.attachments[msg.Index+1:]...)
	m.composer.SetAttachments(m.attachments)
	m.updateSizes()
	return m, nil
}

// addAttachment appends a file to the pending attachments. Selection always
// appends; picking the same file twice yields two chips.
func (m *Model) addAttachment(path string) (tea.Model, tea.Cmd) {
	info, err := statFile(path)
	if err != nil {
		logger.Warn("App: cannot attach %s: %v", path, err)
		return m, m.footer.Flash(ui.FlashError, "cannot attach "+path)
	}

	m.attachments = append(m.attachments, chat.NewAttachment(path, info.Size()))
	m.composer.SetAttachments(m.attachments)
	m.updateSizes()
	return m, nil
}
