package ui

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ahollic/parley/internal/chat"
	"github.com/ahollic/parley/internal/keys"
)

// Messages the composer emits. The composer never mutates conversation
// state itself; the owner of attachments, the loading flag and the
// drop-target flag reacts to these.
type (
	// SendMsg asks the owner to send the current draft.
	SendMsg struct {
		Content string
	}

	// CancelMsg asks the owner to cancel the in-flight reply.
	CancelMsg struct{}

	// NewConversationMsg asks the owner to start a fresh conversation.
	NewConversationMsg struct{}

	// AttachRequestMsg asks the owner to open the file picker.
	AttachRequestMsg struct{}

	// RemoveAttachmentMsg asks the owner to drop one attachment.
	RemoveAttachmentMsg struct {
		Index int
	}

	// FileDroppedMsg carries a path pasted into the terminal that points
	// at an existing file - the drag-and-drop analog.
	FileDroppedMsg struct {
		Path string
	}

	// DraftChangedMsg reports that the draft text changed.
	DraftChangedMsg struct {
		Content string
	}
)

// fileExists is swapped out in tests.
var fileExists = func(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Composer is the message input: a growing textarea with an attachment
// row and a hint line. All conversation state is owned by the caller and
// mirrored in via the setters.
type Composer struct {
	input textarea.Model

	attachments []chat.Attachment
	loading     bool
	dropTarget  bool
	focused     bool
	width       int
}

// NewComposer creates a composer with an empty draft.
func NewComposer() *Composer {
	ti := textarea.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 0
	ti.SetHeight(ComposerMinHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	return &Composer{
		input: ti,
		width: DefaultWrapWidth,
	}
}

// SetWidth sets the outer width; the textarea gets the inner width.
func (c *Composer) SetWidth(width int) {
	c.width = width
	c.input.SetWidth(width - BorderSize - InputPaddingWidth)
}

// Height returns the current outer height in lines.
func (c *Composer) Height() int {
	h := c.input.Height() + TextareaBorderHeight + HintRowHeight
	if len(c.attachments) > 0 {
		h += AttachmentRowHeight
	}
	return h
}

// SetFocused sets keyboard focus on the textarea.
func (c *Composer) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// Focused reports whether the textarea has focus.
func (c *Composer) Focused() bool {
	return c.focused
}

// SetAttachments mirrors the owner's attachment list into the composer.
func (c *Composer) SetAttachments(attachments []chat.Attachment) {
	c.attachments = attachments
	c.resize()
}

// SetLoading mirrors the owner's loading flag. When loading ends the
// textarea regains focus so the user can keep typing.
func (c *Composer) SetLoading(loading bool) {
	wasLoading := c.loading
	c.loading = loading
	if wasLoading && !loading && c.focused {
		c.input.Focus()
	}
}

// SetDropTarget mirrors the owner's drop-target flag; it only changes the
// border treatment and hint, never behavior.
func (c *Composer) SetDropTarget(active bool) {
	c.dropTarget = active
}

// Value returns the raw draft text.
func (c *Composer) Value() string {
	return c.input.Value()
}

// SetValue replaces the draft text.
func (c *Composer) SetValue(value string) {
	c.input.SetValue(value)
	c.resize()
}

// Reset clears the draft.
func (c *Composer) Reset() {
	c.input.Reset()
	c.resize()
}

// CanSubmit reports whether activation would send: the trimmed draft is
// non-empty or at least one attachment is staged.
func (c *Composer) CanSubmit() bool {
	return strings.TrimSpace(c.input.Value()) != "" || len(c.attachments) > 0
}

// resize grows or shrinks the visible textarea with its content, clamped
// to the min/max heights. Past the max the textarea scrolls internally.
func (c *Composer) resize() {
	lines := c.input.LineCount()
	if lines < ComposerMinHeight {
		lines = ComposerMinHeight
	}
	if lines > ComposerMaxHeight {
		lines = ComposerMaxHeight
	}
	c.input.SetHeight(lines)
}

// Update handles key presses and paste events.
func (c *Composer) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.AltEnter, keys.CtrlEnter:
			// Activation never reaches the textarea
			if c.loading {
				return func() tea.Msg { return CancelMsg{} }
			}
			if c.CanSubmit() {
				content := c.input.Value()
				return func() tea.Msg { return SendMsg{Content: content} }
			}
			return nil

		case keys.CtrlO:
			return func() tea.Msg { return AttachRequestMsg{} }

		case keys.CtrlN:
			return func() tea.Msg { return NewConversationMsg{} }

		case keys.Backspace:
			// With an empty draft, backspace pops the newest attachment
			if c.focused && c.input.Value() == "" && len(c.attachments) > 0 {
				index := len(c.attachments) - 1
				return func() tea.Msg { return RemoveAttachmentMsg{Index: index} }
			}
		}

	case tea.PasteMsg:
		// A pasted existing-file path is a drop, not text
		path := strings.TrimSpace(msg.Content)
		if path != "" && fileExists(path) {
			return func() tea.Msg { return FileDroppedMsg{Path: path} }
		}
	}

	if !c.focused {
		return nil
	}

	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.resize()

	if after := c.input.Value(); after != before {
		draft := after
		return tea.Batch(cmd, func() tea.Msg { return DraftChangedMsg{Content: draft} })
	}
	return cmd
}

// attachmentRow renders one chip per staged attachment.
func (c *Composer) attachmentRow() string {
	chips := make([]string, 0, len(c.attachments))
	for _, a := range c.attachments {
		label := fmt.Sprintf("%s %s (%s)", a.Kind.Icon(), a.Name, chat.FormatSize(a.Size))
		chips = append(chips, AttachmentChipStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(chips, " "))
}

// hint renders the helper line under the textarea.
func (c *Composer) hint() string {
	if c.dropTarget {
		return ComposerHintStyle.Render("drop file to attach")
	}
	if c.loading {
		return ComposerHintStyle.Render("alt+enter to cancel")
	}
	return ComposerHintStyle.Render(
		fmt.Sprintf("alt+enter to send · ctrl+o to attach · %s up to %s",
			chat.AcceptedTypesHint, chat.FormatSize(chat.MaxAttachmentBytes)))
}

// View renders the attachment row, the bordered textarea and the hint.
func (c *Composer) View() string {
	style := ComposerStyle
	switch {
	case c.dropTarget:
		style = ComposerDropTargetStyle
	case c.focused:
		style = ComposerFocusedStyle
	}

	var b strings.Builder
	if len(c.attachments) > 0 {
		b.WriteString(c.attachmentRow())
		b.WriteString("\n")
	}
	b.WriteString(style.Width(c.width - BorderSize).Render(c.input.View()))
	b.WriteString("\n")
	b.WriteString(c.hint())
	return b.String()
}
