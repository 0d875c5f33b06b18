package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ahollic/parley/internal/chat"
	"github.com/ahollic/parley/internal/render"
)

// Chat is the transcript panel: a viewport over the rendered messages.
// Code and diagram segments are backed by persistent components keyed by
// message and position, so diagram components survive re-renders and
// their re-render gate holds.
type Chat struct {
	viewport viewport.Model

	width   int
	height  int
	focused bool

	messages []chat.Message

	engine         render.DiagramEngine
	diagramTimeout time.Duration
	notify         bool

	codeBlocks map[string]*CodeBlock
	diagrams   map[string]*Diagram

	// blockOrder lists focusable block keys in display order
	blockOrder []string
	focusIdx   int // index into blockOrder, -1 when no block is focused
}

// NewChat creates a transcript panel rendering diagrams through engine.
func NewChat(engine render.DiagramEngine, diagramTimeout time.Duration) *Chat {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &Chat{
		viewport:       vp,
		engine:         engine,
		diagramTimeout: diagramTimeout,
		codeBlocks:     make(map[string]*CodeBlock),
		diagrams:       make(map[string]*Diagram),
		focusIdx:       -1,
	}
}

// SetSize sets the panel dimensions.
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	innerWidth := width - BorderSize
	innerHeight := height - BorderSize
	if innerHeight < 1 {
		innerHeight = 1
	}
	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(innerHeight)

	for _, cb := range c.codeBlocks {
		cb.SetWidth(innerWidth)
	}
	for _, d := range c.diagrams {
		d.SetWidth(innerWidth)
	}
	c.updateContent()
}

// SetFocused sets keyboard focus on the transcript.
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if !focused {
		c.clearBlockFocus()
		c.updateContent()
	}
}

// IsFocused returns the focus state.
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetNotify enables failure notifications on all diagram components.
func (c *Chat) SetNotify(enabled bool) {
	c.notify = enabled
	for _, d := range c.diagrams {
		d.SetNotify(enabled)
	}
}

// Messages returns the current transcript.
func (c *Chat) Messages() []chat.Message {
	return c.messages
}

// SetMessages replaces the transcript and returns the render commands for
// any diagram whose input changed.
func (c *Chat) SetMessages(messages []chat.Message) tea.Cmd {
	c.messages = messages
	cmd := c.rebuildBlocks()
	c.updateContent()
	c.viewport.GotoBottom()
	return cmd
}

// AppendMessage adds one message to the transcript.
func (c *Chat) AppendMessage(msg chat.Message) tea.Cmd {
	return c.SetMessages(append(c.messages, msg))
}

// blockKey identifies a block component by message and position.
func blockKey(messageID string, index int) string {
	return fmt.Sprintf("%s#%d", messageID, index)
}

// rebuildBlocks walks the transcript and creates or updates the block
// components. Existing components are reused by key - that is what keeps
// a diagram's last-attempted state across transcript refreshes.
func (c *Chat) rebuildBlocks() tea.Cmd {
	var cmds []tea.Cmd
	live := make(map[string]bool)
	c.blockOrder = c.blockOrder[:0]

	innerWidth := c.viewport.Width()
	if innerWidth <= 0 {
		innerWidth = DefaultWrapWidth
	}

	for _, msg := range c.messages {
		for i, seg := range SplitSegments(msg.Content) {
			key := blockKey(msg.ID, i)
			switch seg.Kind {
			case SegmentCode:
				cb, ok := c.codeBlocks[key]
				if !ok {
					cb = NewCodeBlock(key, seg.Language, seg.Content, StaticIcon)
					c.codeBlocks[key] = cb
				} else {
					cb.Language = seg.Language
					cb.Source = seg.Content
				}
				cb.SetWidth(innerWidth)
				live[key] = true
				c.blockOrder = append(c.blockOrder, key)

			case SegmentDiagram:
				d, ok := c.diagrams[key]
				if !ok {
					d = NewDiagram(key, c.engine, c.diagramTimeout)
					d.SetNotify(c.notify)
					c.diagrams[key] = d
				}
				d.SetWidth(innerWidth)
				d.SetSource(seg.Content)
				if cmd := d.Render(); cmd != nil {
					cmds = append(cmds, cmd)
				}
				live[key] = true
				c.blockOrder = append(c.blockOrder, key)
			}
		}
	}

	// Drop components whose message disappeared (new conversation)
	for key := range c.codeBlocks {
		if !live[key] {
			delete(c.codeBlocks, key)
		}
	}
	for key := range c.diagrams {
		if !live[key] {
			delete(c.diagrams, key)
		}
	}
	if c.focusIdx >= len(c.blockOrder) {
		c.clearBlockFocus()
	}

	return tea.Batch(cmds...)
}

// clearBlockFocus removes focus from every block.
func (c *Chat) clearBlockFocus() {
	c.focusIdx = -1
	for _, cb := range c.codeBlocks {
		cb.SetFocused(false)
	}
	for _, d := range c.diagrams {
		d.SetFocused(false)
	}
}

// cycleBlockFocus moves block focus by delta through the display order,
// wrapping at the ends.
func (c *Chat) cycleBlockFocus(delta int) {
	if len(c.blockOrder) == 0 {
		return
	}

	next := c.focusIdx + delta
	if c.focusIdx == -1 {
		if delta > 0 {
			next = 0
		} else {
			next = len(c.blockOrder) - 1
		}
	}
	next = (next + len(c.blockOrder)) % len(c.blockOrder)

	c.clearBlockFocus()
	c.focusIdx = next

	key := c.blockOrder[next]
	if cb, ok := c.codeBlocks[key]; ok {
		cb.SetFocused(true)
	}
	if d, ok := c.diagrams[key]; ok {
		d.SetFocused(true)
	}
}

// FocusedBlockKey returns the key of the focused block, or "".
func (c *Chat) FocusedBlockKey() string {
	if c.focusIdx < 0 || c.focusIdx >= len(c.blockOrder) {
		return ""
	}
	return c.blockOrder[c.focusIdx]
}

// Update routes messages to the viewport and the block components.
func (c *Chat) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if key, isKey := msg.(tea.KeyPressMsg); isKey && c.focused {
		switch key.String() {
		case "[":
			c.cycleBlockFocus(-1)
			c.updateContent()
			return nil
		case "]":
			c.cycleBlockFocus(1)
			c.updateContent()
			return nil
		}
	}

	// Components filter by their own ID and focus, so every message is
	// forwarded to all of them
	refresh := false
	for _, cb := range c.codeBlocks {
		if cmd := cb.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	for _, d := range c.diagrams {
		if cmd := d.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch msg.(type) {
	case DiagramResultMsg, CopyTimeoutMsg, tea.KeyPressMsg:
		refresh = true
	}
	if refresh {
		c.updateContent()
	}

	if c.focused {
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return tea.Batch(cmds...)
}

// renderMessage renders one message: identity header plus segments.
func (c *Chat) renderMessage(msg chat.Message) string {
	var b strings.Builder

	width := c.viewport.Width()
	if width <= 0 {
		width = DefaultWrapWidth
	}

	name := "You"
	nameStyle := ChatUserStyle
	if msg.Role == chat.RoleAssistant {
		name = "Assistant"
		nameStyle = ChatAssistantStyle
	}
	if msg.Author != nil && msg.Author.Name != "" {
		name = msg.Author.Name
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		RenderAvatar(msg.Author, AvatarSmall),
		" ",
		nameStyle.Render(name),
	)
	b.WriteString(header)
	b.WriteString("\n")

	for i, seg := range SplitSegments(msg.Content) {
		key := blockKey(msg.ID, i)
		switch seg.Kind {
		case SegmentText:
			b.WriteString(RenderText(seg.Content, width))
		case SegmentCode:
			if cb, ok := c.codeBlocks[key]; ok {
				b.WriteString(cb.View())
			}
		case SegmentDiagram:
			if d, ok := c.diagrams[key]; ok {
				b.WriteString(d.View())
			}
		}
		b.WriteString("\n")
	}

	if len(msg.Attachments) > 0 {
		chips := make([]string, 0, len(msg.Attachments))
		for _, a := range msg.Attachments {
			chips = append(chips, AttachmentChipStyle.Render(
				fmt.Sprintf("%s %s", a.Kind.Icon(), a.Name)))
		}
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n")
	}

	return b.String()
}

// updateContent re-renders the transcript into the viewport.
func (c *Chat) updateContent() {
	var b strings.Builder
	for i, msg := range c.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.renderMessage(msg))
	}
	c.viewport.SetContent(b.String())
}

// View renders the bordered transcript panel.
func (c *Chat) View() string {
	style := PanelStyle
	if c.focused {
		style = PanelFocusedStyle
	}
	return style.Width(c.width - BorderSize).Render(c.viewport.View())
}
