package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ahollic/parley/internal/clipboard"
	"github.com/ahollic/parley/internal/logger"
	"github.com/ahollic/parley/internal/render"
)

// CopyIndicator selects how the copy control reacts after a copy.
type CopyIndicator int

const (
	// StaticIcon keeps the icon fixed and swaps the label ("copy" → "copied")
	StaticIcon CopyIndicator = iota
	// SwapIcon swaps the icon itself ("⧉" → "✓") with no label
	SwapIcon
)

const (
	copyIcon   = "⧉"
	copiedIcon = "✓"
)

// copyToClipboard is swapped out in tests so no real clipboard is touched.
var copyToClipboard = clipboard.Copy

// CopyTimeoutMsg reverts a copied indicator after the feedback window.
// Seq guards against stale timers: a rapid re-copy bumps the sequence, so
// the earlier tick arrives with an old Seq and is ignored. At most one
// revert is ever live.
type CopyTimeoutMsg struct {
	BlockID string
	Seq     int
}

// CopyFailedMsg reports a clipboard write that did not go through, so the
// failure can surface in the footer instead of dying in the log.
type CopyFailedMsg struct {
	BlockID string
	Err     error
}

// CodeBlock renders a fenced code block with a language header and a copy
// control. One component serves both indicator modes.
type CodeBlock struct {
	ID        string
	Language  string
	Source    string
	Indicator CopyIndicator

	focused bool
	copied  bool
	copySeq int
	width   int
}

// NewCodeBlock creates a code block component.
func NewCodeBlock(id, language, source string, indicator CopyIndicator) *CodeBlock {
	return &CodeBlock{
		ID:        id,
		Language:  language,
		Source:    source,
		Indicator: indicator,
		width:     DefaultWrapWidth,
	}
}

// SetWidth sets the render width.
func (c *CodeBlock) SetWidth(w int) {
	c.width = w
}

// SetFocused sets keyboard focus; only a focused block reacts to "y".
func (c *CodeBlock) SetFocused(focused bool) {
	c.focused = focused
}

// Focused reports whether the block has keyboard focus.
func (c *CodeBlock) Focused() bool {
	return c.focused
}

// Copied reports whether the copied indicator is currently showing.
func (c *CodeBlock) Copied() bool {
	return c.copied
}

// Update handles key presses and feedback timer expiry.
func (c *CodeBlock) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if c.focused && msg.String() == "y" {
			return c.Copy()
		}

	case CopyTimeoutMsg:
		if msg.BlockID == c.ID && msg.Seq == c.copySeq {
			c.copied = false
		}
	}
	return nil
}

// Copy writes the raw source to the clipboard and starts the feedback
// window. The returned command delivers the revert tick.
func (c *CodeBlock) Copy() tea.Cmd {
	if err := copyToClipboard(c.Source); err != nil {
		logger.ComponentLogger("CodeBlock").Warn("copy failed", "blockID", c.ID, "error", err)
		id := c.ID
		return func() tea.Msg { return CopyFailedMsg{BlockID: id, Err: err} }
	}

	c.copied = true
	c.copySeq++
	seq := c.copySeq
	id := c.ID
	return tea.Tick(CopyFeedbackDuration, func(time.Time) tea.Msg {
		return CopyTimeoutMsg{BlockID: id, Seq: seq}
	})
}

// copyControl renders the copy indicator for the current mode and state.
func (c *CodeBlock) copyControl() string {
	switch c.Indicator {
	case SwapIcon:
		if c.copied {
			return CodeBlockCopiedStyle.Render(copiedIcon)
		}
		return copyIcon
	default:
		if c.copied {
			return CodeBlockCopiedStyle.Render(copyIcon + " copied")
		}
		return copyIcon + " copy"
	}
}

// View renders the header and the highlighted source.
func (c *CodeBlock) View() string {
	lang := c.Language
	if lang == "" {
		lang = "text"
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		CodeBlockLangStyle.Render(lang),
		CodeBlockHeaderStyle.Render(" "+c.copyControl()),
	)

	body := render.Highlight(c.Source, c.Language, CurrentTheme().ChromaStyle)
	body = strings.TrimRight(body, "\n")

	block := header + "\n" + body
	if c.focused {
		return CodeBlockFocusedStyle.Width(c.width - BorderSize).Render(block)
	}
	return block
}
