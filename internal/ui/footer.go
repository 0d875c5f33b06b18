package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashSeverity classifies a transient footer message
type FlashSeverity int

const (
	FlashInfo FlashSeverity = iota
	FlashSuccess
	FlashError
)

// FlashTimeoutMsg dismisses a flash message. Seq guards against a stale
// timer dismissing a newer flash.
type FlashTimeoutMsg struct {
	Seq int
}

// Footer represents the bottom footer bar with keybindings and transient
// flash messages
type Footer struct {
	width        int
	bindings     []KeyBinding
	chatFocused  bool // Whether the chat pane has focus
	loading      bool // Whether a reply is in flight
	blockFocused bool // Whether a code/diagram block is focused
	modalVisible bool // Whether a modal is open

	flashText     string
	flashSeverity FlashSeverity
	flashSeq      int
	flashActive   bool
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "alt+enter", Desc: "send"},
			{Key: "ctrl+o", Desc: "attach"},
			{Key: "ctrl+n", Desc: "new conversation"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(chatFocused, loading, blockFocused, modalVisible bool) {
	f.chatFocused = chatFocused
	f.loading = loading
	f.blockFocused = blockFocused
	f.modalVisible = modalVisible
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// Flash shows a transient message in place of the keybindings. The returned
// command schedules the dismissal tick.
func (f *Footer) Flash(severity FlashSeverity, text string) tea.Cmd {
	f.flashText = text
	f.flashSeverity = severity
	f.flashActive = true
	f.flashSeq++

	seq := f.flashSeq
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return FlashTimeoutMsg{Seq: seq}
	})
}

// HasFlash returns whether a flash message is currently shown
func (f *Footer) HasFlash() bool {
	return f.flashActive
}

// Update handles flash dismissal
func (f *Footer) Update(msg tea.Msg) {
	if timeout, ok := msg.(FlashTimeoutMsg); ok {
		if timeout.Seq == f.flashSeq {
			f.flashActive = false
			f.flashText = ""
		}
	}
}

func (f *Footer) flashStyle() lipgloss.Style {
	switch f.flashSeverity {
	case FlashSuccess:
		return FlashSuccessStyle
	case FlashError:
		return FlashErrorStyle
	default:
		return FlashInfoStyle
	}
}

func (f *Footer) flashIcon() string {
	switch f.flashSeverity {
	case FlashSuccess:
		return "✓"
	case FlashError:
		return "✕"
	default:
		return "ℹ"
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashActive {
		return FooterStyle.Width(f.width).Render(f.flashStyle().Render(f.flashIcon() + " " + f.flashText))
	}

	var parts []string

	if f.modalVisible {
		modalBindings := []KeyBinding{
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "cancel"},
		}
		for _, b := range modalBindings {
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	} else if f.blockFocused {
		blockBindings := []KeyBinding{
			{Key: "y", Desc: "copy"},
			{Key: "s", Desc: "toggle source"},
			{Key: "[/]", Desc: "next block"},
			{Key: "tab", Desc: "switch pane"},
		}
		for _, b := range blockBindings {
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	} else if f.chatFocused {
		chatBindings := []KeyBinding{
			{Key: "[/]", Desc: "focus block"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "tab", Desc: "switch pane"},
		}
		for _, b := range chatBindings {
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	} else if f.loading {
		loadingBindings := []KeyBinding{
			{Key: "alt+enter", Desc: "cancel"},
			{Key: "tab", Desc: "switch pane"},
		}
		for _, b := range loadingBindings {
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	} else {
		for _, b := range f.bindings {
			key := FooterKeyStyle.Render(b.Key)
			desc := FooterDescStyle.Render(": " + b.Desc)
			parts = append(parts, key+desc)
		}
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
