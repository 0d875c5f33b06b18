package modals

import (
	"os"

	"charm.land/bubbles/v2/filepicker"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FilePickedMsg is sent when the user selects a file in the attach modal.
type FilePickedMsg struct {
	Path string
}

// =============================================================================
// AttachState - State for the attach-file modal
// =============================================================================

// AttachState wraps a bubbles filepicker. Every open constructs a fresh
// state (and a fresh picker), so picking the same file twice in a row
// still emits a FilePickedMsg both times.
type AttachState struct {
	picker filepicker.Model
}

func (*AttachState) modalState() {}

func (s *AttachState) Title() string { return "Attach File" }

func (s *AttachState) Help() string {
	return "↑/↓ navigate  enter: select  esc: cancel"
}

func (s *AttachState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.picker.View(), help)
}

func (s *AttachState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.picker, cmd = s.picker.Update(msg)

	if didSelect, path := s.picker.DidSelectFile(msg); didSelect {
		selected := path
		return s, func() tea.Msg { return FilePickedMsg{Path: selected} }
	}

	return s, cmd
}

// NewAttachState creates a fresh attach modal. The returned command starts
// the picker's directory read and must be dispatched by the caller.
func NewAttachState() (*AttachState, tea.Cmd) {
	fp := filepicker.New()
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	s := &AttachState{picker: fp}
	return s, fp.Init()
}
