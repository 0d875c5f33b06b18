package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// NewConversationState - State for the new-conversation modal
// =============================================================================

// NewConversationState collects a conversation title and the theme to use.
// The app-layer handler reads the values on Enter.
type NewConversationState struct {
	form *huh.Form

	title string
	theme string
}

func (*NewConversationState) modalState() {}

func (s *NewConversationState) Title() string { return "New Conversation" }

func (s *NewConversationState) Help() string {
	return "tab: next field  enter: create  esc: cancel"
}

func (s *NewConversationState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *NewConversationState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// ConversationTitle returns the entered title.
func (s *NewConversationState) ConversationTitle() string {
	return s.title
}

// SelectedTheme returns the chosen theme name.
func (s *NewConversationState) SelectedTheme() string {
	return s.theme
}

// NewNewConversationState creates the new-conversation modal. themes maps
// theme identifiers to display names, in display order.
func NewNewConversationState(themeIDs, themeNames []string, currentTheme string) *NewConversationState {
	s := &NewConversationState{
		theme: currentTheme,
	}

	themeOptions := make([]huh.Option[string], len(themeIDs))
	for i := range themeIDs {
		themeOptions[i] = huh.NewOption(themeNames[i], themeIDs[i])
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Placeholder("e.g., Weekly planning").
			CharLimit(ModalInputCharLimit).
			Value(&s.title),
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.theme),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth)

	initHuhForm(s.form)
	return s
}
