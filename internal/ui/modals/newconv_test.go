package modals

import (
	"strings"
	"testing"
)

func newTestConversationState() *NewConversationState {
	return NewNewConversationState(
		[]string{"dark-purple", "nord", "light"},
		[]string{"Dark Purple", "Nord", "Light"},
		"nord",
	)
}

func TestNewNewConversationState(t *testing.T) {
	state := newTestConversationState()

	if state == nil {
		t.Fatal("NewNewConversationState returned nil")
	}

	if state.ConversationTitle() != "" {
		t.Errorf("expected empty title initially, got %q", state.ConversationTitle())
	}

	if state.SelectedTheme() != "nord" {
		t.Errorf("expected theme to default to current theme 'nord', got %q", state.SelectedTheme())
	}
}

func TestNewConversationState_Title(t *testing.T) {
	state := newTestConversationState()
	if state.Title() != "New Conversation" {
		t.Errorf("expected title 'New Conversation', got %q", state.Title())
	}
}

func TestNewConversationState_Render(t *testing.T) {
	state := newTestConversationState()

	view := state.Render()
	if !strings.Contains(view, "New Conversation") {
		t.Error("render should contain the modal title")
	}
	if !strings.Contains(view, "esc") {
		t.Error("render should contain the help line")
	}
}

func TestNewConversationState_ImplementsModalState(t *testing.T) {
	var _ ModalState = newTestConversationState()
}
