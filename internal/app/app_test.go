package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/ahollic/parley/internal/chat"
	"github.com/ahollic/parley/internal/config"
	"github.com/ahollic/parley/internal/render"
	"github.com/ahollic/parley/internal/ui"
	"github.com/ahollic/parley/internal/ui/modals"
)

// fakeEngine renders every diagram instantly.
type fakeEngine struct{}

func (fakeEngine) Name() string { return "fake" }

func (fakeEngine) Render(_ context.Context, _, _ string, _ render.Options) (string, error) {
	return "<svg/>", nil
}

// stubResponder replies with fixed content.
type stubResponder struct {
	content string
}

func (r stubResponder) Reply(_ chat.Message, _ []chat.Message) chat.Message {
	reply := chat.NewMessage(chat.RoleAssistant, r.content)
	reply.Author = &chat.Identity{Name: "Assistant"}
	return reply
}

func testConfig() *config.Config {
	return &config.Config{
		Theme:              "dark-purple",
		DiagramCommand:     "mmdc",
		DiagramTimeoutSecs: 30,
		LogLevel:           "info",
		WelcomeShown:       true,
	}
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(testConfig(), "test", fakeEngine{}, stubResponder{content: "reply text"})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// collectMsgs executes a command tree and returns the produced messages.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func tempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func keyPress(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func TestNew_StartsOnComposer(t *testing.T) {
	m := newTestModel(t)

	if m.focus != FocusComposer {
		t.Error("expected initial focus on composer")
	}
	if m.IsLoading() {
		t.Error("expected no reply in flight initially")
	}
}

func TestStartupShowsWelcomeOnFirstRun(t *testing.T) {
	cfg := testConfig()
	cfg.WelcomeShown = false
	m := New(cfg, "test", fakeEngine{}, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.Update(StartupModalMsg{})

	if !m.modal.IsVisible() {
		t.Fatal("welcome modal should be visible on first run")
	}
	if _, ok := m.modal.State.(*modals.WelcomeState); !ok {
		t.Fatalf("expected WelcomeState, got %T", m.modal.State)
	}

	m.Update(keyPress(tea.KeyEnter, ""))

	if m.modal.IsVisible() {
		t.Error("welcome modal should close on enter")
	}
	if !cfg.HasSeenWelcome() {
		t.Error("welcome-shown flag should be set")
	}
}

func TestStartupSkipsWelcomeWhenSeen(t *testing.T) {
	m := newTestModel(t)

	m.Update(StartupModalMsg{})

	if m.modal.IsVisible() {
		t.Error("welcome modal should not show when already seen")
	}
}

func TestSendAppendsUserMessageAndRepliesAsync(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(ui.SendMsg{Content: "hello there"})

	if !m.IsLoading() {
		t.Error("expected loading while reply is in flight")
	}
	msgs := m.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != chat.RoleUser || msgs[0].Content != "hello there" {
		t.Errorf("unexpected user message: %+v", msgs[0])
	}

	var reply *AssistantReplyMsg
	for _, msg := range collectMsgs(cmd) {
		if r, ok := msg.(AssistantReplyMsg); ok {
			reply = &r
		}
	}
	if reply == nil {
		t.Fatal("expected an AssistantReplyMsg from the send command")
	}

	m.Update(*reply)

	if m.IsLoading() {
		t.Error("loading should clear when the reply arrives")
	}
	msgs = m.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[1].Role != chat.RoleAssistant || msgs[1].Content != "reply text" {
		t.Errorf("unexpected assistant message: %+v", msgs[1])
	}
}

func TestSendAttachesPendingFiles(t *testing.T) {
	m := newTestModel(t)
	path := tempFile(t, "notes.txt", "hello")

	m.Update(ui.FileDroppedMsg{Path: path})
	m.Update(ui.SendMsg{Content: "see attached"})

	msgs := m.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if len(msgs[0].Attachments) != 1 {
		t.Fatalf("expected 1 attachment on the message, got %d", len(msgs[0].Attachments))
	}
	if msgs[0].Attachments[0].Name != "notes.txt" {
		t.Errorf("unexpected attachment name %q", msgs[0].Attachments[0].Name)
	}
	if len(m.Attachments()) != 0 {
		t.Error("pending attachments should clear after send")
	}
}

func TestCancelDiscardsInFlightReply(t *testing.T) {
	m := newTestModel(t)

	m.Update(ui.SendMsg{Content: "hello"})
	staleSeq := m.replySeq

	m.Update(ui.CancelMsg{})

	if m.IsLoading() {
		t.Error("cancel should clear loading")
	}

	m.Update(AssistantReplyMsg{Seq: staleSeq, Message: chat.NewMessage(chat.RoleAssistant, "late")})

	if len(m.Messages()) != 1 {
		t.Error("stale reply should be discarded after cancel")
	}
}

func TestCancelWithoutReplyIsNoop(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(ui.CancelMsg{})

	if cmd != nil {
		t.Error("cancel with nothing in flight should do nothing")
	}
}

func TestAttachRequestOpensPicker(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(ui.AttachRequestMsg{})

	if !m.modal.IsVisible() {
		t.Fatal("attach modal should be visible")
	}
	if _, ok := m.modal.State.(*modals.AttachState); !ok {
		t.Fatalf("expected AttachState, got %T", m.modal.State)
	}
	if cmd == nil {
		t.Error("expected the picker init command")
	}

	m.Update(keyPress(tea.KeyEscape, ""))

	if m.modal.IsVisible() {
		t.Error("escape should close the attach modal")
	}
}

func TestFilePickedAppendsAttachment(t *testing.T) {
	m := newTestModel(t)
	path := tempFile(t, "chart.png", "fake image bytes")

	m.Update(ui.AttachRequestMsg{})
	m.Update(modals.FilePickedMsg{Path: path})

	if m.modal.IsVisible() {
		t.Error("picking a file should close the modal")
	}
	if len(m.Attachments()) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(m.Attachments()))
	}
	if m.Attachments()[0].Kind != chat.KindImage {
		t.Errorf("expected image kind, got %v", m.Attachments()[0].Kind)
	}
}

func TestPickingSameFileTwiceAppendsTwice(t *testing.T) {
	m := newTestModel(t)
	path := tempFile(t, "report.pdf", "pdf bytes")

	m.Update(modals.FilePickedMsg{Path: path})
	m.Update(modals.FilePickedMsg{Path: path})

	if len(m.Attachments()) != 2 {
		t.Errorf("expected 2 attachments, got %d", len(m.Attachments()))
	}
}

func TestAttachMissingFileFlashesError(t *testing.T) {
	m := newTestModel(t)

	m.Update(ui.FileDroppedMsg{Path: "/no/such/file.txt"})

	if len(m.Attachments()) != 0 {
		t.Error("missing file should not be attached")
	}
	if !m.footer.HasFlash() {
		t.Error("expected an error flash for the missing file")
	}
}

func TestCopyFailureFlashesError(t *testing.T) {
	m := newTestModel(t)

	m.Update(ui.CopyFailedMsg{BlockID: "block-1", Err: context.DeadlineExceeded})

	if !m.footer.HasFlash() {
		t.Error("expected an error flash for the failed copy")
	}
}

func TestRemoveAttachment(t *testing.T) {
	m := newTestModel(t)
	first := tempFile(t, "a.txt", "a")
	second := tempFile(t, "b.txt", "b")

	m.Update(ui.FileDroppedMsg{Path: first})
	m.Update(ui.FileDroppedMsg{Path: second})
	m.Update(ui.RemoveAttachmentMsg{Index: 1})

	if len(m.Attachments()) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(m.Attachments()))
	}
	if m.Attachments()[0].Name != "a.txt" {
		t.Errorf("wrong attachment removed, remaining %q", m.Attachments()[0].Name)
	}
}

func TestNewConversationModalFlow(t *testing.T) {
	m := newTestModel(t)
	m.Update(ui.SendMsg{Content: "old message"})

	m.Update(ui.NewConversationMsg{})

	if _, ok := m.modal.State.(*modals.NewConversationState); !ok {
		t.Fatalf("expected NewConversationState, got %T", m.modal.State)
	}

	m.Update(keyPress(tea.KeyEnter, ""))

	if m.modal.IsVisible() {
		t.Error("enter should close the new-conversation modal")
	}
	if len(m.Messages()) != 0 {
		t.Error("new conversation should clear the transcript")
	}
	if m.conversationTitle == "" {
		t.Error("conversation title should be set")
	}
	if m.IsLoading() {
		t.Error("new conversation should abandon the in-flight reply")
	}
}

func TestNewConversationModalEscapeKeepsTranscript(t *testing.T) {
	m := newTestModel(t)
	m.Update(ui.SendMsg{Content: "keep me"})

	m.Update(ui.NewConversationMsg{})
	m.Update(keyPress(tea.KeyEscape, ""))

	if m.modal.IsVisible() {
		t.Error("escape should close the modal")
	}
	if len(m.Messages()) != 1 {
		t.Error("escape should keep the transcript")
	}
}

func TestTabSwitchesFocus(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyPress(tea.KeyTab, ""))
	if m.focus != FocusChat {
		t.Error("tab should move focus to the transcript")
	}
	if !m.chat.IsFocused() {
		t.Error("transcript should be focused")
	}

	m.Update(keyPress(tea.KeyTab, ""))
	if m.focus != FocusComposer {
		t.Error("tab should move focus back to the composer")
	}
}

func TestEscapeReturnsToComposer(t *testing.T) {
	m := newTestModel(t)

	m.Update(keyPress(tea.KeyTab, ""))
	m.Update(keyPress(tea.KeyEscape, ""))

	if m.focus != FocusComposer {
		t.Error("escape should return focus to the composer")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})

	if cmd == nil {
		t.Fatal("ctrl+c should produce a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestRenderToString(t *testing.T) {
	m := newTestModel(t)

	out := ansi.Strip(m.RenderToString())
	if !strings.Contains(out, "parley") {
		t.Error("render should contain the header title")
	}
}

func TestRenderToStringBeforeSizing(t *testing.T) {
	m := New(testConfig(), "test", fakeEngine{}, nil)

	if m.RenderToString() != "Loading..." {
		t.Error("render before sizing should show the loading placeholder")
	}
}
