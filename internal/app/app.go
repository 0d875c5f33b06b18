package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/ahollic/parley/internal/chat"
	"github.com/ahollic/parley/internal/config"
	"github.com/ahollic/parley/internal/logger"
	"github.com/ahollic/parley/internal/render"
	"github.com/ahollic/parley/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusComposer Focus = iota
	FocusChat
)

// Responder produces the assistant reply to a user message. Implementations
// may block (they run inside a tea.Cmd goroutine).
type Responder interface {
	Reply(userMessage chat.Message, transcript []chat.Message) chat.Message
}

// StartupModalMsg is sent on app start to trigger the welcome modal
type StartupModalMsg struct{}

// AssistantReplyMsg delivers a responder reply. Seq identifies the request;
// a reply whose Seq no longer matches (the user canceled or sent again) is
// discarded.
type AssistantReplyMsg struct {
	Seq     int
	Message chat.Message
}

// Model is the main Bubble Tea model
type Model struct {
	config   *config.Config
	version  string // App version (injected at build time)
	header   *ui.Header
	footer   *ui.Footer
	chat     *ui.Chat
	composer *ui.Composer
	modal    *ui.Modal

	responder Responder

	width  int
	height int
	focus  Focus

	// Caller-owned composer state: the composer itself only displays these
	attachments []chat.Attachment
	loading     bool

	conversationTitle string
	windowFocused     bool

	// replySeq numbers reply requests; an in-flight reply with a stale
	// sequence is dropped on arrival
	replySeq int
}

// New creates a new app model
func New(cfg *config.Config, version string, engine render.DiagramEngine, responder Responder) *Model {
	// Apply the saved theme before any styles are captured
	ui.SetThemeByName(cfg.GetTheme())

	m := &Model{
		config:    cfg,
		version:   version,
		header:    ui.NewHeader(),
		footer:    ui.NewFooter(),
		chat:      ui.NewChat(engine, cfg.GetDiagramTimeout()),
		composer:  ui.NewComposer(),
		modal:     ui.NewModal(),
		responder: responder,
		focus:     FocusComposer,
	}

	m.chat.SetNotify(cfg.GetNotificationsEnabled())
	m.composer.SetFocused(true)
	m.header.SetThemeName(string(ui.CurrentThemeName()))

	return m
}

// IsLoading returns whether a reply is in flight
func (m *Model) IsLoading() bool {
	return m.loading
}

// Messages returns the current transcript
func (m *Model) Messages() []chat.Message {
	return m.chat.Messages()
}

// Attachments returns the pending draft attachments
func (m *Model) Attachments() []chat.Attachment {
	return m.attachments
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	logger.Log("App: starting, version=%s", m.version)
	return func() tea.Msg {
		return StartupModalMsg{}
	}
}

// setFocus moves keyboard focus between the composer and the transcript
func (m *Model) setFocus(focus Focus) {
	m.focus = focus
	m.composer.SetFocused(focus == FocusComposer)
	m.chat.SetFocused(focus == FocusChat)
}
