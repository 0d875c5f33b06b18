package demo

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ahollic/parley/internal/app"
	"github.com/ahollic/parley/internal/config"
	"github.com/ahollic/parley/internal/render"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every step (default: false)
	CaptureEveryStep bool

	// TypeDelay is the delay between characters when typing (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is the delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// CmdTimeout bounds how long the executor waits for any one command to
	// produce a message; slower commands (feedback ticks) are dropped
	// (default: 250ms)
	CmdTimeout time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false,
		TypeDelay:        50 * time.Millisecond,
		KeyDelay:         100 * time.Millisecond,
		CmdTimeout:       250 * time.Millisecond,
	}
}

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config ExecutorConfig
	model  *app.Model
	frames []Frame

	currentAnnotation string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	if cfg.CmdTimeout <= 0 {
		cfg.CmdTimeout = 250 * time.Millisecond
	}
	return &Executor{
		config: cfg,
		frames: []Frame{},
	}
}

// Engine is the diagram engine used in demos: instant, deterministic, and
// independent of any installed renderer binary.
type Engine struct{}

func (Engine) Name() string { return "demo" }

func (Engine) Render(_ context.Context, _, source string, _ render.Options) (string, error) {
	lines := strings.Split(strings.TrimSpace(source), "\n")
	width := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", width+2) + "┐\n")
	for _, line := range lines {
		pad := width - runewidth.StringWidth(line)
		b.WriteString("│ " + line + strings.Repeat(" ", pad) + " │\n")
	}
	b.WriteString("└" + strings.Repeat("─", width+2) + "┘")
	return b.String(), nil
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	e.setup(scenario)

	// Capture initial frame
	e.captureFrame(0, 500*time.Millisecond)

	// Execute each step
	for i, step := range scenario.Steps {
		e.executeStep(i, step)
	}

	return e.frames, nil
}

// setup initializes the model for the scenario.
func (e *Executor) setup(scenario *Scenario) {
	cfg := &config.Config{
		Theme:              config.DefaultTheme,
		DiagramCommand:     "demo",
		DiagramTimeoutSecs: config.DefaultDiagramTimeoutSecs,
		LogLevel:           config.DefaultLogLevel,
		WelcomeShown:       true, // Skip welcome modal in demos
	}

	responder := NewScriptedResponder(scenario.Replies, 0)
	e.model = app.New(cfg, "demo", Engine{}, responder)

	e.dispatch(tea.WindowSizeMsg{
		Width:  scenario.Width,
		Height: scenario.Height,
	})
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) {
	switch step.Type {
	case StepWait:
		e.captureFrame(index, step.Duration)

	case StepKey:
		e.dispatch(keyPress(step.Key))
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			e.dispatch(keyPress(string(ch)))
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.TypeDelay)
			}
		}

	case StepPaste:
		e.dispatch(tea.PasteStartMsg{})
		e.dispatch(tea.PasteMsg{Content: step.Text})
		e.dispatch(tea.PasteEndMsg{})
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to the next frame

	case StepCapture:
		e.captureFrame(index, 0)
	}
}

// dispatch feeds a message through Update and pumps the resulting commands
// until the model settles. A command that does not produce its message
// within CmdTimeout (a feedback tick) is abandoned.
func (e *Executor) dispatch(msg tea.Msg) {
	queue := []tea.Msg{msg}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		result, cmd := e.model.Update(next)
		e.model = result.(*app.Model)

		for _, produced := range e.runCmd(cmd) {
			queue = append(queue, produced)
		}
	}
}

// runCmd executes a command tree, flattening batches, bounded by CmdTimeout.
func (e *Executor) runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(e.config.CmdTimeout):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, e.runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	frame := Frame{
		Content:    e.model.RenderToString(),
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	}
	e.frames = append(e.frames, frame)

	// Clear annotation after use
	e.currentAnnotation = ""
}

// keyPress converts a key string to a tea.KeyPressMsg.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "alt+enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModAlt}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "escape", "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "pgup":
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "ctrl+o":
		return tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
	case "ctrl+n":
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
