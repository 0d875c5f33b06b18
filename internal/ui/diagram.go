package ui

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ahollic/parley/internal/logger"
	"github.com/ahollic/parley/internal/notification"
	"github.com/ahollic/parley/internal/render"
)

// DiagramState tracks where a diagram is in its render lifecycle.
type DiagramState int

const (
	DiagramIdle DiagramState = iota
	DiagramRendering
	DiagramRendered
	DiagramFailed
)

// String returns the state name for logs.
func (s DiagramState) String() string {
	switch s {
	case DiagramRendering:
		return "rendering"
	case DiagramRendered:
		return "rendered"
	case DiagramFailed:
		return "failed"
	default:
		return "idle"
	}
}

// DiagramResultMsg carries a finished render back to its component.
// RenderID ties the result to one attempt; a mismatch means the attempt
// was superseded and the result is dropped.
type DiagramResultMsg struct {
	DiagramID string
	RenderID  string
	Markup    string
	Err       error
}

// notifyFailure is swapped out in tests so no desktop notification fires.
var notifyFailure = notification.DiagramFailed

// Diagram renders mermaid-style source through an external engine and
// shows the outcome inline.
type Diagram struct {
	ID     string
	engine render.DiagramEngine

	source  string
	timeout time.Duration
	notify  bool

	state      DiagramState
	markup     string
	errMsg     string
	showSource bool
	focused    bool
	width      int

	copied  bool
	copySeq int

	// last attempted pair; the gate compares against these, not against
	// the last successful render
	lastSource string
	lastTheme  string

	renderID string
}

// NewDiagram creates a diagram component around an engine.
func NewDiagram(id string, engine render.DiagramEngine, timeout time.Duration) *Diagram {
	return &Diagram{
		ID:      id,
		engine:  engine,
		timeout: timeout,
		width:   DefaultWrapWidth,
	}
}

// SetNotify enables desktop notifications on render failure.
func (d *Diagram) SetNotify(enabled bool) {
	d.notify = enabled
}

// SetWidth sets the render width.
func (d *Diagram) SetWidth(w int) {
	d.width = w
}

// SetFocused sets keyboard focus.
func (d *Diagram) SetFocused(focused bool) {
	d.focused = focused
}

// Focused reports whether the diagram has keyboard focus.
func (d *Diagram) Focused() bool {
	return d.focused
}

// State returns the current lifecycle state.
func (d *Diagram) State() DiagramState {
	return d.state
}

// Source returns the raw diagram source.
func (d *Diagram) Source() string {
	return d.source
}

// Copied reports whether the copied indicator is currently showing.
func (d *Diagram) Copied() bool {
	return d.copied
}

// SetSource replaces the diagram source. Call Render afterwards; the gate
// decides whether the engine actually runs.
func (d *Diagram) SetSource(source string) {
	d.source = source
}

// Render starts a render attempt unless the (source, theme) pair matches
// the last attempt. Identical input never re-invokes the engine, whether
// the previous attempt succeeded or failed.
func (d *Diagram) Render() tea.Cmd {
	theme := CurrentTheme().DiagramTheme()
	if d.source == d.lastSource && theme == d.lastTheme {
		return nil
	}
	d.lastSource = d.source
	d.lastTheme = theme

	// Clear prior output so a failed attempt can't show stale markup
	d.markup = ""
	d.errMsg = ""
	d.state = DiagramRendering

	id := render.NewRenderID()
	d.renderID = id

	logger.ComponentLogger("Diagram").Debug("render attempt",
		"diagramID", d.ID, "renderID", id, "theme", theme)

	engine := d.engine
	source := d.source
	diagramID := d.ID
	timeout := d.timeout
	return func() tea.Msg {
		markup, err := engine.Render(context.Background(), id, source, render.Options{
			Theme:   theme,
			Timeout: timeout,
		})
		return DiagramResultMsg{DiagramID: diagramID, RenderID: id, Markup: markup, Err: err}
	}
}

// Update handles render results, key presses and the copy feedback timer.
func (d *Diagram) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DiagramResultMsg:
		if msg.DiagramID != d.ID {
			return nil
		}
		if msg.RenderID != d.renderID {
			// Superseded attempt finishing late
			logger.ComponentLogger("Diagram").Debug("discarding stale result",
				"diagramID", d.ID, "renderID", msg.RenderID)
			return nil
		}
		if msg.Err != nil {
			d.state = DiagramFailed
			d.errMsg = msg.Err.Error()
			if d.notify {
				name := d.engine.Name()
				return func() tea.Msg {
					notifyFailure(name)
					return nil
				}
			}
			return nil
		}
		d.state = DiagramRendered
		d.markup = msg.Markup
		return nil

	case tea.KeyPressMsg:
		if !d.focused {
			return nil
		}
		switch msg.String() {
		case "s":
			d.showSource = !d.showSource
		case "y":
			return d.copySource()
		}

	case CopyTimeoutMsg:
		if msg.BlockID == d.ID && msg.Seq == d.copySeq {
			d.copied = false
		}
	}
	return nil
}

// copySource copies the raw source with the same feedback timer the code
// block uses.
func (d *Diagram) copySource() tea.Cmd {
	if err := copyToClipboard(d.source); err != nil {
		logger.ComponentLogger("Diagram").Warn("copy failed", "diagramID", d.ID, "error", err)
		id := d.ID
		return func() tea.Msg { return CopyFailedMsg{BlockID: id, Err: err} }
	}

	d.copied = true
	d.copySeq++
	seq := d.copySeq
	id := d.ID
	return tea.Tick(CopyFeedbackDuration, func(time.Time) tea.Msg {
		return CopyTimeoutMsg{BlockID: id, Seq: seq}
	})
}

// View renders the diagram box for the current state.
func (d *Diagram) View() string {
	var body string
	switch d.state {
	case DiagramRendering:
		body = StatusLoadingStyle.Render("rendering diagram…")
	case DiagramRendered:
		label := fmt.Sprintf("⬡ diagram rendered (%d bytes)", len(d.markup))
		body = label
		if d.showSource {
			body += "\n" + DiagramSourceStyle.Render(d.source)
		}
	case DiagramFailed:
		body = DiagramErrorStyle.Render("diagram failed: " + d.errMsg)
		body += "\n" + ComposerHintStyle.Render(`press "s" to view source, "y" to copy`)
		if d.showSource {
			body += "\n" + DiagramSourceStyle.Render(d.source)
		}
	default:
		body = DiagramSourceStyle.Render("diagram pending")
	}

	if d.copied {
		body += "\n" + CodeBlockCopiedStyle.Render(copyIcon+" copied")
	}

	style := DiagramBoxStyle
	if d.focused {
		style = style.BorderForeground(ColorBorderFocus)
	}
	return style.Width(d.width - BorderSize).Render(body)
}
