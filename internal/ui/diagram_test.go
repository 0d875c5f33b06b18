package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/ahollic/parley/internal/render"
)

// countingEngine records render invocations.
type countingEngine struct {
	calls  int
	themes []string
	markup string
	err    error
}

func (e *countingEngine) Name() string { return "counting" }

func (e *countingEngine) Render(_ context.Context, _, _ string, opts render.Options) (string, error) {
	e.calls++
	e.themes = append(e.themes, opts.Theme)
	return e.markup, e.err
}

// runRender drives one render attempt to completion synchronously.
func runRender(t *testing.T, d *Diagram) {
	t.Helper()
	cmd := d.Render()
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg != nil {
		d.Update(msg)
	}
}

func setTestTheme(t *testing.T, name ThemeName) {
	t.Helper()
	prev := CurrentThemeName()
	SetTheme(name)
	t.Cleanup(func() { SetTheme(prev) })
}

func TestDiagram_RenderSuccess(t *testing.T) {
	engine := &countingEngine{markup: "<svg/>"}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")

	runRender(t, d)

	if d.State() != DiagramRendered {
		t.Errorf("state = %v, want rendered", d.State())
	}
	if engine.calls != 1 {
		t.Errorf("engine calls = %d, want 1", engine.calls)
	}
}

func TestDiagram_RenderFailure(t *testing.T) {
	engine := &countingEngine{err: errors.New("parse error at line 3")}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")

	runRender(t, d)

	if d.State() != DiagramFailed {
		t.Errorf("state = %v, want failed", d.State())
	}
	if !strings.Contains(ansi.Strip(d.View()), "parse error at line 3") {
		t.Error("failure view should show the engine error")
	}
}

func TestDiagram_GateSkipsIdenticalInput(t *testing.T) {
	engine := &countingEngine{markup: "<svg/>"}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")

	runRender(t, d)
	runRender(t, d)
	runRender(t, d)

	if engine.calls != 1 {
		t.Errorf("identical (source, theme) should render once, got %d calls", engine.calls)
	}
}

func TestDiagram_GateHoldsAfterFailure(t *testing.T) {
	// The gate compares against the last attempt, not the last success,
	// so a failed render is not retried for the same input.
	engine := &countingEngine{err: errors.New("boom")}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")

	runRender(t, d)
	runRender(t, d)

	if engine.calls != 1 {
		t.Errorf("failed attempt should not retry identical input, got %d calls", engine.calls)
	}
}

func TestDiagram_SourceChangeRerenders(t *testing.T) {
	engine := &countingEngine{markup: "<svg/>"}
	d := NewDiagram("dia-1", engine, time.Second)

	d.SetSource("graph TD; A-->B")
	runRender(t, d)

	d.SetSource("graph TD; A-->C")
	runRender(t, d)

	if engine.calls != 2 {
		t.Errorf("source change should re-render, got %d calls", engine.calls)
	}
}

func TestDiagram_ThemeChangeRerenders(t *testing.T) {
	setTestTheme(t, ThemeDarkPurple)

	engine := &countingEngine{markup: "<svg/>"}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")
	runRender(t, d)

	SetTheme(ThemeLight)
	runRender(t, d)

	if engine.calls != 2 {
		t.Fatalf("dark→light variant change should re-render, got %d calls", engine.calls)
	}
	if engine.themes[0] != "dark" || engine.themes[1] != "default" {
		t.Errorf("engine themes = %v, want [dark default]", engine.themes)
	}
}

func TestDiagram_SameVariantThemeChangeDoesNotRerender(t *testing.T) {
	setTestTheme(t, ThemeDarkPurple)

	engine := &countingEngine{markup: "<svg/>"}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")
	runRender(t, d)

	// Nord is also dark, so the engine theme is unchanged
	SetTheme(ThemeNord)
	runRender(t, d)

	if engine.calls != 1 {
		t.Errorf("same-variant theme switch should not re-render, got %d calls", engine.calls)
	}
}

func TestDiagram_StaleResultDiscarded(t *testing.T) {
	engine := &countingEngine{markup: "<svg/>"}
	d := NewDiagram("dia-1", engine, time.Second)

	d.SetSource("graph TD; A-->B")
	first := d.Render()
	firstID := d.renderID

	// New input supersedes the in-flight attempt before it completes
	d.SetSource("graph TD; A-->C")
	second := d.Render()

	// First result arrives late; its render id no longer matches
	d.Update(DiagramResultMsg{DiagramID: "dia-1", RenderID: firstID, Err: errors.New("late failure")})
	if d.State() != DiagramRendering {
		t.Errorf("stale result should be discarded, state = %v", d.State())
	}

	d.Update(second())
	if d.State() != DiagramRendered {
		t.Errorf("current result should apply, state = %v", d.State())
	}

	_ = first
}

func TestDiagram_ResultForOtherDiagramIgnored(t *testing.T) {
	engine := &countingEngine{markup: "<svg/>"}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")
	d.Render()

	d.Update(DiagramResultMsg{DiagramID: "dia-2", RenderID: d.renderID, Markup: "<svg/>"})

	if d.State() != DiagramRendering {
		t.Errorf("result for another diagram must be ignored, state = %v", d.State())
	}
}

func TestDiagram_PriorOutputClearedOnNewAttempt(t *testing.T) {
	engine := &countingEngine{markup: "<svg>old</svg>"}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")
	runRender(t, d)

	if d.markup == "" {
		t.Fatal("first render should have produced markup")
	}

	d.SetSource("graph TD; A-->C")
	d.Render()

	if d.markup != "" {
		t.Error("starting a new attempt must clear prior markup")
	}
	if d.errMsg != "" {
		t.Error("starting a new attempt must clear prior error")
	}
}

func TestDiagram_SourceToggle(t *testing.T) {
	engine := &countingEngine{err: errors.New("boom")}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")
	d.SetFocused(true)
	runRender(t, d)

	if strings.Contains(ansi.Strip(d.View()), "graph TD; A-->B") {
		t.Error("source should be hidden before toggle")
	}

	d.Update(keyPress("s"))
	if !strings.Contains(ansi.Strip(d.View()), "graph TD; A-->B") {
		t.Error("source should be revealed after s")
	}

	d.Update(keyPress("s"))
	if strings.Contains(ansi.Strip(d.View()), "graph TD; A-->B") {
		t.Error("source should be hidden after second s")
	}
}

func TestDiagram_CopySource(t *testing.T) {
	var copied []string
	stubClipboard(t, &copied, nil)

	engine := &countingEngine{err: errors.New("boom")}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")
	d.SetFocused(true)
	runRender(t, d)

	cmd := d.Update(keyPress("y"))

	if len(copied) != 1 || copied[0] != "graph TD; A-->B" {
		t.Fatalf("expected raw source copied, got %v", copied)
	}
	if !d.Copied() {
		t.Error("copied flag should be set")
	}
	if cmd == nil {
		t.Error("copy should schedule a revert tick")
	}

	// Stale expiry is ignored, current one reverts
	d.Update(keyPress("y"))
	d.Update(CopyTimeoutMsg{BlockID: "dia-1", Seq: 1})
	if !d.Copied() {
		t.Error("stale timeout must not revert")
	}
	d.Update(CopyTimeoutMsg{BlockID: "dia-1", Seq: 2})
	if d.Copied() {
		t.Error("current timeout should revert")
	}
}

func TestDiagram_CopyFailureIsReported(t *testing.T) {
	stubClipboard(t, nil, errors.New("no clipboard"))

	d := NewDiagram("dia-1", &countingEngine{markup: "<svg/>"}, time.Second)
	d.SetSource("graph TD; A-->B")
	d.SetFocused(true)

	cmd := d.Update(keyPress("y"))

	if d.Copied() {
		t.Error("copied flag should stay unset when the clipboard write fails")
	}
	if cmd == nil {
		t.Fatal("failed copy should report the failure")
	}
	failed, ok := cmd().(CopyFailedMsg)
	if !ok {
		t.Fatalf("expected CopyFailedMsg, got %T", cmd())
	}
	if failed.BlockID != "dia-1" || failed.Err == nil {
		t.Errorf("unexpected failure report %+v", failed)
	}
}

func TestDiagram_NotifyOnFailure(t *testing.T) {
	var notified []string
	prev := notifyFailure
	notifyFailure = func(engine string) error {
		notified = append(notified, engine)
		return nil
	}
	t.Cleanup(func() { notifyFailure = prev })

	engine := &countingEngine{err: errors.New("boom")}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetNotify(true)
	d.SetSource("graph TD; A-->B")

	cmd := d.Render()
	result := cmd()
	notifyCmd := d.Update(result)
	if notifyCmd == nil {
		t.Fatal("failure with notifications enabled should return a notify command")
	}
	notifyCmd()

	if len(notified) != 1 || notified[0] != "counting" {
		t.Errorf("expected one notification naming the engine, got %v", notified)
	}
}

func TestDiagram_NoNotifyWhenDisabled(t *testing.T) {
	prev := notifyFailure
	notifyFailure = func(string) error {
		t.Error("notification must not fire when disabled")
		return nil
	}
	t.Cleanup(func() { notifyFailure = prev })

	engine := &countingEngine{err: errors.New("boom")}
	d := NewDiagram("dia-1", engine, time.Second)
	d.SetSource("graph TD; A-->B")

	cmd := d.Render()
	if notifyCmd := d.Update(cmd()); notifyCmd != nil {
		notifyCmd()
	}
}

func TestDiagramState_String(t *testing.T) {
	tests := []struct {
		state DiagramState
		want  string
	}{
		{DiagramIdle, "idle"},
		{DiagramRendering, "rendering"},
		{DiagramRendered, "rendered"},
		{DiagramFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
