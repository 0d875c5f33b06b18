package demo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/ahollic/parley/internal/render"
)

func TestEngine_RendersBox(t *testing.T) {
	out, err := Engine{}.Render(context.Background(), "id", "flowchart LR\n    A --> B", render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "A --> B") {
		t.Error("rendered box should contain the diagram source")
	}
	if !strings.Contains(out, "┌") || !strings.Contains(out, "┘") {
		t.Error("rendered box should have borders")
	}
}

func TestEngine_BoxAlignsWideRunes(t *testing.T) {
	out, err := Engine{}.Render(context.Background(), "id", "flowchart LR\n    開始 --> 終了", render.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(out, "\n")
	want := runewidth.StringWidth(lines[0])
	for _, line := range lines[1:] {
		if w := runewidth.StringWidth(line); w != want {
			t.Errorf("line %q has width %d, want %d", line, w, want)
		}
	}
}

func TestExecutor_RunShowcase(t *testing.T) {
	exec := NewExecutor(DefaultExecutorConfig())

	frames, err := exec.Run(Showcase())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(frames) < 2 {
		t.Fatalf("expected multiple frames, got %d", len(frames))
	}

	final := ansi.Strip(frames[len(frames)-1].Content)
	if !strings.Contains(final, "parley") {
		t.Error("frames should contain the header title")
	}
}

func TestExecutor_RunInvalidScenario(t *testing.T) {
	exec := NewExecutor(DefaultExecutorConfig())

	if _, err := exec.Run(&Scenario{}); err == nil {
		t.Error("expected an error for a scenario without a name")
	}
}

func TestExecutor_TypedMessageReachesTranscript(t *testing.T) {
	exec := NewExecutor(DefaultExecutorConfig())

	scenario := &Scenario{
		Name:    "typing",
		Replies: []string{"scripted answer"},
		Steps: []Step{
			Type("hello demo"),
			Key("alt+enter"),
			Capture(),
		},
	}

	frames, err := exec.Run(scenario)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := exec.model.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected user message and scripted reply, got %d messages", len(msgs))
	}
	if msgs[0].Content != "hello demo" {
		t.Errorf("unexpected user message %q", msgs[0].Content)
	}
	if msgs[1].Content != "scripted answer" {
		t.Errorf("unexpected reply %q", msgs[1].Content)
	}

	if len(frames) == 0 {
		t.Fatal("expected at least one frame")
	}
}

func TestExecutor_AnnotationAppliesToNextFrame(t *testing.T) {
	exec := NewExecutor(DefaultExecutorConfig())

	scenario := &Scenario{
		Name: "annotation",
		Steps: []Step{
			Annotate("the caption"),
			Capture(),
			Capture(),
		},
	}

	frames, err := exec.Run(scenario)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// frames[0] is the initial frame
	if frames[1].Annotation != "the caption" {
		t.Errorf("expected annotation on first captured frame, got %q", frames[1].Annotation)
	}
	if frames[2].Annotation != "" {
		t.Errorf("annotation should clear after one frame, got %q", frames[2].Annotation)
	}
}

func TestExecutor_WaitCapturesDelayedFrame(t *testing.T) {
	exec := NewExecutor(DefaultExecutorConfig())

	scenario := &Scenario{
		Name:  "wait",
		Steps: []Step{Wait(750 * time.Millisecond)},
	}

	frames, err := exec.Run(scenario)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := frames[len(frames)-1]
	if last.Delay != 750*time.Millisecond {
		t.Errorf("expected 750ms delay, got %v", last.Delay)
	}
}
