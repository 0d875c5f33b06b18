// Package demo provides infrastructure for generating demos of Parley's
// capabilities. Scenarios drive the real Update loop with scripted input and
// scripted assistant replies, so recordings are deterministic and need no
// external diagram renderer.
package demo

import (
	"time"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration (for timing/pacing).
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepTypeText types a string character by character.
	StepTypeText
	// StepPaste sends a bracketed paste (the file-drop analog).
	StepPaste
	// StepCapture captures the current frame (for selective capture).
	StepCapture
	// StepAnnotate adds an annotation/caption to the next frame.
	StepAnnotate
)

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepTypeText and StepPaste
	Text string

	// For StepWait
	Duration time.Duration

	// For StepAnnotate
	Annotation string
}

// Scenario defines a complete demo scenario. Replies are consumed in order
// by the scripted responder, one per sent message.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Replies     []string
	Steps       []Step
}

// Validate checks that the scenario is valid.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	return nil
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Type creates a text typing step.
func Type(text string) Step {
	return Step{
		Type: StepTypeText,
		Text: text,
	}
}

// Paste creates a bracketed-paste step.
func Paste(text string) Step {
	return Step{
		Type: StepPaste,
		Text: text,
	}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}

// Showcase returns the default scenario: a short conversation exercising
// code blocks, a mermaid diagram, and block focus.
func Showcase() *Scenario {
	return &Scenario{
		Name:        "showcase",
		Description: "Code blocks, diagrams, and block focus in one conversation",
		Replies: []string{
			"Here is a minimal HTTP server:\n\n```go\npackage main\n\nimport (\n\t\"fmt\"\n\t\"net/http\"\n)\n\nfunc main() {\n\thttp.HandleFunc(\"/\", func(w http.ResponseWriter, r *http.Request) {\n\t\tfmt.Fprintln(w, \"hello\")\n\t})\n\thttp.ListenAndServe(\":8080\", nil)\n}\n```\n\nRun it and visit localhost:8080.",
			"The request flow looks like this:\n\n```mermaid\nsequenceDiagram\n    Client->>Server: GET /\n    Server->>Handler: route\n    Handler-->>Client: 200 hello\n```\n\nEach request gets its own goroutine.",
		},
		Steps: []Step{
			Annotate("Ask for some code"),
			Type("Show me a tiny HTTP server in Go"),
			KeyWithDesc("alt+enter", "send the message"),
			Wait(800 * time.Millisecond),
			Capture(),
			Annotate("Ask for a diagram"),
			Type("Can you diagram the request flow?"),
			Key("alt+enter"),
			Wait(800 * time.Millisecond),
			Capture(),
			Annotate("Focus the rendered blocks"),
			Key("tab"),
			Key("]"),
			Capture(),
			Key("]"),
			Capture(),
		},
	}
}
