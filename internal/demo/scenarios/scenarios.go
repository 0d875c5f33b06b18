// Package scenarios contains built-in demo scenarios for Parley.
package scenarios

import (
	"time"

	"github.com/ahollic/parley/internal/demo"
)

// Showcase walks through code blocks, a mermaid diagram, and block focus.
var Showcase = demo.Showcase()

// Attachments demonstrates the attachment flow: a pasted file path becomes
// a chip, and the message carries it.
var Attachments = &demo.Scenario{
	Name:        "attachments",
	Description: "Attach a file by pasting its path, then send",
	Width:       120,
	Height:      40,
	Replies: []string{
		"Got the file - I'll take a look at it.",
	},
	Steps: []demo.Step{
		demo.Wait(500 * time.Millisecond),
		demo.Annotate("Paste a file path to attach it"),
		demo.Paste("/etc/hostname"),
		demo.Wait(500 * time.Millisecond),
		demo.Capture(),
		demo.Type("Can you check this file?"),
		demo.KeyWithDesc("alt+enter", "send with attachment"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),
	},
}

// All returns every built-in scenario.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Showcase,
		Attachments,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
