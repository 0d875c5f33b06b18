package demo

import (
	"sync"
	"time"

	"github.com/ahollic/parley/internal/chat"
)

// ScriptedResponder replies with a fixed list of canned messages, in order,
// wrapping around at the end. It is the assistant used by demos and by the
// main binary (Parley ships no network backend).
type ScriptedResponder struct {
	mu      sync.Mutex
	replies []string
	next    int
	delay   time.Duration
}

// NewScriptedResponder creates a responder cycling through replies, pausing
// delay before each one to simulate thinking.
func NewScriptedResponder(replies []string, delay time.Duration) *ScriptedResponder {
	return &ScriptedResponder{
		replies: replies,
		delay:   delay,
	}
}

// Reply returns the next canned reply. With no replies configured it echoes
// the user message.
func (r *ScriptedResponder) Reply(userMessage chat.Message, _ []chat.Message) chat.Message {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}

	r.mu.Lock()
	var content string
	if len(r.replies) == 0 {
		content = "You said: " + userMessage.Content
	} else {
		content = r.replies[r.next%len(r.replies)]
		r.next++
	}
	r.mu.Unlock()

	reply := chat.NewMessage(chat.RoleAssistant, content)
	reply.Author = &chat.Identity{Name: "Parley"}
	return reply
}

// DefaultReplies returns the canned replies used when the binary runs
// without a scenario: a code answer, a diagram answer, and a plain one.
func DefaultReplies() []string {
	return []string{
		"Sure - here is an example:\n\n```go\nfunc greet(name string) string {\n\treturn \"hello, \" + name\n}\n```\n\nCall it with any name you like.",
		"Sketched as a diagram:\n\n```mermaid\nflowchart LR\n    A[input] --> B{valid?}\n    B -->|yes| C[process]\n    B -->|no| D[reject]\n```",
		"That covers it. Anything else you want to dig into?",
	}
}
