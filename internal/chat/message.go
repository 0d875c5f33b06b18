// Package chat defines the value types the UI components render: messages,
// attachments, and participant identities. Nothing here is persisted; the
// application owns the slices and mutates them between renders.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author side of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Identity describes a chat participant for avatar rendering.
// Image is an optional reference (path or URL) to an avatar image;
// when empty the display name's first character is used instead.
type Identity struct {
	Name  string
	Image string
}

// Message is a single transcript entry.
type Message struct {
	ID          string
	Role        Role
	Author      *Identity // nil renders the silhouette avatar
	Content     string
	Attachments []Attachment
	CreatedAt   time.Time
}

// NewMessage creates a message with a fresh ID and timestamp.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
