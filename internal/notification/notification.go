// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/ahollic/parley/internal/logger"
)

// notifyFunc matches beeep.Notify and allows tests to intercept delivery.
type notifyFunc func(title, message string, icon any) error

var notifier notifyFunc = beeep.Notify

// SetNotifier replaces the notification backend. Used in tests.
func SetNotifier(fn notifyFunc) {
	notifier = fn
}

// ResetNotifier restores the default beeep backend.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Log("Notification: Sending notification - title=%q, message=%q", title, message)
	// Use empty string for icon - beeep handles platform defaults
	err := notifier(title, message, "")
	if err != nil {
		logger.Log("Notification: Failed to send notification: %v", err)
	}
	return err
}

// DiagramFailed sends a notification that a diagram failed to render.
func DiagramFailed(engine string) error {
	return Send("Parley", "Diagram render failed ("+engine+")")
}

// ReplyReceived sends a notification that a new assistant reply arrived.
func ReplyReceived(conversation string) error {
	return Send("Parley", conversation+" has a new reply")
}
