package notification

import (
	"errors"
	"testing"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
		icon    any
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
		icon    any
	}{title, message, icon})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		mockErr     error
		expectError bool
	}{
		{
			name:        "successful notification",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "notification error",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     errors.New("notification failed"),
			expectError: true,
		},
		{
			name:        "empty title",
			title:       "",
			message:     "Message with empty title",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "empty message",
			title:       "Title",
			message:     "",
			mockErr:     nil,
			expectError: false,
		},
		{
			name:        "unicode content",
			title:       "通知",
			message:     "🎉 Notification with emoji",
			mockErr:     nil,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send(tt.title, tt.message)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != tt.title {
				t.Errorf("title = %q, want %q", call.title, tt.title)
			}
			if call.message != tt.message {
				t.Errorf("message = %q, want %q", call.message, tt.message)
			}
			if icon, ok := call.icon.(string); !ok || icon != "" {
				t.Errorf("icon = %v, want empty string", call.icon)
			}
		})
	}
}

func TestDiagramFailed(t *testing.T) {
	tests := []struct {
		name            string
		engine          string
		expectedMessage string
	}{
		{
			name:            "mermaid engine",
			engine:          "mmdc",
			expectedMessage: "Diagram render failed (mmdc)",
		},
		{
			name:            "empty engine name",
			engine:          "",
			expectedMessage: "Diagram render failed ()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			if err := DiagramFailed(tt.engine); err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != "Parley" {
				t.Errorf("title = %q, want %q", call.title, "Parley")
			}
			if call.message != tt.expectedMessage {
				t.Errorf("message = %q, want %q", call.message, tt.expectedMessage)
			}
		})
	}
}

func TestReplyReceived(t *testing.T) {
	tests := []struct {
		name            string
		conversation    string
		expectedMessage string
		mockErr         error
		expectError     bool
	}{
		{
			name:            "basic conversation",
			conversation:    "my-chat",
			expectedMessage: "my-chat has a new reply",
		},
		{
			name:            "conversation with spaces",
			conversation:    "Weekly Planning",
			expectedMessage: "Weekly Planning has a new reply",
		},
		{
			name:            "unicode conversation name",
			conversation:    "会話-123",
			expectedMessage: "会話-123 has a new reply",
		},
		{
			name:            "notification failure",
			conversation:    "test-chat",
			expectedMessage: "test-chat has a new reply",
			mockErr:         errors.New("notification system unavailable"),
			expectError:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := ReplyReceived(tt.conversation)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != "Parley" {
				t.Errorf("title = %q, want %q", call.title, "Parley")
			}
			if call.message != tt.expectedMessage {
				t.Errorf("message = %q, want %q", call.message, tt.expectedMessage)
			}
		})
	}
}
