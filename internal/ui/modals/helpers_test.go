package modals

import (
	"strings"
	"testing"
)

func TestRenderSelectableList(t *testing.T) {
	items := []string{"first", "second", "third"}

	result := RenderSelectableList(items, 1)

	lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	if !strings.Contains(lines[1], "> second") {
		t.Errorf("selected line should have '>' prefix, got %q", lines[1])
	}

	if strings.Contains(lines[0], ">") {
		t.Errorf("unselected line should not have '>' prefix, got %q", lines[0])
	}
}

func TestRenderSelectableList_NoSelection(t *testing.T) {
	result := RenderSelectableList([]string{"only"}, -1)

	if strings.Contains(result, ">") {
		t.Error("no line should be marked selected with index -1")
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		maxLen int
		want   string
	}{
		{"short path unchanged", "/tmp/a.txt", 20, "/tmp/a.txt"},
		{"exact length unchanged", "/tmp/abc", 8, "/tmp/abc"},
		{"long path truncated from start", "/home/user/projects/deep/file.txt", 15, "...eep/file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePath(tt.path, tt.maxLen)
			if got != tt.want {
				t.Errorf("TruncatePath(%q, %d) = %q, want %q", tt.path, tt.maxLen, got, tt.want)
			}
			if len(got) > tt.maxLen {
				t.Errorf("result %q exceeds max length %d", got, tt.maxLen)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated from end", "hello world", 8, "hello..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}
