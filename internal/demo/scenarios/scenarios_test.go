package scenarios

import (
	"testing"
)

func TestAll(t *testing.T) {
	all := All()

	if len(all) != 2 {
		t.Fatalf("All() should return 2 scenarios, got %d", len(all))
	}

	seen := make(map[string]bool)
	for _, s := range all {
		if err := s.Validate(); err != nil {
			t.Errorf("scenario %q should validate: %v", s.Name, err)
		}
		if seen[s.Name] {
			t.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
	}
}

func TestGet(t *testing.T) {
	if s := Get("showcase"); s == nil || s.Name != "showcase" {
		t.Error("Get(showcase) should return the showcase scenario")
	}
	if s := Get("attachments"); s == nil || s.Name != "attachments" {
		t.Error("Get(attachments) should return the attachments scenario")
	}
	if Get("no-such-scenario") != nil {
		t.Error("Get of an unknown name should return nil")
	}
}
