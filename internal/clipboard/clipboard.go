// Package clipboard provides text writing to the system clipboard.
// The copy controls in the UI are write-only: nothing is ever read back.
package clipboard

import (
	"github.com/ahollic/parley/internal/errors"
)

// Copy writes text to the system clipboard, wrapping any platform failure
// in a structured clipboard error.
func Copy(text string) error {
	if err := WriteText(text); err != nil {
		return errors.ClipboardWriteFailed(err)
	}
	return nil
}
