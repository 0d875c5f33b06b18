//go:build !darwin || (darwin && !cgo)

package clipboard

import (
	"fmt"

	"golang.design/x/clipboard"

	"github.com/ahollic/parley/internal/logger"
)

// initialized tracks whether the clipboard has been initialized
var initialized bool

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	if initialized {
		return nil
	}

	if err := clipboard.Init(); err != nil {
		logger.Log("Clipboard: Failed to initialize: %v", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}

	initialized = true
	logger.Log("Clipboard: Initialized successfully")
	return nil
}

// WriteText writes text to the clipboard.
// On Linux/Windows, this uses the golang.design/x/clipboard library.
func WriteText(text string) error {
	if !initialized {
		if err := Init(); err != nil {
			return err
		}
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.Log("Clipboard: Wrote %d bytes of text", len(text))
	return nil
}
