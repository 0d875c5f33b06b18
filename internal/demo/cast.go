package demo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// castHeader is the asciinema v2 file header.
type castHeader struct {
	Version   int    `json:"version"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Timestamp int64  `json:"timestamp"`
	Title     string `json:"title,omitempty"`
}

// GenerateASCIICast writes frames as an asciinema v2 cast file: a JSON
// header line followed by one [time, "o", data] event per frame.
func GenerateASCIICast(w io.Writer, frames []Frame, width, height int) error {
	header := castHeader{
		Version:   2,
		Width:     width,
		Height:    height,
		Timestamp: time.Now().Unix(),
		Title:     "parley demo",
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("writing cast header: %w", err)
	}

	elapsed := time.Duration(0)
	for _, frame := range frames {
		elapsed += frame.Delay

		// Clear screen and home the cursor before each frame
		data := "\x1b[2J\x1b[H" + normalizeNewlines(frame.Content)

		event := []any{elapsed.Seconds(), "o", data}
		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("writing cast event: %w", err)
		}
	}

	return nil
}

// normalizeNewlines converts LF to CRLF as terminals expect in raw mode.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
