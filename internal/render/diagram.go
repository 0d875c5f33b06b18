package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahollic/parley/internal/errors"
	"github.com/ahollic/parley/internal/logger"
)

// Options carries the per-render settings the engine needs.
type Options struct {
	Theme   string        // diagram theme name, usually "dark" or "default"
	Timeout time.Duration // hard cap on a single render
}

// DiagramEngine renders diagram source to displayable markup. Engines must
// honor ctx cancellation; the id is threaded through for log correlation.
type DiagramEngine interface {
	Name() string
	Render(ctx context.Context, id, source string, opts Options) (string, error)
}

// NewRenderID returns a unique id for one render attempt. The timestamp
// prefix keeps ids sortable in logs; the uuid suffix makes collisions
// between rapid attempts impossible.
func NewRenderID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// CommandEngine shells out to an external renderer such as mermaid-cli's
// mmdc. The source is written to a temp file, the command is invoked with
// -i/-o/-t flags, and the output file is read back as markup.
type CommandEngine struct {
	command string
}

// NewCommandEngine creates an engine around the given renderer binary.
func NewCommandEngine(command string) *CommandEngine {
	return &CommandEngine{command: command}
}

// Name returns the base name of the renderer binary.
func (e *CommandEngine) Name() string {
	return filepath.Base(e.command)
}

// Render invokes the external renderer and returns the produced markup.
func (e *CommandEngine) Render(ctx context.Context, id, source string, opts Options) (string, error) {
	log := logger.ComponentLogger("DiagramEngine")

	if _, err := exec.LookPath(e.command); err != nil {
		log.Warn("renderer not found", "command", e.command, "renderID", id)
		return "", errors.EngineNotFound(e.command)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	in, err := os.CreateTemp("", "parley-diagram-*.mmd")
	if err != nil {
		return "", errors.RenderFailed(e.Name(), err)
	}
	defer os.Remove(in.Name())

	if _, err := in.WriteString(source); err != nil {
		in.Close()
		return "", errors.RenderFailed(e.Name(), err)
	}
	in.Close()

	outPath := strings.TrimSuffix(in.Name(), ".mmd") + ".svg"
	defer os.Remove(outPath)

	args := []string{"-i", in.Name(), "-o", outPath}
	if opts.Theme != "" {
		args = append(args, "-t", opts.Theme)
	}

	log.Debug("invoking renderer", "command", e.command, "renderID", id)
	cmd := exec.CommandContext(ctx, e.command, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Warn("renderer timed out", "renderID", id)
			return "", errors.RenderTimeout(e.Name())
		}
		// The renderer's own message beats the generic exit status
		msg := strings.TrimSpace(string(output))
		if msg != "" {
			err = fmt.Errorf("%s: %w", firstLine(msg), err)
		}
		log.Warn("render failed", "renderID", id, "error", err)
		return "", errors.RenderFailed(e.Name(), err)
	}

	markup, err := os.ReadFile(outPath)
	if err != nil {
		return "", errors.RenderFailed(e.Name(), err)
	}

	log.Debug("render complete", "renderID", id, "bytes", len(markup))
	return string(markup), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
