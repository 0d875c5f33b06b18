package cmd

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/ahollic/parley/internal/app"
	"github.com/ahollic/parley/internal/clipboard"
	"github.com/ahollic/parley/internal/config"
	"github.com/ahollic/parley/internal/demo"
	"github.com/ahollic/parley/internal/logger"
	"github.com/ahollic/parley/internal/render"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Terminal chat interface with first-class code blocks and diagrams",
	Long: `Parley is a terminal chat interface. Assistant replies render markdown with
chroma-highlighted code blocks and mermaid diagrams, messages carry file
attachments, and the whole transcript is keyboard-driven.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// applyLogLevel maps the config log level onto the logger unless a flag
// already chose one.
func applyLogLevel(level string) {
	if debugMode || quietMode {
		return
	}
	switch level {
	case "debug":
		logger.SetLevel(logger.LevelDebug)
	case "warn":
		logger.SetLevel(logger.LevelWarn)
	case "error":
		logger.SetLevel(logger.LevelError)
	default:
		logger.SetLevel(logger.LevelInfo)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("parley %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("parley %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	applyLogLevel(cfg.GetLogLevel())

	// Ensure logger is closed on exit
	defer logger.Close()

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable: %v", err)
	}

	engine := render.NewCommandEngine(cfg.GetDiagramCommand())
	responder := demo.NewScriptedResponder(demo.DefaultReplies(), 600*time.Millisecond)

	m := app.New(cfg, version, engine, responder)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
