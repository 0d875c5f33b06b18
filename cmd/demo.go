package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ahollic/parley/internal/demo"
	"github.com/ahollic/parley/internal/demo/scenarios"
	"github.com/ahollic/parley/internal/logger"
)

var (
	demoOutput     string
	demoWidth      int
	demoHeight     int
	demoCaptureAll bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate demo recordings of Parley",
	Long: `Generate demo recordings of Parley for documentation and presentations.

Available subcommands:
  list  - List available demo scenarios
  run   - Run a scenario and output to stdout (for testing)
  cast  - Generate an asciinema cast file`,
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available demo scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Available demo scenarios:")
		fmt.Println()
		for _, s := range scenarios.All() {
			fmt.Printf("  %-15s %s\n", s.Name, s.Description)
		}
	},
}

var demoRunCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario and output to stdout (for testing)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoRun,
}

var demoCastCmd = &cobra.Command{
	Use:   "cast <scenario>",
	Short: "Generate an asciinema cast file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDemoCast,
}

func init() {
	for _, cmd := range []*cobra.Command{demoRunCmd, demoCastCmd} {
		cmd.Flags().StringVarP(&demoOutput, "output", "o", "", "Output file")
		cmd.Flags().IntVarP(&demoWidth, "width", "w", 120, "Terminal width")
		cmd.Flags().IntVarP(&demoHeight, "height", "H", 40, "Terminal height")
		cmd.Flags().BoolVar(&demoCaptureAll, "capture-all", false, "Capture frame after every step (for debugging)")
	}

	demoCmd.AddCommand(demoListCmd)
	demoCmd.AddCommand(demoRunCmd)
	demoCmd.AddCommand(demoCastCmd)
	rootCmd.AddCommand(demoCmd)
}

func getScenario(name string) (*demo.Scenario, error) {
	scenario := scenarios.Get(name)
	if scenario == nil {
		return nil, fmt.Errorf("unknown scenario %q\nRun 'parley demo list' to see available scenarios", name)
	}

	// Override dimensions if specified
	if demoWidth > 0 {
		scenario.Width = demoWidth
	}
	if demoHeight > 0 {
		scenario.Height = demoHeight
	}

	return scenario, nil
}

func executeScenario(scenario *demo.Scenario) ([]demo.Frame, error) {
	// Demo runs log to their own file
	logger.Reset()
	if err := logger.Init(logger.DemoLogPath(scenario.Name)); err != nil {
		return nil, fmt.Errorf("error initializing demo log: %w", err)
	}

	execCfg := demo.DefaultExecutorConfig()
	execCfg.CaptureEveryStep = demoCaptureAll

	executor := demo.NewExecutor(execCfg)
	return executor.Run(scenario)
}

func runDemoRun(cmd *cobra.Command, args []string) error {
	scenario, err := getScenario(args[0])
	if err != nil {
		return err
	}

	frames, err := executeScenario(scenario)
	if err != nil {
		return fmt.Errorf("error running scenario: %w", err)
	}

	// Print frames to stdout for testing
	fmt.Printf("Captured %d frames\n", len(frames))
	for i, f := range frames {
		fmt.Printf("\n=== Frame %d (delay: %v) ===\n", i, f.Delay)
		if f.Annotation != "" {
			fmt.Printf("Annotation: %s\n", f.Annotation)
		}
		fmt.Println(f.Content)
	}

	return nil
}

func runDemoCast(cmd *cobra.Command, args []string) error {
	scenarioName := args[0]
	scenario, err := getScenario(scenarioName)
	if err != nil {
		return err
	}

	frames, err := executeScenario(scenario)
	if err != nil {
		return fmt.Errorf("error running scenario: %w", err)
	}

	// Determine output file
	outputFile := demoOutput
	if outputFile == "" {
		outputFile = scenarioName + ".cast"
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	if err := demo.GenerateASCIICast(f, frames, scenario.Width, scenario.Height); err != nil {
		return fmt.Errorf("error generating cast file: %w", err)
	}

	fmt.Printf("Generated %s (%d frames)\n", outputFile, len(frames))
	fmt.Printf("Play with: asciinema play %s\n", outputFile)

	return nil
}
