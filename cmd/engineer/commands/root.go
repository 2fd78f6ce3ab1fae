// ABOUTME: Root command and global flags for the race engineer CLI
// ABOUTME: Registers subcommands and builds the shared app from configuration
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/race-engineer/internal/app"
	"github.com/harper/race-engineer/internal/logging"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	configPath   string
)

// buildApp is replaced in tests to avoid calling OpenAI
var buildApp = app.New

const banner = `
 ███████ ██   ███████ ███    ██  ██████
 ██     ███   ██      ████   ██ ██
 █████   ██   █████   ██ ██  ██ ██   ███
 ██      ██   ██      ██  ██ ██ ██    ██
 ██      ██   ███████ ██   ████  ██████
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engineer",
		Short: "F1 race engineer: regulations search and race maths",
		Long: banner + `
Answers questions about the FIA Formula 1 regulations using a semantic
index of the regulations document, and works out points, championship
and pit stop numbers.

The index is built on first use from the configured document and kept
on disk; later runs load it without calling the embeddings API again.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "auto", "text", "json":
				return nil
			}
			return fmt.Errorf("unknown --format %q (want auto, text or json)", outputFormat)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text or json")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional YAML config file")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewIndexCmd(),
		NewAskCmd(),
		NewCalcCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// newLogger builds the logger selected by the global flags
func newLogger() *zap.Logger {
	return logging.New(verbose, quiet)
}

// loadApp reads configuration and wires the retriever
func loadApp(logger *zap.Logger) (*app.App, error) {
	cfg, err := app.LoadConfig(configPath, logger)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return buildApp(cfg, logger)
}

// jsonOutput reports whether results should be printed as JSON
func jsonOutput() bool {
	return outputFormat == "json"
}
