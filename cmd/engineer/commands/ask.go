// ABOUTME: CLI command to ask a question about the regulations
// ABOUTME: Prints ranked sources with page citations, or the agent context with --agent
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/race-engineer/internal/core"
)

var (
	askAgent bool
	askFull  bool
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the F1 regulations",
		Long: `Ask a question about the F1 regulations.

Embeds the question and returns the most similar passages of the
regulations with the page they came from. The index is built first
if it does not exist yet.

Examples:
  engineer ask "what is the pit lane speed limit"
  engineer ask --full "how many power units can a driver use"
  engineer ask --agent "parc ferme rules"
  engineer ask --format json "safety car procedure"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().BoolVar(&askAgent, "agent", false, "Print the text an agent would receive")
	cmd.Flags().BoolVar(&askFull, "full", false, "Print full passages instead of previews")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	a, err := loadApp(logger)
	if err != nil {
		return err
	}
	if err := a.Start(cmd.Context()); err != nil {
		return err
	}

	if askAgent {
		fmt.Fprintln(cmd.OutOrStdout(), a.Retriever.GetContextForAgent(cmd.Context(), question))
		return nil
	}

	result, err := a.Retriever.Query(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("querying regulations: %w", err)
	}

	if jsonOutput() {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if result.Empty() {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), core.NoMatchSentinel)
		}
		return nil
	}

	if askFull {
		fmt.Fprintln(cmd.OutOrStdout(), result.Context)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\tSCORE\tPAGE\tPREVIEW\n")
	fmt.Fprintf(w, "----\t-----\t----\t-------\n")
	for i, source := range result.Sources {
		fmt.Fprintf(w, "%d\t%.3f\t%d\t%s\n", i+1, source.Score, source.Page, truncate(oneLine(source.Text), 70))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d source(s)\n", result.NumSources)
	}
	return nil
}
