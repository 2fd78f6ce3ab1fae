// ABOUTME: CLI command to build or load the regulations index
// ABOUTME: --rebuild discards the persisted index and embeds the document again
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	indexRebuild bool
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or load the regulations index",
		Long: `Build or load the regulations index.

On first run the configured document is split into overlapping chunks,
embedded and stored in the index directory. Later runs only load it.
Use --rebuild after replacing the document.

Examples:
  engineer index
  engineer index --rebuild
  engineer index --format json`,
		Args: cobra.NoArgs,
		RunE: runIndex,
	}

	cmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "Delete the existing index and build it again")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	a, err := loadApp(logger)
	if err != nil {
		return err
	}

	if indexRebuild {
		err = a.Rebuild(cmd.Context())
	} else {
		err = a.Start(cmd.Context())
	}
	if err != nil {
		return err
	}

	meta, _ := a.Retriever.IndexMeta()

	if jsonOutput() {
		jsonData, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Index:\t%s\n", a.Retriever.IndexDir())
	fmt.Fprintf(w, "Document:\t%s\n", meta.SourcePath)
	fmt.Fprintf(w, "Entries:\t%d\n", meta.EntryCount)
	fmt.Fprintf(w, "Dimension:\t%d\n", meta.Dimension)
	fmt.Fprintf(w, "Model:\t%s\n", meta.EmbeddingModel)
	fmt.Fprintf(w, "Chunking:\t%d / %d overlap\n", meta.ChunkSize, meta.ChunkOverlap)
	fmt.Fprintf(w, "Built:\t%s (%s)\n", formatTime(meta.CreatedAt), meta.BuildID)
	return w.Flush()
}
