// ABOUTME: CLI command to answer reasoning questions over the note graph
// ABOUTME: Rebuilds the graph in memory and runs the rule-based query engine
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noteweave/noteweave/internal/config"
	"github.com/noteweave/noteweave/internal/core"
)

// NewReasonCmd creates the reason command
func NewReasonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reason <question>",
		Short: "Answer a question using reasoning paths between notes",
		Long: `Answer a natural-language question by inspecting the relationships and
reasoning paths derived from your notes.

Questions about prerequisites, causes, or dependencies are routed to the
matching path kind; anything else falls back to paths touching the
mentioned concepts.

Examples:
  noteweave reason "what do I need to know before neural networks?"
  noteweave reason "what leads to overfitting?" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReason,
	}

	return cmd
}

func runReason(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	query := args[0]
	for _, arg := range args[1:] {
		query += " " + arg
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	builder := core.NewGraphBuilder(store, embedder, zap.NewNop())
	report, err := builder.RebuildGraph(cmd.Context(), core.BuildOptions{
		Threshold: cfg.SimilarityThreshold,
		MaxNodes:  cfg.MaxGraphNodes,
	})
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	result := core.AnswerQuery(report.Graph.Nodes, report.Graph.Edges, query)

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result.Explanation)
	for _, match := range result.Matches {
		if match.Path != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", match.Path.Explanation)
			continue
		}
		if match.Edge != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %d %s %d (%.3f)\n",
				match.Edge.SourceID, match.Edge.Type, match.Edge.TargetID, match.Edge.Similarity)
		}
	}

	return nil
}
