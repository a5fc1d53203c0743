// ABOUTME: CLI command to regenerate embeddings for every stored note
// ABOUTME: Used after switching embedding models or recovering from corruption
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

// NewReindexCmd creates the reindex command
func NewReindexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Regenerate embeddings for all notes",
		Long: `Regenerate embeddings for every stored note under the configured
embedding model. Notes the embedding service fails on are counted and
skipped; the run continues.

Examples:
  noteweave reindex
  NOTEWEAVE_EMBEDDING_MODEL=text-embedding-3-large noteweave reindex`,
		RunE: runReindex,
	}

	return cmd
}

func runReindex(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

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

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	builder := core.NewGraphBuilder(store, embedder, logger)
	report, err := builder.ReindexEmbeddings(cmd.Context())
	if err != nil {
		return fmt.Errorf("reindexing embeddings: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Reindexed %d note(s) with model %s", report.Succeeded, embedder.ModelID())
		if report.Failed > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " (%d failed)", report.Failed)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}
