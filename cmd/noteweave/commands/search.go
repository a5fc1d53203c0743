// ABOUTME: CLI command for semantic search over stored notes
// ABOUTME: Ranks notes by remapped cosine similarity to the query
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/noteweave/noteweave/internal/config"
	"github.com/noteweave/noteweave/internal/core"
)

var (
	searchLimit     int
	searchThreshold float64
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes by meaning",
		Long: `Search stored notes using vector similarity.

The query is embedded and compared against every stored note vector;
results at or above the threshold are ranked by similarity.

Examples:
  noteweave search "gradient descent"
  noteweave search --limit 10 --threshold 0.7 "reinforcement learning"
  noteweave search --format json "attention"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")
	cmd.Flags().Float64Var(&searchThreshold, "threshold", -1, "Minimum similarity in [0,1] (default from config)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}
	threshold := cfg.SimilarityThreshold
	if searchThreshold >= 0 {
		if err := validateThreshold(searchThreshold); err != nil {
			return err
		}
		threshold = searchThreshold
	}

	query := args[0]

	store, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	retriever := core.NewRetriever(embedder)
	matches, err := retriever.SearchNotesText(cmd.Context(), store.Vectors(), query, searchLimit, threshold)
	if err != nil {
		return fmt.Errorf("searching notes: %w", err)
	}

	if len(matches) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No notes found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tID\tTITLE\tTAGS\tADDED\n")
		fmt.Fprintf(w, "-----\t--\t-----\t----\t-----\n")
		for _, match := range matches {
			fmt.Fprintf(w, "%.3f\t%d\t%s\t%s\t%s\n",
				match.Similarity,
				match.Note.ID,
				truncate(match.Note.Title, 40),
				truncate(strings.Join(match.Note.Tags, ","), 25),
				formatTime(match.Note.CreatedAt))
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(matches))
		}
	}

	return nil
}
