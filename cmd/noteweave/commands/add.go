// ABOUTME: CLI command to add note metadata to the local store
// ABOUTME: Optionally embeds the note immediately when OpenAI is configured
package commands

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/noteweave/noteweave/internal/config"
	"github.com/noteweave/noteweave/internal/models"
)

var (
	addSummary  string
	addTags     string
	addConcepts string
	addEmbed    bool
)

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a note to the knowledge graph",
		Long: `Add note metadata to the local store.

Tags drive relationship classification: tag foundational notes with
"fundamental" or "basic" and advanced ones with "advanced" or "expert"
to get prerequisite edges in the graph.

Examples:
  noteweave add "Neural Networks" --summary "Intro to NNs" --tags fundamental --concepts "backprop,gradients"
  noteweave add "Transformers" --tags advanced --embed`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().StringVar(&addSummary, "summary", "", "Short note summary")
	cmd.Flags().StringVar(&addTags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&addConcepts, "concepts", "", "Comma-separated key concepts")
	cmd.Flags().BoolVar(&addEmbed, "embed", false, "Embed the note immediately")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	title := strings.TrimSpace(args[0])
	if title == "" {
		return fmt.Errorf("note title must not be empty")
	}

	store, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()

	note := &models.Note{
		Title:       title,
		Summary:     addSummary,
		Tags:        splitList(addTags),
		KeyConcepts: splitList(addConcepts),
	}
	if err := store.Notes().Save(note); err != nil {
		return fmt.Errorf("saving note: %w", err)
	}

	if addEmbed {
		embedder, err := newEmbedder(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}
		vector, err := embedder.Embed(cmd.Context(), note.EmbeddingText())
		if err != nil {
			return fmt.Errorf("embedding note: %w", err)
		}
		if err := store.Vectors().Put(note.ID, embedder.ModelID(), vector); err != nil {
			return fmt.Errorf("saving embedding: %w", err)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added note %d: %s\n", note.ID, note.Title)
		if addEmbed {
			fmt.Fprintln(cmd.OutOrStdout(), "Embedded and indexed.")
		}
	}
	return nil
}
