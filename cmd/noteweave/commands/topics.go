// ABOUTME: CLI commands for the cloud-synced topic corpus
// ABOUTME: Add topics and link queries against them, flat or grouped
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/noteweave/noteweave/internal/charm"
	"github.com/noteweave/noteweave/internal/config"
	"github.com/noteweave/noteweave/internal/core"
	"github.com/noteweave/noteweave/internal/models"
	"github.com/noteweave/noteweave/internal/storage"
)

var (
	topicsPath         string
	topicsSummary      string
	topicsLimit        int
	topicsHierarchical bool
)

// NewTopicsCmd creates the topics command group
func NewTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Manage and search the topic corpus",
		Long: `The topic corpus is an append-only collection of standalone topics,
stored in Charm KV so it syncs across machines. Topics carry a
slash-separated category path (e.g. "ML/NN") used for grouped results.`,
	}

	link := &cobra.Command{
		Use:   "link <query>",
		Short: "Find topics related to a query",
		Args:  cobra.ExactArgs(1),
		RunE:  runTopicsLink,
	}
	link.Flags().IntVar(&topicsLimit, "limit", 5, "Maximum matches to return")
	link.Flags().BoolVar(&topicsHierarchical, "hierarchical", false, "Group matches by top-level category")

	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a topic to the corpus",
		Args:  cobra.ExactArgs(1),
		RunE:  runTopicsAdd,
	}
	add.Flags().StringVar(&topicsPath, "path", "", "Slash-separated category path (e.g. ML/NN)")
	add.Flags().StringVar(&topicsSummary, "summary", "", "Short topic summary")

	cmd.AddCommand(link)
	cmd.AddCommand(add)
	return cmd
}

func openCorpus() (storage.TopicCorpus, error) {
	client, err := charm.GetClient()
	if err != nil {
		return nil, fmt.Errorf("connecting to charm: %w", err)
	}
	return storage.NewCharmCorpus(client), nil
}

func runTopicsAdd(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	corpus, err := openCorpus()
	if err != nil {
		return err
	}

	title := args[0]
	text := title
	if topicsSummary != "" {
		text += "\n" + topicsSummary
	}
	vector, err := embedder.Embed(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("embedding topic: %w", err)
	}

	entry := &models.TopicEntry{
		Title:     title,
		Path:      topicsPath,
		Embedding: vector,
		Summary:   topicsSummary,
	}
	if err := corpus.Append(entry); err != nil {
		return fmt.Errorf("appending topic: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added topic %q (%s)\n", entry.Title, entry.ID)
	}
	return nil
}

func runTopicsLink(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := validatePositiveInt(topicsLimit, "limit"); err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	corpus, err := openCorpus()
	if err != nil {
		return err
	}
	entries, err := corpus.All()
	if err != nil {
		return fmt.Errorf("loading topic corpus: %w", err)
	}

	retriever := core.NewRetriever(embedder)

	if topicsHierarchical {
		vector, err := embedder.Embed(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("embedding query: %w", err)
		}
		groups, err := core.FindRelatedGrouped(cmd.Context(), vector, entries, topicsLimit, cfg.SimilarityThreshold)
		if err != nil {
			return fmt.Errorf("linking topics: %w", err)
		}
		return printTopicGroups(cmd, groups)
	}

	matches, err := retriever.FindRelatedText(cmd.Context(), args[0], entries, topicsLimit, cfg.SimilarityThreshold)
	if err != nil {
		return fmt.Errorf("linking topics: %w", err)
	}
	return printTopicMatches(cmd, matches)
}

func printTopicMatches(cmd *cobra.Command, matches []core.TopicMatch) error {
	if len(matches) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No matching topics found.")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tTITLE\tPATH\tSUMMARY\n")
	fmt.Fprintf(w, "-----\t-----\t----\t-------\n")
	for _, match := range matches {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			match.Similarity,
			truncate(match.Title, 30),
			truncate(match.Path, 20),
			truncate(match.Summary, 40))
	}
	w.Flush()
	return nil
}

func printTopicGroups(cmd *cobra.Command, groups []core.TopicGroup) error {
	if len(groups) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No matching topics found.")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(groups, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for _, group := range groups {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (best %.3f)\n", group.Category, group.MaxSimilarity)
		for _, match := range group.Matches {
			fmt.Fprintf(cmd.OutOrStdout(), "  %.3f  %s  %s\n",
				match.Similarity, match.Title, match.Path)
		}
	}
	return nil
}
