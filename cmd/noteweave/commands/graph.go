// ABOUTME: CLI command to rebuild the note knowledge graph
// ABOUTME: Prints node/edge/path counts or the full graph as JSON
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noteweave/noteweave/internal/config"
	"github.com/noteweave/noteweave/internal/core"
)

var (
	graphThreshold float64
	graphMaxNodes  int
	graphTags      string
	graphPersist   bool
)

// NewGraphCmd creates the graph command
func NewGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Rebuild the knowledge graph from stored notes",
		Long: `Rebuild the knowledge graph: embed notes that lack vectors, classify
relationships between pairs whose similarity clears the threshold, and
derive reasoning paths from the classified edges.

Notes the embedding service fails on are skipped and counted; the build
itself never aborts for them.

Examples:
  noteweave graph
  noteweave graph --threshold 0.8 --max-nodes 50 --persist
  noteweave graph --format json`,
		RunE: runGraph,
	}

	cmd.Flags().Float64Var(&graphThreshold, "threshold", -1, "Minimum similarity for an edge (default from config)")
	cmd.Flags().IntVar(&graphMaxNodes, "max-nodes", 0, "Maximum notes to include (default from config)")
	cmd.Flags().StringVar(&graphTags, "tags", "", "Only include notes carrying one of these comma-separated tags")
	cmd.Flags().BoolVar(&graphPersist, "persist", false, "Persist built edges to the links table")

	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	threshold := cfg.SimilarityThreshold
	if graphThreshold >= 0 {
		if err := validateThreshold(graphThreshold); err != nil {
			return err
		}
		threshold = graphThreshold
	}
	maxNodes := cfg.MaxGraphNodes
	if graphMaxNodes > 0 {
		maxNodes = graphMaxNodes
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
	report, err := builder.RebuildGraph(cmd.Context(), core.BuildOptions{
		Threshold:    threshold,
		MaxNodes:     maxNodes,
		TagFilter:    splitList(graphTags),
		PersistLinks: graphPersist,
	})
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	graph := report.Graph
	fmt.Fprintf(cmd.OutOrStdout(), "Graph built: %d nodes, %d edges, %d reasoning paths\n",
		len(graph.Nodes), len(graph.Edges), len(graph.Paths))
	if report.Failed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d note(s) the embedding service failed on\n", report.Failed)
	}

	if len(graph.Edges) > 0 {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "\nSOURCE\tTYPE\tTARGET\tSCORE\n")
		fmt.Fprintf(w, "------\t----\t------\t-----\n")
		titles := make(map[int64]string, len(graph.Nodes))
		for _, node := range graph.Nodes {
			titles[node.ID] = node.Title
		}
		for _, edge := range graph.Edges {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\n",
				truncate(titles[edge.SourceID], 30),
				edge.Type,
				truncate(titles[edge.TargetID], 30),
				edge.Similarity)
		}
		w.Flush()
	}

	return nil
}
