// ABOUTME: Root Cobra command with global flags and subcommand wiring
// ABOUTME: Entry point for all noteweave CLI subcommands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "noteweave",
		Short: "Semantic knowledge graph for your notes",
		Long: `noteweave turns a collection of notes into a searchable vector index,
a typed relationship graph, and human-readable reasoning paths that
explain why two notes are related.

Notes are embedded with OpenAI embeddings, stored locally in SQLite,
and linked by semantic similarity. Relationship types (prerequisite,
builds_on, precedes, related) are classified from tags and timestamps.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: table or json")

	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewTopicsCmd())
	cmd.AddCommand(NewGraphCmd())
	cmd.AddCommand(NewReasonCmd())
	cmd.AddCommand(NewReindexCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
