// ABOUTME: Reasoning path and graph output models
// ABOUTME: Derived, ephemeral structures recomputed from the classified edge set
package models

// PathType labels a derived reasoning path.
type PathType string

const (
	PathPrerequisite PathType = "prerequisite"
	PathCausal       PathType = "causal"
)

// ReasoningPath explains why two notes are related. Paths are derived on
// demand from the current edge set and never persisted; the edge set is the
// source of truth.
type ReasoningPath struct {
	SourceID       int64    `json:"source_id"`
	TargetID       int64    `json:"target_id"`
	SourceTitle    string   `json:"source_title"`
	TargetTitle    string   `json:"target_title"`
	Type           PathType `json:"path_type"`
	CommonConcepts []string `json:"common_concepts,omitempty"`
	Explanation    string   `json:"explanation"`
}

// Graph is the plain data handed to the external rendering collaborator.
// No format-specific concerns cross this boundary.
type Graph struct {
	Nodes []Note          `json:"nodes"`
	Edges []Edge          `json:"edges"`
	Paths []ReasoningPath `json:"reasoning_paths"`
}
