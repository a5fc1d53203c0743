// ABOUTME: Classified relationship edge between two notes
// ABOUTME: Defines RelationshipType enum and the Edge structure
package models

// RelationshipType labels a classified edge between two notes.
type RelationshipType string

const (
	// RelationRelated is undirected; it is stored once per pair.
	RelationRelated RelationshipType = "related"
	// RelationPrerequisite means the source is a prerequisite of the target.
	RelationPrerequisite RelationshipType = "prerequisite"
	// RelationBuildsOn means the source builds on the target.
	RelationBuildsOn RelationshipType = "builds_on"
	// RelationPrecedes means the source was written before the target.
	RelationPrecedes RelationshipType = "precedes"
)

// Directional reports whether the relationship type carries direction.
func (t RelationshipType) Directional() bool {
	return t != RelationRelated
}

// Edge connects two notes whose similarity cleared the configured threshold.
// Edges are derived from the note set, never persisted as source of truth:
// if either note disappears the edge is dropped at the next rebuild.
type Edge struct {
	SourceID   int64            `json:"source"`
	TargetID   int64            `json:"target"`
	Similarity float64          `json:"similarity"`
	Type       RelationshipType `json:"relationship_type"`
}

// NoteLink is the minimal precomputed-edge view exposed at the note-metadata
// boundary for callers that persist graph results.
type NoteLink struct {
	ID         int64   `json:"id"`
	Similarity float64 `json:"similarity"`
}
