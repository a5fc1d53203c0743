// ABOUTME: Relationship classifier for candidate note pairs
// ABOUTME: Tag precedence first, then timestamp order, else undirected related
package core

import (
	"github.com/noteweave/noteweave/internal/models"
)

// Tag families that signal learning order between two notes
var (
	foundationalTags = []string{"prerequisite", "fundamental", "basic"}
	advancedTags     = []string{"advanced", "expert", "complex"}
)

// ClassifyRelationship assigns exactly one relationship type to a candidate
// pair whose similarity already cleared the threshold. Precedence, first
// match wins:
//
//  1. a foundational, b advanced  -> prerequisite (a -> b)
//  2. a advanced, b foundational  -> builds_on (a -> b)
//  3. a written before b          -> precedes (a -> b)
//  4. otherwise                   -> related (undirected, stored once)
//
// The function is total and deterministic: every qualifying pair gets one
// classification, and identical inputs always produce identical output.
func ClassifyRelationship(a, b *models.Note, sim float64) models.Edge {
	edge := models.Edge{
		SourceID:   a.ID,
		TargetID:   b.ID,
		Similarity: sim,
	}

	switch {
	case a.HasAnyTag(foundationalTags...) && b.HasAnyTag(advancedTags...):
		edge.Type = models.RelationPrerequisite
	case a.HasAnyTag(advancedTags...) && b.HasAnyTag(foundationalTags...):
		edge.Type = models.RelationBuildsOn
	case a.CreatedAt.Before(b.CreatedAt):
		edge.Type = models.RelationPrecedes
	default:
		edge.Type = models.RelationRelated
	}
	return edge
}
