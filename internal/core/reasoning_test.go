// ABOUTME: Tests for reasoning path derivation and ad-hoc queries
// ABOUTME: Adjacency directions, path uniqueness, concept overlap, query routing

package core

import (
	"strings"
	"testing"
	"time"

	"github.com/noteweave/noteweave/internal/models"
)

func reasoningNotes() []models.Note {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Note{
		{ID: 1, Title: "Linear Algebra", Tags: []string{"fundamental"},
			KeyConcepts: []string{"matrices", "vectors"}, CreatedAt: base},
		{ID: 2, Title: "Neural Networks", Tags: []string{"advanced"},
			KeyConcepts: []string{"matrices", "backpropagation"}, CreatedAt: base.Add(time.Hour)},
		{ID: 3, Title: "Gradient Descent",
			KeyConcepts: []string{"backpropagation", "optimization"}, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestBuildPathIndex_RelatedBothDirections(t *testing.T) {
	nodes := reasoningNotes()
	edges := []models.Edge{
		{SourceID: 2, TargetID: 3, Similarity: 0.9, Type: models.RelationRelated},
	}

	idx := BuildPathIndex(nodes, edges)

	if got := idx.Outgoing(2); len(got) != 1 || got[0].TargetID != 3 {
		t.Errorf("Outgoing(2) = %+v, want single edge to 3", got)
	}
	if got := idx.Outgoing(3); len(got) != 1 || got[0].TargetID != 2 {
		t.Errorf("Outgoing(3) = %+v, want reversed related edge to 2", got)
	}
}

func TestBuildPathIndex_DirectionalOneWay(t *testing.T) {
	nodes := reasoningNotes()
	edges := []models.Edge{
		{SourceID: 1, TargetID: 2, Similarity: 0.9, Type: models.RelationPrerequisite},
	}

	idx := BuildPathIndex(nodes, edges)

	if got := idx.Outgoing(1); len(got) != 1 {
		t.Errorf("Outgoing(1) = %+v, want one edge", got)
	}
	if got := idx.Outgoing(2); len(got) != 0 {
		t.Errorf("Outgoing(2) = %+v, want none (prerequisite is directional)", got)
	}
}

func TestDerivePrerequisitePaths_OnePerEdge(t *testing.T) {
	nodes := reasoningNotes()
	edges := []models.Edge{
		{SourceID: 1, TargetID: 2, Similarity: 0.9, Type: models.RelationPrerequisite},
		{SourceID: 2, TargetID: 3, Similarity: 0.85, Type: models.RelationRelated},
	}

	paths := DerivePrerequisitePaths(nodes, edges)
	if len(paths) != 1 {
		t.Fatalf("len(paths) = %d, want 1", len(paths))
	}

	p := paths[0]
	if p.SourceID != 1 || p.TargetID != 2 {
		t.Errorf("path %d->%d, want 1->2", p.SourceID, p.TargetID)
	}
	if p.Type != models.PathPrerequisite {
		t.Errorf("Type = %v, want prerequisite", p.Type)
	}
	if !strings.Contains(p.Explanation, "Linear Algebra") || !strings.Contains(p.Explanation, "Neural Networks") {
		t.Errorf("Explanation missing titles: %q", p.Explanation)
	}
}

func TestDerivePrerequisitePaths_SkipsMissingNodes(t *testing.T) {
	nodes := reasoningNotes()
	edges := []models.Edge{
		{SourceID: 1, TargetID: 99, Similarity: 0.9, Type: models.RelationPrerequisite},
	}

	if paths := DerivePrerequisitePaths(nodes, edges); len(paths) != 0 {
		t.Errorf("len(paths) = %d, want 0 for dangling edge", len(paths))
	}
}

func TestDeriveCausalPaths_RequiresSharedConcepts(t *testing.T) {
	nodes := reasoningNotes()
	edges := []models.Edge{
		// 2 and 3 share "backpropagation"; 1 and 3 share nothing.
		{SourceID: 2, TargetID: 3, Similarity: 0.9, Type: models.RelationPrecedes},
		{SourceID: 1, TargetID: 3, Similarity: 0.85, Type: models.RelationPrecedes},
	}

	paths := DeriveCausalPaths(nodes, edges)
	if len(paths) != 1 {
		t.Fatalf("len(paths) = %d, want 1", len(paths))
	}

	p := paths[0]
	if p.SourceID != 2 || p.TargetID != 3 {
		t.Errorf("path %d->%d, want 2->3", p.SourceID, p.TargetID)
	}
	if len(p.CommonConcepts) != 1 || p.CommonConcepts[0] != "backpropagation" {
		t.Errorf("CommonConcepts = %v, want [backpropagation]", p.CommonConcepts)
	}
	if !strings.Contains(p.Explanation, "backpropagation") {
		t.Errorf("Explanation missing shared concept: %q", p.Explanation)
	}
}

func TestDeriveCausalPaths_UnconnectedPairsIgnored(t *testing.T) {
	// 1 and 2 share "matrices" but have no edge, so no path appears.
	nodes := reasoningNotes()

	if paths := DeriveCausalPaths(nodes, nil); len(paths) != 0 {
		t.Errorf("len(paths) = %d, want 0 without edges", len(paths))
	}
}

func TestDeriveCausalPaths_RelatedYieldsBothDirections(t *testing.T) {
	nodes := reasoningNotes()
	edges := []models.Edge{
		{SourceID: 2, TargetID: 3, Similarity: 0.9, Type: models.RelationRelated},
	}

	paths := DeriveCausalPaths(nodes, edges)
	if len(paths) != 2 {
		t.Fatalf("len(paths) = %d, want 2 (one per direction)", len(paths))
	}
	seen := map[[2]int64]bool{}
	for _, p := range paths {
		seen[[2]int64{p.SourceID, p.TargetID}] = true
	}
	if !seen[[2]int64{2, 3}] || !seen[[2]int64{3, 2}] {
		t.Errorf("paths = %+v, want 2->3 and 3->2", paths)
	}
}

func TestAnswerQuery_PrerequisiteRoute(t *testing.T) {
	nodes := reasoningNotes()
	edges := []models.Edge{
		{SourceID: 1, TargetID: 2, Similarity: 0.9, Type: models.RelationPrerequisite},
	}

	result := AnswerQuery(nodes, edges, "what do I need to know before learning neural networks?")
	if len(result.Matches) != 1 {
		t.Fatalf("len(Matches) = %d, want 1 (%s)", len(result.Matches), result.Explanation)
	}
	m := result.Matches[0]
	if m.Kind != "prerequisite" || m.Path == nil {
		t.Errorf("match = %+v, want prerequisite path", m)
	}
	if m.Path.TargetTitle != "Neural Networks" {
		t.Errorf("TargetTitle = %q, want Neural Networks", m.Path.TargetTitle)
	}
}

func TestAnswerQuery_CausalRoute(t *testing.T) {
	nodes := reasoningNotes()
	edges := []models.Edge{
		{SourceID: 2, TargetID: 3, Similarity: 0.9, Type: models.RelationPrecedes},
	}

	result := AnswerQuery(nodes, edges, "how does gradient descent connect to my other notes?")
	if len(result.Matches) == 0 {
		t.Fatalf("no matches: %s", result.Explanation)
	}
	for _, m := range result.Matches {
		if m.Kind != "causal" {
			t.Errorf("Kind = %q, want causal", m.Kind)
		}
	}
}

func TestAnswerQuery_DependencyRoute(t *testing.T) {
	nodes := reasoningNotes()
	edges := []models.Edge{
		{SourceID: 1, TargetID: 2, Similarity: 0.9, Type: models.RelationPrerequisite},
		{SourceID: 2, TargetID: 3, Similarity: 0.85, Type: models.RelationPrecedes},
	}

	result := AnswerQuery(nodes, edges, "what does neural networks depend on?")
	if len(result.Matches) != 1 {
		t.Fatalf("len(Matches) = %d, want 1 (%s)", len(result.Matches), result.Explanation)
	}
	m := result.Matches[0]
	if m.Kind != "dependency" || m.Edge == nil {
		t.Fatalf("match = %+v, want dependency edge", m)
	}
	if m.Edge.TargetID != 2 {
		t.Errorf("Edge.TargetID = %d, want 2", m.Edge.TargetID)
	}
}

func TestAnswerQuery_NoMatchingConcept(t *testing.T) {
	result := AnswerQuery(reasoningNotes(), nil, "tell me about underwater basket weaving")
	if len(result.Matches) != 0 {
		t.Errorf("len(Matches) = %d, want 0", len(result.Matches))
	}
	if result.Explanation != "No matching concept was found in your notes for this query." {
		t.Errorf("Explanation = %q", result.Explanation)
	}
}

func TestAnswerQuery_MatchedButNoPaths(t *testing.T) {
	result := AnswerQuery(reasoningNotes(), nil, "what are the prerequisites for neural networks?")
	if len(result.Matches) != 0 {
		t.Errorf("len(Matches) = %d, want 0", len(result.Matches))
	}
	if !strings.HasPrefix(result.Explanation, "No prerequisite path") {
		t.Errorf("Explanation = %q, want a no-paths summary", result.Explanation)
	}
}

func TestExtractKeywords_DropsStopwords(t *testing.T) {
	keywords := extractKeywords("What do I need to know before learning Neural Networks?")
	want := map[string]bool{"neural": true, "networks": true}
	if len(keywords) != len(want) {
		t.Fatalf("keywords = %v, want neural + networks", keywords)
	}
	for _, k := range keywords {
		if !want[k] {
			t.Errorf("unexpected keyword %q", k)
		}
	}
}

func TestMatchNodes_KeyConceptSubstring(t *testing.T) {
	nodes := reasoningNotes()
	matched := matchNodes(nodes, []string{"optimization"})
	if len(matched) != 1 || !matched[3] {
		t.Errorf("matched = %v, want {3}", matched)
	}
}
