// ABOUTME: Reasoning path derivation over the classified edge set
// ABOUTME: Adjacency index build, prerequisite/causal paths, ad-hoc queries
package core

import (
	"fmt"
	"strings"

	"github.com/noteweave/noteweave/internal/models"
)

// PathIndex is the adjacency representation of a classified edge set.
// Undirected related edges appear in both directions; directional edge
// types only in their stated direction.
type PathIndex struct {
	nodes    map[int64]*models.Note
	outgoing map[int64][]models.Edge
}

// BuildPathIndex constructs the adjacency index consumed by the derivation
// functions below.
func BuildPathIndex(nodes []models.Note, edges []models.Edge) *PathIndex {
	idx := &PathIndex{
		nodes:    make(map[int64]*models.Note, len(nodes)),
		outgoing: make(map[int64][]models.Edge),
	}
	for i := range nodes {
		idx.nodes[nodes[i].ID] = &nodes[i]
	}
	for _, edge := range edges {
		idx.outgoing[edge.SourceID] = append(idx.outgoing[edge.SourceID], edge)
		if !edge.Type.Directional() {
			idx.outgoing[edge.TargetID] = append(idx.outgoing[edge.TargetID], models.Edge{
				SourceID:   edge.TargetID,
				TargetID:   edge.SourceID,
				Similarity: edge.Similarity,
				Type:       edge.Type,
			})
		}
	}
	return idx
}

// Node returns the indexed note for an ID, or nil
func (idx *PathIndex) Node(id int64) *models.Note {
	return idx.nodes[id]
}

// Outgoing returns the outgoing edges for a node
func (idx *PathIndex) Outgoing(id int64) []models.Edge {
	return idx.outgoing[id]
}

// DerivePrerequisitePaths emits exactly one explanatory path per
// prerequisite-typed edge.
func DerivePrerequisitePaths(nodes []models.Note, edges []models.Edge) []models.ReasoningPath {
	idx := BuildPathIndex(nodes, edges)

	var paths []models.ReasoningPath
	for _, edge := range edges {
		if edge.Type != models.RelationPrerequisite {
			continue
		}
		source := idx.Node(edge.SourceID)
		target := idx.Node(edge.TargetID)
		if source == nil || target == nil {
			continue
		}
		paths = append(paths, models.ReasoningPath{
			SourceID:    source.ID,
			TargetID:    target.ID,
			SourceTitle: source.Title,
			TargetTitle: target.Title,
			Type:        models.PathPrerequisite,
			Explanation: fmt.Sprintf("%q is a prerequisite for %q: it covers foundations the later note assumes.", source.Title, target.Title),
		})
	}
	return paths
}

// DeriveCausalPaths emits a causal path for every ordered, connected pair of
// distinct notes sharing at least one key concept. The pairwise scan is
// restricted to pairs actually connected in the adjacency index, keeping the
// cost bounded by the node count the caller already capped.
func DeriveCausalPaths(nodes []models.Note, edges []models.Edge) []models.ReasoningPath {
	idx := BuildPathIndex(nodes, edges)

	type orderedPair struct{ source, target int64 }
	seen := make(map[orderedPair]bool)

	var paths []models.ReasoningPath
	for i := range nodes {
		source := &nodes[i]
		for _, edge := range idx.Outgoing(source.ID) {
			if edge.TargetID == source.ID {
				continue
			}
			pair := orderedPair{source: source.ID, target: edge.TargetID}
			if seen[pair] {
				continue
			}
			seen[pair] = true

			target := idx.Node(edge.TargetID)
			if target == nil {
				continue
			}
			shared := source.ConceptOverlap(target)
			if len(shared) == 0 {
				continue
			}
			paths = append(paths, models.ReasoningPath{
				SourceID:       source.ID,
				TargetID:       target.ID,
				SourceTitle:    source.Title,
				TargetTitle:    target.Title,
				Type:           models.PathCausal,
				CommonConcepts: shared,
				Explanation:    fmt.Sprintf("%q connects to %q through shared concepts: %s.", source.Title, target.Title, strings.Join(shared, ", ")),
			})
		}
	}
	return paths
}

// QueryMatch is one hit for an ad-hoc relationship query; either Path or
// Edge is set depending on the kind of evidence found.
type QueryMatch struct {
	Kind string                `json:"kind"` // "prerequisite", "causal", "dependency", "related"
	Path *models.ReasoningPath `json:"path,omitempty"`
	Edge *models.Edge          `json:"edge,omitempty"`
}

// QueryResult is the structured answer to a natural-language relationship
// query. An empty match set with an explanation is a normal outcome, not an
// error.
type QueryResult struct {
	Query       string       `json:"query"`
	Matches     []QueryMatch `json:"matches"`
	Explanation string       `json:"explanation"`
}

// Phrases that route a query to a derivation strategy
var (
	prerequisiteTerms = []string{"prerequisite", "prereq", "need to know", "before learning", "required for", "foundation for", "start with"}
	causalTerms       = []string{"why", "because", "cause", "leads to", "how does", "connection between"}
	dependencyTerms   = []string{"depend", "dependency", "relies on", "built on"}
)

// queryStopwords are dropped when extracting the subject keyword from a query
var queryStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"what": true, "which": true, "who": true, "how": true, "why": true,
	"do": true, "does": true, "did": true, "i": true, "to": true, "of": true,
	"for": true, "on": true, "in": true, "and": true, "or": true, "my": true,
	"notes": true, "note": true, "know": true, "learn": true, "learning": true,
	"need": true, "before": true, "prerequisite": true, "prereq": true,
	"required": true, "depend": true, "depends": true, "dependency": true,
	"relies": true, "because": true, "cause": true, "causes": true,
	"leads": true, "built": true, "with": true, "start": true, "about": true,
	"between": true, "connection": true, "foundation": true, "understand": true,
}

// AnswerQuery answers an ad-hoc relationship question over the node and edge
// set using a small rule-based classifier:
//
//   - prerequisite-like queries search derived prerequisite paths whose
//     target matches the extracted keyword;
//   - causal-like queries search causal paths touching a matching node;
//   - dependency-like queries search the edge set for prerequisite or
//     builds_on edges pointing at a matching node;
//   - anything else falls back to any reasoning path touching a match.
//
// When no node matches the keyword the result says so; that is a normal
// outcome rather than an error.
func AnswerQuery(nodes []models.Note, edges []models.Edge, query string) QueryResult {
	result := QueryResult{Query: query}

	keywords := extractKeywords(query)
	matched := matchNodes(nodes, keywords)
	if len(matched) == 0 {
		result.Explanation = "No matching concept was found in your notes for this query."
		return result
	}

	lower := strings.ToLower(query)
	switch {
	case containsAny(lower, prerequisiteTerms):
		for _, path := range DerivePrerequisitePaths(nodes, edges) {
			if matched[path.TargetID] {
				p := path
				result.Matches = append(result.Matches, QueryMatch{Kind: "prerequisite", Path: &p})
			}
		}
		result.Explanation = summarize(len(result.Matches), "prerequisite path")

	case containsAny(lower, causalTerms):
		for _, path := range DeriveCausalPaths(nodes, edges) {
			if matched[path.SourceID] || matched[path.TargetID] {
				p := path
				result.Matches = append(result.Matches, QueryMatch{Kind: "causal", Path: &p})
			}
		}
		result.Explanation = summarize(len(result.Matches), "causal link")

	case containsAny(lower, dependencyTerms):
		for _, edge := range edges {
			if edge.Type != models.RelationPrerequisite && edge.Type != models.RelationBuildsOn {
				continue
			}
			if !matched[edge.TargetID] {
				continue
			}
			e := edge
			result.Matches = append(result.Matches, QueryMatch{Kind: "dependency", Edge: &e})
		}
		result.Explanation = summarize(len(result.Matches), "dependency edge")

	default:
		paths := append(DerivePrerequisitePaths(nodes, edges), DeriveCausalPaths(nodes, edges)...)
		for _, path := range paths {
			if matched[path.SourceID] || matched[path.TargetID] {
				p := path
				result.Matches = append(result.Matches, QueryMatch{Kind: "related", Path: &p})
			}
		}
		result.Explanation = summarize(len(result.Matches), "reasoning path")
	}

	return result
}

// extractKeywords tokenizes the query and drops routing terms and stopwords
func extractKeywords(query string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '?', '!', '.', ',', ';', ':', '"', '\'':
			return ' '
		}
		return r
	}, strings.ToLower(query))

	var keywords []string
	for _, token := range strings.Fields(cleaned) {
		if queryStopwords[token] || len(token) < 2 {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}

// matchNodes returns the IDs of nodes whose title or key concepts contain
// any keyword, case-insensitive substring match.
func matchNodes(nodes []models.Note, keywords []string) map[int64]bool {
	matched := make(map[int64]bool)
	if len(keywords) == 0 {
		return matched
	}
	for i := range nodes {
		node := &nodes[i]
		title := strings.ToLower(node.Title)
		for _, keyword := range keywords {
			if strings.Contains(title, keyword) {
				matched[node.ID] = true
				break
			}
			for _, concept := range node.KeyConcepts {
				if strings.Contains(strings.ToLower(concept), keyword) {
					matched[node.ID] = true
					break
				}
			}
			if matched[node.ID] {
				break
			}
		}
	}
	return matched
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func summarize(count int, kind string) string {
	if count == 0 {
		return fmt.Sprintf("No %s found for the matched notes.", kind)
	}
	if count == 1 {
		return fmt.Sprintf("Found 1 %s.", kind)
	}
	return fmt.Sprintf("Found %d %ss.", count, kind)
}
