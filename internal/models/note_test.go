// ABOUTME: Tests for the Note model helpers
// ABOUTME: Tag matching, concept overlap, and embedding text assembly

package models

import (
	"reflect"
	"testing"
)

func TestNote_HasAnyTag(t *testing.T) {
	note := &Note{Tags: []string{"Fundamental", "ml"}}

	tests := []struct {
		name string
		tags []string
		want bool
	}{
		{"exact match", []string{"ml"}, true},
		{"case-insensitive match", []string{"fundamental"}, true},
		{"one of several", []string{"advanced", "ML"}, true},
		{"no match", []string{"expert"}, false},
		{"empty query", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := note.HasAnyTag(tt.tags...); got != tt.want {
				t.Errorf("HasAnyTag(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestNote_HasAnyTag_NoTags(t *testing.T) {
	note := &Note{}
	if note.HasAnyTag("anything") {
		t.Error("HasAnyTag() on untagged note = true, want false")
	}
}

func TestNote_ConceptOverlap(t *testing.T) {
	a := &Note{KeyConcepts: []string{"Backpropagation", "gradient descent", "layers", "Backpropagation"}}
	b := &Note{KeyConcepts: []string{"GRADIENT DESCENT", "backpropagation", "dropout"}}

	got := a.ConceptOverlap(b)
	// Order follows a's concept list; duplicates collapse; a's casing wins.
	want := []string{"Backpropagation", "gradient descent"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConceptOverlap() = %v, want %v", got, want)
	}
}

func TestNote_ConceptOverlap_Disjoint(t *testing.T) {
	a := &Note{KeyConcepts: []string{"tensors"}}
	b := &Note{KeyConcepts: []string{"queues"}}

	if got := a.ConceptOverlap(b); got != nil {
		t.Errorf("ConceptOverlap() = %v, want nil", got)
	}
}

func TestNote_ConceptOverlap_Empty(t *testing.T) {
	a := &Note{KeyConcepts: []string{"tensors"}}
	b := &Note{}

	if got := a.ConceptOverlap(b); got != nil {
		t.Errorf("ConceptOverlap() with empty other = %v, want nil", got)
	}
	if got := b.ConceptOverlap(a); got != nil {
		t.Errorf("ConceptOverlap() with empty receiver = %v, want nil", got)
	}
}

func TestNote_EmbeddingText(t *testing.T) {
	note := &Note{
		Title:       "Neural Networks",
		Summary:     "Layered function approximators",
		KeyConcepts: []string{"layers", "weights"},
	}

	want := "Neural Networks\nLayered function approximators\nlayers, weights"
	if got := note.EmbeddingText(); got != want {
		t.Errorf("EmbeddingText() = %q, want %q", got, want)
	}
}

func TestNote_EmbeddingText_TitleOnly(t *testing.T) {
	note := &Note{Title: "Queues"}
	if got := note.EmbeddingText(); got != "Queues" {
		t.Errorf("EmbeddingText() = %q, want %q", got, "Queues")
	}
}

func TestTopicEntry_Category(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"nested path", "ML/NN", "ML"},
		{"deep path", "ML/NN/CNN", "ML"},
		{"single segment", "Databases", "Databases"},
		{"empty path", "", "Uncategorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &TopicEntry{Path: tt.path}
			if got := entry.Category(); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelationshipType_Directional(t *testing.T) {
	if RelationRelated.Directional() {
		t.Error("related should be undirected")
	}
	for _, typ := range []RelationshipType{RelationPrerequisite, RelationBuildsOn, RelationPrecedes} {
		if !typ.Directional() {
			t.Errorf("%s should be directional", typ)
		}
	}
}
