// ABOUTME: Tests for note metadata persistence and precomputed links
// ABOUTME: Save/Get roundtrip, tag filters, ordering, link rewrites

package sqlite

import (
	"testing"
	"time"

	"github.com/noteweave/noteweave/internal/models"
)

func TestNoteStore_SaveAssignsID(t *testing.T) {
	store, _ := newTestVectors(t)

	note := &models.Note{Title: "First"}
	if err := store.Notes().Save(note); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if note.ID == 0 {
		t.Error("Save() left ID at 0")
	}
	if note.CreatedAt.IsZero() {
		t.Error("Save() left CreatedAt at zero")
	}
}

func TestNoteStore_SaveRequiresTitle(t *testing.T) {
	store, _ := newTestVectors(t)

	if err := store.Notes().Save(&models.Note{}); err == nil {
		t.Error("Save() without title should error")
	}
}

func TestNoteStore_GetRoundtrip(t *testing.T) {
	store, _ := newTestVectors(t)

	note := &models.Note{
		Title:       "Neural Networks",
		Summary:     "Layered function approximators",
		Tags:        []string{"ml", "advanced"},
		KeyConcepts: []string{"backpropagation", "layers"},
	}
	if err := store.Notes().Save(note); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Notes().Get(note.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil for saved note")
	}
	if got.Title != note.Title || got.Summary != note.Summary {
		t.Errorf("Get() = %+v, want %+v", got, note)
	}
	if len(got.Tags) != 2 || got.Tags[1] != "advanced" {
		t.Errorf("Tags = %v, want [ml advanced]", got.Tags)
	}
	if len(got.KeyConcepts) != 2 || got.KeyConcepts[0] != "backpropagation" {
		t.Errorf("KeyConcepts = %v", got.KeyConcepts)
	}
}

func TestNoteStore_GetMissing(t *testing.T) {
	store, _ := newTestVectors(t)

	got, err := store.Notes().Get(42)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil", got)
	}
}

func TestNoteStore_SaveUpdatesExisting(t *testing.T) {
	store, _ := newTestVectors(t)

	note := &models.Note{Title: "Draft"}
	if err := store.Notes().Save(note); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	note.Title = "Final"
	note.Tags = []string{"done"}
	if err := store.Notes().Save(note); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := store.Notes().Get(note.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Final" || len(got.Tags) != 1 {
		t.Errorf("Get() = %+v, want updated note", got)
	}

	all, err := store.Notes().GetNotes(nil, 0)
	if err != nil {
		t.Fatalf("GetNotes() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len(all) = %d, want 1 after update", len(all))
	}
}

func TestNoteStore_GetNotesNewestFirst(t *testing.T) {
	store, _ := newTestVectors(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, title := range []string{"Oldest", "Middle", "Newest"} {
		note := &models.Note{Title: title, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := store.Notes().Save(note); err != nil {
			t.Fatalf("Save(%q) error = %v", title, err)
		}
	}

	notes, err := store.Notes().GetNotes(nil, 0)
	if err != nil {
		t.Fatalf("GetNotes() error = %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("len(notes) = %d, want 3", len(notes))
	}
	if notes[0].Title != "Newest" || notes[2].Title != "Oldest" {
		t.Errorf("order = %q, %q, %q; want Newest first", notes[0].Title, notes[1].Title, notes[2].Title)
	}
}

func TestNoteStore_GetNotesTagFilterAndLimit(t *testing.T) {
	store, _ := newTestVectors(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		tags := []string{"ml"}
		if i%2 == 1 {
			tags = []string{"cooking"}
		}
		note := &models.Note{
			Title:     "Note",
			Tags:      tags,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Notes().Save(note); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	notes, err := store.Notes().GetNotes([]string{"ML"}, 1)
	if err != nil {
		t.Fatalf("GetNotes() error = %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("len(notes) = %d, want 1", len(notes))
	}
	if !notes[0].HasAnyTag("ml") {
		t.Errorf("filtered note tags = %v, want ml", notes[0].Tags)
	}
}

func TestNoteStore_ReplaceLinks(t *testing.T) {
	store, _ := newTestVectors(t)

	a := mustSaveNote(t, store, "A")
	b := mustSaveNote(t, store, "B")
	c := mustSaveNote(t, store, "C")

	first := []models.Edge{
		{SourceID: a, TargetID: b, Similarity: 0.9, Type: models.RelationRelated},
		{SourceID: a, TargetID: c, Similarity: 0.8, Type: models.RelationPrecedes},
	}
	if err := store.Notes().ReplaceLinks(first); err != nil {
		t.Fatalf("ReplaceLinks() error = %v", err)
	}

	links, err := store.Notes().GetRelatedNotes(a)
	if err != nil {
		t.Fatalf("GetRelatedNotes() error = %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("len(links) = %d, want 2", len(links))
	}
	// Strongest first
	if links[0].ID != b || links[0].Similarity != 0.9 {
		t.Errorf("links[0] = %+v, want note %d at 0.9", links[0], b)
	}

	// A rewrite replaces the previous set wholesale.
	second := []models.Edge{
		{SourceID: b, TargetID: c, Similarity: 0.7, Type: models.RelationRelated},
	}
	if err := store.Notes().ReplaceLinks(second); err != nil {
		t.Fatalf("second ReplaceLinks() error = %v", err)
	}

	links, err = store.Notes().GetRelatedNotes(a)
	if err != nil {
		t.Fatalf("GetRelatedNotes() error = %v", err)
	}
	if len(links) != 0 {
		t.Errorf("len(links) = %d, want 0 after rewrite", len(links))
	}

	links, err = store.Notes().GetRelatedNotes(c)
	if err != nil {
		t.Fatalf("GetRelatedNotes() error = %v", err)
	}
	if len(links) != 1 || links[0].ID != b {
		t.Errorf("links = %+v, want single link to %d", links, b)
	}
}

func TestNoteStore_GetRelatedNotesBothEnds(t *testing.T) {
	store, _ := newTestVectors(t)

	a := mustSaveNote(t, store, "A")
	b := mustSaveNote(t, store, "B")

	edges := []models.Edge{
		{SourceID: a, TargetID: b, Similarity: 0.9, Type: models.RelationRelated},
	}
	if err := store.Notes().ReplaceLinks(edges); err != nil {
		t.Fatalf("ReplaceLinks() error = %v", err)
	}

	// The link is stored once but visible from either endpoint.
	for _, id := range []int64{a, b} {
		links, err := store.Notes().GetRelatedNotes(id)
		if err != nil {
			t.Fatalf("GetRelatedNotes(%d) error = %v", id, err)
		}
		if len(links) != 1 {
			t.Errorf("GetRelatedNotes(%d) = %+v, want one link", id, links)
		}
	}
}
