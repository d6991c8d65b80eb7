// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/quickread/quickread/pkg/store/storedefs"
)

var (
	t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	docA = storedefs.Document{
		ID: "a", Title: "Alpha", Source: "/tmp/a.txt", Text: "one two",
		Words: 2, Tokens: 2, Added: t0.Add(time.Hour)}
	docB = storedefs.Document{
		ID: "b", Title: "Beta", Source: "/tmp/b.pdf", Text: "x\n\ny",
		Words: 2, Tokens: 3, Added: t0}
)

// TestDocuments tests the document API of a Store. The Store must be empty.
func TestDocuments(t *testing.T, s storedefs.Store) {
	t.Helper()

	docs, err := s.Documents()
	if err != nil || len(docs) != 0 {
		t.Errorf("Documents() -> %v, %v, want empty", docs, err)
	}
	if _, err := s.Document("a"); !errors.Is(err, storedefs.ErrNoDocument) {
		t.Errorf("Document(missing) -> err %v, want ErrNoDocument", err)
	}

	for _, doc := range []storedefs.Document{docA, docB} {
		if err := s.AddDocument(doc); err != nil {
			t.Errorf("AddDocument(%q) -> %v", doc.ID, err)
		}
	}
	got, err := s.Document("a")
	if err != nil {
		t.Errorf("Document(a) -> error %v", err)
	}
	if diff := cmp.Diff(docA, got); diff != "" {
		t.Errorf("Document(a) (-want +got):\n%s", diff)
	}

	docs, err = s.Documents()
	if err != nil {
		t.Errorf("Documents() -> error %v", err)
	}
	if diff := cmp.Diff([]storedefs.Document{docB, docA}, docs); diff != "" {
		t.Errorf("Documents() (-want +got):\n%s", diff)
	}

	if err := s.DelDocument("b"); err != nil {
		t.Errorf("DelDocument(b) -> %v", err)
	}
	if err := s.DelDocument("b"); !errors.Is(err, storedefs.ErrNoDocument) {
		t.Errorf("DelDocument(b) again -> %v, want ErrNoDocument", err)
	}
	docs, _ = s.Documents()
	if len(docs) != 1 || docs[0].ID != "a" {
		t.Errorf("Documents() after deletion -> %v", docs)
	}
}

// TestCheckpoints tests the checkpoint API of a Store. The Store must be
// empty.
func TestCheckpoints(t *testing.T, s storedefs.Store) {
	t.Helper()

	c := storedefs.Checkpoint{Index: 1, WPM: 450, Mode: "hold-space", Saved: t0}
	if err := s.SetCheckpoint("a", c); !errors.Is(err, storedefs.ErrNoDocument) {
		t.Errorf("SetCheckpoint(missing doc) -> %v, want ErrNoDocument", err)
	}

	if err := s.AddDocument(docA); err != nil {
		t.Fatalf("AddDocument -> %v", err)
	}
	if _, err := s.Checkpoint("a"); !errors.Is(err, storedefs.ErrNoCheckpoint) {
		t.Errorf("Checkpoint(a) before saving -> %v, want ErrNoCheckpoint", err)
	}
	if err := s.SetCheckpoint("a", c); err != nil {
		t.Errorf("SetCheckpoint(a) -> %v", err)
	}
	got, err := s.Checkpoint("a")
	if err != nil {
		t.Errorf("Checkpoint(a) -> error %v", err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("Checkpoint(a) (-want +got):\n%s", diff)
	}

	// Re-adding the document keeps its checkpoint.
	if err := s.AddDocument(docA); err != nil {
		t.Errorf("AddDocument again -> %v", err)
	}
	if got, _ := s.Checkpoint("a"); !cmp.Equal(c, got) {
		t.Errorf("checkpoint lost on re-add: %+v", got)
	}

	// Deleting the document removes its checkpoint.
	s.DelDocument("a")
	if _, err := s.Checkpoint("a"); !errors.Is(err, storedefs.ErrNoCheckpoint) {
		t.Errorf("Checkpoint(a) after deletion -> %v, want ErrNoCheckpoint", err)
	}
}
