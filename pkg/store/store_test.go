package store_test

import (
	"path/filepath"
	"testing"

	"github.com/quickread/quickread/pkg/store"
	"github.com/quickread/quickread/pkg/store/storedefs"
	"github.com/quickread/quickread/pkg/store/storetest"
)

func TestDocuments(t *testing.T) {
	storetest.TestDocuments(t, store.MustTempStore(t))
}

func TestCheckpoints(t *testing.T) {
	storetest.TestCheckpoints(t, store.MustTempStore(t))
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")
	s, err := store.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	s.AddDocument(storedefs.Document{ID: "x", Title: "X"})
	s.SetCheckpoint("x", storedefs.Checkpoint{Index: 7})
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = store.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if doc, err := s.Document("x"); err != nil || doc.Title != "X" {
		t.Errorf("Document(x) after reopening -> %v, %v", doc, err)
	}
	if c, err := s.Checkpoint("x"); err != nil || c.Index != 7 {
		t.Errorf("Checkpoint(x) after reopening -> %v, %v", c, err)
	}
}

func TestCheckpointProgress(t *testing.T) {
	doc := storedefs.Document{Tokens: 11}
	if p := (storedefs.Checkpoint{Index: 5}).Progress(doc); p != 0.5 {
		t.Errorf("Progress = %v, want 0.5", p)
	}
	if p := (storedefs.Checkpoint{}).Progress(storedefs.Document{Tokens: 1}); p != 1 {
		t.Errorf("Progress of a one-token document = %v, want 1", p)
	}
}
