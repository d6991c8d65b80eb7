// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import (
	"errors"
	"time"
)

// ErrNoDocument is returned when a queried document does not exist.
var ErrNoDocument = errors.New("no such document")

// ErrNoCheckpoint is returned when a document has no saved checkpoint.
var ErrNoCheckpoint = errors.New("no checkpoint saved for document")

// Store is an interface satisfied by the storage service.
type Store interface {
	AddDocument(doc Document) error
	Document(id string) (Document, error)
	Documents() ([]Document, error)
	DelDocument(id string) error

	Checkpoint(docID string) (Checkpoint, error)
	SetCheckpoint(docID string, c Checkpoint) error
}

// Document is an entry in the library.
type Document struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Source string    `json:"source"`
	Text   string    `json:"text"`
	Words  int       `json:"words"`
	Tokens int       `json:"tokens"`
	Added  time.Time `json:"added"`
}

// Checkpoint is the saved reading position of a document, together with the
// speed and mode it was read with.
type Checkpoint struct {
	Index int       `json:"index"`
	WPM   int       `json:"wpm"`
	Mode  string    `json:"mode"`
	Saved time.Time `json:"saved"`
}

// Progress returns the fraction of the document read according to c, in
// [0, 1].
func (c Checkpoint) Progress(doc Document) float64 {
	if doc.Tokens <= 1 {
		return 1
	}
	return float64(c.Index) / float64(doc.Tokens-1)
}
