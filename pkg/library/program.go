package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/quickread/quickread/pkg/prog"
	"github.com/quickread/quickread/pkg/store/storedefs"
)

// Program is the subprogram for -list and -forget.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if !f.List && f.Forget == "" {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -list or -forget")
	}
	_, st, err := Load(f)
	if err != nil {
		return err
	}
	defer st.Close()

	if f.Forget != "" {
		doc, err := Find(st, f.Forget)
		if err != nil {
			return err
		}
		if err := st.DelDocument(doc.ID); err != nil {
			return err
		}
		fmt.Fprintf(fds[1], "Forgot %s (%s)\n", doc.Title, doc.ID)
		return nil
	}

	entries, err := List(st)
	if err != nil {
		return err
	}
	if f.JSON {
		return json.NewEncoder(fds[1]).Encode(entries)
	}
	WriteList(fds[1], entries)
	return nil
}

// Entry describes a document in the library listing.
type Entry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Source   string    `json:"source"`
	Words    int       `json:"words"`
	Progress float64   `json:"progress"`
	Added    time.Time `json:"added"`
	// Zero if never read.
	LastRead time.Time `json:"last-read"`
}

// List returns an Entry for every document in the library, oldest first.
func List(st storedefs.Store) ([]Entry, error) {
	docs, err := st.Documents()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(docs))
	for i, doc := range docs {
		entries[i] = Entry{ID: doc.ID, Title: doc.Title, Source: doc.Source,
			Words: doc.Words, Added: doc.Added}
		c, err := st.Checkpoint(doc.ID)
		switch {
		case err == nil:
			entries[i].Progress = c.Progress(doc)
			entries[i].LastRead = c.Saved
		case !errors.Is(err, storedefs.ErrNoCheckpoint):
			return nil, err
		}
	}
	return entries, nil
}

// Width of the title column.
const titleWidth = 40

// WriteList writes entries as a table, one line per document.
func WriteList(w io.Writer, entries []Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "The library is empty.")
		return
	}
	for _, e := range entries {
		title := runewidth.FillRight(runewidth.Truncate(e.Title, titleWidth, "…"), titleWidth)
		fmt.Fprintf(w, "%.8s  %s  %4.0f%%  %d words\n", e.ID, title, e.Progress*100, e.Words)
	}
}
