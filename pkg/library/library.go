// Package library manages the documents a user has read: adding files to the
// store, finding documents again, and the -list and -forget subprograms.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/quickread/quickread/pkg/config"
	"github.com/quickread/quickread/pkg/extract"
	"github.com/quickread/quickread/pkg/logutil"
	"github.com/quickread/quickread/pkg/prog"
	"github.com/quickread/quickread/pkg/store"
	"github.com/quickread/quickread/pkg/store/storedefs"
	"github.com/quickread/quickread/pkg/token"
)

var logger = logutil.GetLogger("[library] ")

// ErrAmbiguous is returned by Find when an ID prefix matches more than one
// document.
var ErrAmbiguous = errors.New("ambiguous document ID")

// Load loads the configuration and opens the store named by the flags and
// the configuration. The caller must close the store.
func Load(f *prog.Flags) (config.Config, store.DBStore, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return cfg, nil, err
	}
	if f.Log == "" && cfg.Log != "" {
		if err := logutil.SetOutputFile(cfg.Log); err != nil {
			return cfg, nil, err
		}
	}
	path := f.DB
	if path == "" {
		path, err = cfg.DBPath()
		if err != nil {
			return cfg, nil, err
		}
	}
	logger.Println("opening library", path)
	st, err := store.NewStore(path)
	if err != nil {
		return cfg, nil, fmt.Errorf("open library %s: %w", path, err)
	}
	return cfg, st, nil
}

// Add extracts the text of the file at path and adds it to the library. A
// non-empty title overrides the one from the file.
//
// Documents are identified by their normalized text. Adding a file whose text
// is already in the library keeps the existing entry and its checkpoint, only
// updating the title when one is given.
func Add(st storedefs.Store, path, title string, now time.Time) (storedefs.Document, token.Result, error) {
	text, err := extract.File(path)
	if err != nil {
		return storedefs.Document{}, token.Result{}, err
	}
	res, err := token.Tokenize(text.Body)
	if err != nil {
		return storedefs.Document{}, token.Result{}, fmt.Errorf("%s: %w", path, err)
	}
	id := res.DocID.String()
	doc, err := st.Document(id)
	switch {
	case err == nil:
		if title == "" {
			return doc, res, nil
		}
		doc.Title = title
	case errors.Is(err, storedefs.ErrNoDocument):
		if title == "" {
			title = text.Title
		}
		doc = storedefs.Document{
			ID:     id,
			Title:  title,
			Source: path,
			Text:   res.FullText,
			Words:  token.WordCount(res.Tokens),
			Tokens: len(res.Tokens),
			Added:  now,
		}
	default:
		return storedefs.Document{}, token.Result{}, err
	}
	return doc, res, st.AddDocument(doc)
}

// Find looks up a document by its ID or a unique prefix of it.
func Find(st storedefs.Store, id string) (storedefs.Document, error) {
	if doc, err := st.Document(id); !errors.Is(err, storedefs.ErrNoDocument) {
		return doc, err
	}
	docs, err := st.Documents()
	if err != nil {
		return storedefs.Document{}, err
	}
	var found []storedefs.Document
	for _, doc := range docs {
		if strings.HasPrefix(doc.ID, id) {
			found = append(found, doc)
		}
	}
	switch len(found) {
	case 0:
		return storedefs.Document{}, fmt.Errorf("%s: %w", id, storedefs.ErrNoDocument)
	case 1:
		return found[0], nil
	default:
		return storedefs.Document{}, fmt.Errorf("%s: %w", id, ErrAmbiguous)
	}
}

// Open returns the document named by arg together with its tokens. If arg is
// an existing file, it is added to the library first; otherwise it is taken as
// a document ID or ID prefix.
func Open(st storedefs.Store, arg, title string, now time.Time) (storedefs.Document, token.Result, error) {
	if _, err := os.Stat(arg); !errors.Is(err, fs.ErrNotExist) {
		return Add(st, arg, title, now)
	}
	doc, err := Find(st, arg)
	if err != nil {
		return doc, token.Result{}, err
	}
	res, err := token.Tokenize(doc.Text)
	return doc, res, err
}
