package extract_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/quickread/quickread/pkg/extract"
	"github.com/quickread/quickread/pkg/testutil"
)

func TestFile_Plain(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(dir, map[string]string{
		"story.txt": "\ufeffOnce upon\n\na time.",
		"notes":     "bad \xff byte",
		"README.md": "# Heading",
	})

	text, err := File(filepath.Join(dir, "story.txt"))
	if err != nil || text != (Text{"story", "Once upon\n\na time."}) {
		t.Errorf("File(story.txt) -> %+v, %v", text, err)
	}
	text, err = File(filepath.Join(dir, "notes"))
	if err != nil || text != (Text{"notes", "bad \uFFFD byte"}) {
		t.Errorf("File(notes) -> %+v, %v", text, err)
	}
	text, err = File(filepath.Join(dir, "README.md"))
	if err != nil || text.Body != "# Heading" {
		t.Errorf("File(README.md) -> %+v, %v", text, err)
	}
}

func TestFile_Errors(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(dir, map[string]string{
		"book.docx":  "PK",
		"broken.pdf": "not a pdf at all",
	})

	_, err := File(filepath.Join(dir, "book.docx"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("File(book.docx) -> %v, want ErrUnsupportedFormat", err)
	}
	_, err = File(filepath.Join(dir, "broken.pdf"))
	if err == nil || !strings.Contains(err.Error(), "open pdf") {
		t.Errorf("File(broken.pdf) -> %v, want an open error", err)
	}
	_, err = File(filepath.Join(dir, "missing.txt"))
	if err == nil {
		t.Errorf("File(missing.txt) -> nil error")
	}
}

func TestPlain(t *testing.T) {
	s, err := Plain(strings.NewReader("plain"))
	if s != "plain" || err != nil {
		t.Errorf("Plain -> %q, %v", s, err)
	}
}
