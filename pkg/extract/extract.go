// Package extract gets the plain text out of document files.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/quickread/quickread/pkg/logutil"
)

var logger = logutil.GetLogger("[extract] ")

// ErrUnsupportedFormat is returned for files whose format is not known.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Text is the text content of a document.
type Text struct {
	Title string
	Body  string
}

// File extracts the text of the named file, choosing the format by its
// extension.
func File(path string) (Text, error) {
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".txt", ".text", ".md", ".markdown":
		f, err := os.Open(path)
		if err != nil {
			return Text{}, err
		}
		defer f.Close()
		body, err := Plain(f)
		return Text{title, body}, err
	case ".pdf":
		return PDF(path, title)
	default:
		return Text{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Plain reads UTF-8 text from r. A byte order mark is dropped and invalid
// byte sequences are replaced with U+FFFD.
func Plain(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s := strings.TrimPrefix(string(data), "\ufeff")
	return strings.ToValidUTF8(s, "\uFFFD"), nil
}

// PDF extracts the text of a PDF file. Pages are separated by paragraph
// breaks. The title is taken from the document information dictionary when
// present, and is fallbackTitle otherwise.
func PDF(path, fallbackTitle string) (Text, error) {
	file, r, err := pdf.Open(path)
	if err != nil {
		return Text{}, fmt.Errorf("open pdf: %w", err)
	}
	defer file.Close()

	title := fallbackTitle
	if t := r.Trailer().Key("Info").Key("Title").Text(); strings.TrimSpace(t) != "" {
		title = t
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() || page.V.Key("Contents").Kind() == pdf.Null {
			logger.Printf("%s: page %d has no contents", path, i)
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return Text{}, fmt.Errorf("read page %d: %w", i, err)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(content)
	}
	return Text{title, sb.String()}, nil
}
