// Package rsvp implements the main subprogram of quickread: reading a file or
// a stored document one word at a time in the terminal.
package rsvp

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quickread/quickread/pkg/clock"
	"github.com/quickread/quickread/pkg/library"
	"github.com/quickread/quickread/pkg/logutil"
	"github.com/quickread/quickread/pkg/player"
	"github.com/quickread/quickread/pkg/prog"
	"github.com/quickread/quickread/pkg/reader"
	"github.com/quickread/quickread/pkg/session"
	"github.com/quickread/quickread/pkg/store/storedefs"
	"github.com/quickread/quickread/pkg/term"
	"github.com/quickread/quickread/pkg/token"
	"github.com/quickread/quickread/pkg/ui"
)

var logger = logutil.GetLogger("[rsvp] ")

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("quickread needs a terminal to read in")

// Program is the reading subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	switch len(args) {
	case 0:
		return prog.BadUsage("no file or document ID given")
	case 1:
	default:
		return prog.BadUsage("only one file or document ID may be given")
	}
	overrides, err := settingsPatch(f)
	if err != nil {
		return err
	}
	if !term.IsATTY(fds[0]) || !term.IsATTY(fds[1]) {
		return ErrNotTerminal
	}

	cfg, st, err := library.Load(f)
	if err != nil {
		return err
	}
	defer st.Close()
	doc, res, err := library.Open(st, args[0], f.Title, time.Now())
	if err != nil {
		return err
	}
	start, settings, err := resume(st, doc.ID, cfg.Settings())
	if err != nil {
		return err
	}
	settings = overrides.Apply(settings)
	if f.From > 0 {
		start = wordIndex(res.Tokens, f.From)
	}
	logger.Printf("reading %s from %d with %+v", doc.ID, start, settings)

	restore, err := term.Setup(fds[0], fds[1])
	if err != nil {
		return err
	}
	p := player.New(player.Config{
		Out:    fds[1],
		Size:   func() (int, int) { return term.Size(fds[1]) },
		Styles: ui.DefaultStyles(lipgloss.NewRenderer(fds[1])),
	})
	c := clock.NewReal(p.Post)
	sess := session.New(doc.ID, res.Tokens,
		session.Config{Start: start, Settings: settings}, c, st)
	resize, stopResize := term.NotifyResize()

	err = p.Run(fds[0], sess.Engine(), c, resize)
	stopResize()
	snapshot := sess.Engine().Snapshot()
	err = errors.Join(err, sess.Close(), restore())
	if err != nil {
		return err
	}
	fmt.Fprintf(fds[1], "%s: stopped at word %d of %d\n",
		doc.Title, wordNumber(res.Tokens, snapshot.Index), doc.Words)
	return nil
}

// Returns the saved position and settings of a document, or the start and
// defaults if it has not been read before.
func resume(st storedefs.Store, docID string, defaults reader.Settings) (int, reader.Settings, error) {
	c, err := st.Checkpoint(docID)
	if errors.Is(err, storedefs.ErrNoCheckpoint) {
		return 0, defaults, nil
	} else if err != nil {
		return 0, defaults, err
	}
	start, settings := session.Resume(c, defaults)
	return start, settings, nil
}

// Returns the overrides of the reading settings given on the command line.
func settingsPatch(f *prog.Flags) (reader.SettingsPatch, error) {
	var p reader.SettingsPatch
	if f.WPM != 0 {
		wpm := f.WPM
		p.WPM = &wpm
	}
	if f.Mode != "" {
		mode, err := reader.ParseMode(f.Mode)
		if err != nil {
			return p, prog.BadUsage(err.Error())
		}
		p.Mode = &mode
	}
	if f.From < 0 {
		return p, prog.BadUsage("-from must be positive")
	}
	return p, nil
}

// Returns the index of the nth word (1-based), clamped to the last token.
func wordIndex(tokens []token.Token, n int) int {
	for i, t := range tokens {
		if t.Kind == token.Word {
			n--
			if n == 0 {
				return i
			}
		}
	}
	return len(tokens) - 1
}

// Returns the 1-based number of the word at or before index i.
func wordNumber(tokens []token.Token, i int) int {
	return token.WordCount(tokens[:min(i+1, len(tokens))])
}
