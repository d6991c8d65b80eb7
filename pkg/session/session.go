// Package session binds a reader engine to one document for the duration of a
// reading session, and saves reading checkpoints as the position settles.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/quickread/quickread/pkg/clock"
	"github.com/quickread/quickread/pkg/debounce"
	"github.com/quickread/quickread/pkg/logutil"
	"github.com/quickread/quickread/pkg/reader"
	"github.com/quickread/quickread/pkg/store/storedefs"
	"github.com/quickread/quickread/pkg/token"
)

var logger = logutil.GetLogger("[session] ")

// DefaultSaveDelay is how long the position and settings have to stay
// unchanged before a checkpoint is saved.
const DefaultSaveDelay = time.Second

// Sink persists checkpoints. It is satisfied by storedefs.Store.
type Sink interface {
	SetCheckpoint(docID string, c storedefs.Checkpoint) error
}

// Config configures a Session.
type Config struct {
	// Start is the initial position, from a saved checkpoint or a deep link.
	Start     int
	Settings  reader.Settings
	SaveDelay time.Duration
	// Now returns the time stamped on saved checkpoints. Defaults to time.Now.
	Now func() time.Time
}

// Session owns an Engine for one document.
type Session struct {
	docID  string
	engine *reader.Engine
	lookup token.Lookup
	sink   Sink
	now    func() time.Time

	saver       *debounce.Debouncer
	unsubscribe func()
	// Last checkpoint saved or loaded, with a zero Saved field.
	saved storedefs.Checkpoint
	err   error
}

// New starts a session for the document docID with the given tokens. The
// clock drives both the engine and the checkpoint debouncing. A nil sink
// disables saving.
func New(docID string, tokens []token.Token, cfg Config, c clock.Clock, sink Sink) *Session {
	if cfg.SaveDelay <= 0 {
		cfg.SaveDelay = DefaultSaveDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Session{
		docID:  docID,
		engine: reader.NewEngine(tokens, cfg.Start, cfg.Settings, c),
		lookup: token.NewLookup(tokens),
		sink:   sink,
		now:    cfg.Now,
	}
	s.saved = checkpointOf(s.engine.Snapshot())
	s.saver = debounce.New(c, cfg.SaveDelay, s.save)
	s.unsubscribe = s.engine.Subscribe(s.onChange)
	return s
}

// DocID returns the ID of the document being read.
func (s *Session) DocID() string { return s.docID }

// Engine returns the engine of the session.
func (s *Session) Engine() *reader.Engine { return s.engine }

// SeekToToken moves to the token with the given ID, for instance a word the
// user picked from the surrounding text. It reports whether the token exists.
func (s *Session) SeekToToken(id uuid.UUID) bool {
	i := s.lookup.IndexOf(id)
	if i < 0 {
		return false
	}
	s.engine.SeekTo(i)
	return true
}

// Err returns the error of the last failed save, if any.
func (s *Session) Err() error { return s.err }

// Save saves a checkpoint now if there is an unsaved change.
func (s *Session) Save() error {
	s.saver.Cancel()
	s.save()
	return s.err
}

// Close ends the session: it saves any unsaved change, stops the engine and
// cancels every pending timer. The session must not be used afterwards.
func (s *Session) Close() error {
	s.unsubscribe()
	err := s.Save()
	s.saver.Stop()
	s.engine.Close()
	return err
}

func (s *Session) onChange(snapshot reader.Snapshot) {
	if checkpointOf(snapshot) != s.saved {
		s.saver.Trigger()
	}
}

func (s *Session) save() {
	c := checkpointOf(s.engine.Snapshot())
	if c == s.saved || s.sink == nil {
		return
	}
	stamped := c
	stamped.Saved = s.now()
	if err := s.sink.SetCheckpoint(s.docID, stamped); err != nil {
		logger.Printf("failed to save checkpoint of %s: %v", s.docID, err)
		s.err = err
		return
	}
	logger.Printf("saved checkpoint of %s at %d", s.docID, c.Index)
	s.saved, s.err = c, nil
}

func checkpointOf(snapshot reader.Snapshot) storedefs.Checkpoint {
	return storedefs.Checkpoint{
		Index: snapshot.Index,
		WPM:   snapshot.Settings.WPM,
		Mode:  snapshot.Settings.Mode.String(),
	}
}

// Resume returns the start position and settings for reading a document with
// the given saved checkpoint. Settings from the checkpoint override those in
// defaults; an invalid mode in the checkpoint is ignored.
func Resume(c storedefs.Checkpoint, defaults reader.Settings) (int, reader.Settings) {
	settings := defaults
	if c.WPM != 0 {
		settings.WPM = c.WPM
	}
	if mode, err := reader.ParseMode(c.Mode); err == nil {
		settings.Mode = mode
	}
	return c.Index, settings.Normalize()
}
