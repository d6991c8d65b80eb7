//go:build unix

package rsvp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"

	"github.com/quickread/quickread/pkg/env"
	"github.com/quickread/quickread/pkg/prog"
	"github.com/quickread/quickread/pkg/store"
	"github.com/quickread/quickread/pkg/testutil"
)

// Collects what the program writes to the terminal.
type screen struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *screen) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func waitFor(t *testing.T, s *screen, text string) {
	t.Helper()
	deadline := time.Now().Add(testutil.Scaled(5 * time.Second))
	for !strings.Contains(s.String(), text) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %q; screen: %q", text, s.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestProgram_ReadsAndSavesCheckpoint(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.Setenv(t, env.XDG_CONFIG_HOME, dir)
	testutil.Unsetenv(t, env.QUICKREAD_CONFIG)
	testutil.WriteFiles(dir, map[string]string{
		"story.txt": "It was a dark and stormy night.",
	})
	db := filepath.Join(dir, "db.bolt")

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("cannot open pty:", err)
	}
	defer ptmx.Close()
	defer tty.Close()
	pty.Setsize(tty, &pty.Winsize{Rows: 20, Cols: 60})

	var s screen
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			s.Write(buf[:n])
			if err != nil {
				return
			}
		}
	}()

	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer devNull.Close()
	exitCh := make(chan int, 1)
	go func() {
		exitCh <- prog.Run([3]*os.File{tty, tty, devNull},
			[]string{"quickread", "-db", db, "-wpm", "200", "-from", "3", "story.txt"}, Program)
	}()

	waitFor(t, &s, "3/7")
	// Step forward twice, then quit.
	ptmx.WriteString("\033[C\033[C")
	waitFor(t, &s, "5/7")
	ptmx.WriteString("q")

	select {
	case exit := <-exitCh:
		if exit != 0 {
			t.Fatalf("exit status %d", exit)
		}
	case <-time.After(testutil.Scaled(5 * time.Second)):
		t.Fatal("program did not quit")
	}
	waitFor(t, &s, "story: stopped at word 5 of 7")

	st, err := store.NewStore(db)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	docs, err := st.Documents()
	if err != nil || len(docs) != 1 {
		t.Fatalf("Documents() -> (%v, %v)", docs, err)
	}
	c, err := st.Checkpoint(docs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if c.Index != 4 || c.WPM != 200 || c.Mode != "autoplay" {
		t.Errorf("checkpoint = %+v, want index 4 at 200 wpm in autoplay", c)
	}
}
