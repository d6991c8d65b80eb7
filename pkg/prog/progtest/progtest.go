// Package progtest provides a framework for testing subprograms.
//
// The entry point is Test, which runs a [prog.Program] against a list of
// cases built with ThatQuickread:
//
//	Test(t, someProgram,
//		ThatQuickread("-version").WritesStdout("v0.1.0\n"),
//		ThatQuickread("-bad").ExitsWith(2).WritesStderrContaining("Usage:"),
//	)
package progtest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/quickread/quickread/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitStatus int
	stdout     output
	stderr     output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return fmt.Sprintf("text containing %q", o.content)
	}
	return fmt.Sprintf("%q", o.content)
}

// ThatQuickread returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "quickread -bad-flag" exits with 2 is
// written as:
//
//	ThatQuickread("-bad-flag").ExitsWith(2)
func ThatQuickread(args ...string) Case {
	return Case{args: append([]string{"quickread"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin of
// the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatQuickread("x.txt").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit status.
func (c Case) ExitsWith(code int) Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program
// run to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program
// run to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(t, p, c.args, c.stdin)
			if r.exitStatus != c.want.exitStatus {
				t.Errorf("got exit status %v, want %v", r.exitStatus, c.want.exitStatus)
			}
			if !matchOutput(r.stdout.content, c.want.stdout) {
				t.Errorf("got stdout %v, want %v", r.stdout, c.want.stdout)
			}
			if !matchOutput(r.stderr.content, c.want.stderr) {
				t.Errorf("got stderr %v, want %v", r.stderr, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments and stdin. It returns the
// Program's exit status and its stdout and stderr outputs.
func Run(t *testing.T, p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	t.Helper()
	r := run(t, p, append([]string{"quickread"}, args...), stdin)
	return r.exitStatus, r.stdout.content, r.stderr.content
}

func run(t *testing.T, p prog.Program, args []string, stdin string) result {
	t.Helper()
	r0, w0 := pipe(t)
	r1, w1 := pipe(t)
	r2, w2 := pipe(t)

	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	// Drain the outputs concurrently so that the program never blocks on a
	// full pipe.
	stdout := readAllAsync(r1)
	stderr := readAllAsync(r2)

	exit := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	return result{exit, output{content: <-stdout}, output{content: <-stderr}}
}

func pipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return r, w
}

func readAllAsync(r io.Reader) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		ch <- string(b)
	}()
	return ch
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}
