package prog_test

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/quickread/quickread/pkg/prog"
	"github.com/quickread/quickread/pkg/prog/progtest"
	"github.com/quickread/quickread/pkg/testutil"
)

var (
	Test          = progtest.Test
	ThatQuickread = progtest.ThatQuickread
)

func TestCommonFlagHandling(t *testing.T) {
	testutil.InTempDir(t)

	Test(t, testProgram{},
		ThatQuickread("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatQuickread("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatQuickread("-help").
			WritesStdoutContaining("Usage: quickread [flags] [file | document-id]"),

		ThatQuickread("-cpuprofile", "cpuprof").DoesNothing(),
		ThatQuickread("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),

		ThatQuickread("-log", "log").DoesNothing(),
	)

	// There isn't much to test beyond a sanity check that the files now exist.
	for _, name := range []string{"cpuprof", "log"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("%s does not exist: %v", name, err)
		}
	}
}

func TestFlagsArePassed(t *testing.T) {
	var got Flags
	var gotArgs []string
	p := recordProgram{&got, &gotArgs}
	exit, _, stderr := progtest.Run(t, p, "",
		"-wpm", "450", "-mode", "hold-space", "-from", "12", "-db", "x.bolt",
		"-config", "c.yaml", "-title", "T", "a.txt")
	if exit != 0 || stderr != "" {
		t.Fatalf("Run -> (%v, %q)", exit, stderr)
	}
	want := Flags{WPM: 450, Mode: "hold-space", From: 12, DB: "x.bolt",
		Config: "c.yaml", Title: "T"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flags (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a.txt"}, gotArgs); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatQuickread().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatQuickread().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatQuickread().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatQuickread().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatQuickread().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatQuickread().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatQuickread().ExitsWith(0),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type recordProgram struct {
	flags *Flags
	args  *[]string
}

func (p recordProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	*p.flags = *f
	*p.args = append([]string(nil), args...)
	return nil
}
