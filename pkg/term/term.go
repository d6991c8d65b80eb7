// Package term sets up the terminal for full-screen reading and decodes key
// presses from it.
package term

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/quickread/quickread/pkg/logutil"
)

var logger = logutil.GetLogger("[term] ")

// Escape sequences for entering and leaving the full-screen mode.
const (
	enterScreen = "\033[?1049h\033[?25l"
	leaveScreen = "\033[?25h\033[?1049l"
)

// IsATTY determines whether the given file is a terminal.
func IsATTY(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Size returns the size of the terminal referenced by f. If the size cannot be
// determined, it returns 80x24.
func Size(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		logger.Println("cannot get terminal size:", err)
		return 80, 24
	}
	// Some terminals, like serial consoles, report zero.
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}
	return width, height
}

// Setup puts the terminal into raw mode and switches to the alternate
// screen. It returns a function that restores the terminal.
func Setup(in, out *os.File) (func() error, error) {
	state, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, err
	}
	out.WriteString(enterScreen)
	return func() error {
		out.WriteString(leaveScreen)
		return term.Restore(int(in.Fd()), state)
	}, nil
}
