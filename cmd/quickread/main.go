// Quickread is a speed reader for the terminal. It shows a document one word
// at a time, with each word aligned on its optimal recognition point, and
// remembers where you stopped.
package main

import (
	"os"

	"github.com/quickread/quickread/pkg/buildinfo"
	"github.com/quickread/quickread/pkg/library"
	"github.com/quickread/quickread/pkg/prog"
	"github.com/quickread/quickread/pkg/rsvp"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, library.Program, rsvp.Program)))
}
