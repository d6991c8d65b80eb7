// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X github.com/quickread/quickread/pkg/buildinfo.Var=value" to
// "go build" or "go install".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/quickread/quickread/pkg/prog"
)

// Version identifies the version of quickread. On development commits, it
// identifies the next release.
const Version = "v0.3.0"

// VersionSuffix is appended to Version to build the full version string. It
// can be overridden when building.
var VersionSuffix = "-dev.unknown"

// Reproducible identifies whether the build is reproducible. It can be
// overridden when building.
var Reproducible = "false"

// Info describes the build.
type Info struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	Reproducible bool   `json:"reproducible"`
}

// Value returns the Info of the running binary.
func Value() Info {
	return Info{
		Version:      Version + VersionSuffix,
		GoVersion:    runtime.Version(),
		Reproducible: Reproducible == "true",
	}
}

// Program is the buildinfo subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version && !f.BuildInfo {
		return prog.ErrNotSuitable
	}
	info := Value()
	switch {
	case f.Version && f.JSON:
		fmt.Fprintln(fds[1], mustToJSON(info.Version))
	case f.Version:
		fmt.Fprintln(fds[1], info.Version)
	case f.JSON:
		fmt.Fprintln(fds[1], mustToJSON(info))
	default:
		fmt.Fprintln(fds[1], "Version:", info.Version)
		fmt.Fprintln(fds[1], "Go version:", info.GoVersion)
		fmt.Fprintln(fds[1], "Reproducible build:", info.Reproducible)
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
