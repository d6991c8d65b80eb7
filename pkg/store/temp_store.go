package store

import (
	"os"

	"github.com/quickread/quickread/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. The store is
// closed and the file removed when the test finishes.
func MustTempStore(c testutil.Cleanuper) DBStore {
	f, err := os.CreateTemp("", "quickread.test")
	if err != nil {
		panic(err)
	}
	f.Close()
	st, err := NewStore(f.Name())
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() {
		st.Close()
		os.Remove(f.Name())
	})
	return st
}
