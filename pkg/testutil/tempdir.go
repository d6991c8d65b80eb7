package testutil

import (
	"os"
	"path/filepath"
)

// InTempDir creates a temporary directory, changes into it for the duration
// of a test, and returns its path.
func InTempDir[T interface {
	Cleanuper
	TempDirer
}](t T) string {
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
	return dir
}

// WriteFiles writes files under dir, creating parent directories as needed.
// The keys of files are slash-separated paths relative to dir.
func WriteFiles(dir string, files map[string]string) {
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			panic(err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			panic(err)
		}
	}
}
