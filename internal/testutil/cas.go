package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FakeCAS writes an executable shell script standing in for the CAS and
// returns its path. The script receives the same arguments as the real
// tool: "-b <input file>", so "$2" is the input file.
//
// Skips the test on Windows.
func FakeCAS(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake CAS scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-maxima")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake CAS: %v", err)
	}
	return path
}

// EchoCAS is a fake CAS that prints its input file back.
func EchoCAS(t *testing.T) string {
	t.Helper()
	return FakeCAS(t, `cat "$2"`)
}

// DirEntries returns the names in dir, failing the test on error.
func DirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}
