package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteUpload drops a fixture file into dir and returns its full path.
func WriteUpload(t testing.TB, dir, name string, contents []byte) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir upload dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write upload %s: %v", name, err)
	}
	return path
}

// StubFFmpeg writes a stand-in ffmpeg script that creates its final
// argument (the output path) and returns the script's path. Pass it to the
// ffmpeg client via WithBinary.
func StubFFmpeg(t testing.TB) string {
	t.Helper()

	dir := t.TempDir()
	script := []byte("#!/bin/sh\nfor arg in \"$@\"; do last=\"$arg\"; done\nprintf 'RIFF' > \"$last\"\n")
	path := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(path, script, 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}
	return path
}

// StubFFmpegFailing writes a stand-in ffmpeg script that exits non-zero.
func StubFFmpegFailing(t testing.TB) string {
	t.Helper()

	dir := t.TempDir()
	script := []byte("#!/bin/sh\necho 'Invalid data found when processing input' >&2\nexit 1\n")
	path := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(path, script, 0o755); err != nil {
		t.Fatalf("write ffmpeg stub: %v", err)
	}
	return path
}
