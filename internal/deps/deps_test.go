package deps_test

import (
	"os"
	"path/filepath"
	"testing"

	"voicegate/internal/deps"
)

func TestCheckFFmpegMissingBinary(t *testing.T) {
	status := deps.CheckFFmpeg("definitely-not-a-binary-4715")
	if status.Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if status.Detail == "" {
		t.Fatal("expected detail for missing binary")
	}
}

func TestCheckFFmpegResolvesFromPath(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	status := deps.CheckFFmpeg("ffmpeg")
	if !status.Available {
		t.Fatalf("expected stub to resolve: %#v", status)
	}
	if status.Command != stub {
		t.Fatalf("expected resolved path %q, got %q", stub, status.Command)
	}
}
