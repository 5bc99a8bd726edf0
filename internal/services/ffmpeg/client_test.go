package ffmpeg

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/ffmpeg"))
	if cli.binary != "/opt/ffmpeg" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestExtractAudioRequiresInput(t *testing.T) {
	cli := NewCLI()
	if err := cli.ExtractAudio(context.Background(), "", "/tmp/out.wav"); err == nil {
		t.Fatal("expected error when input path is empty")
	}
}

func TestExtractAudioRequiresOutput(t *testing.T) {
	cli := NewCLI()
	if err := cli.ExtractAudio(context.Background(), "/tmp/in.mp4", ""); err == nil {
		t.Fatal("expected error when output path is empty")
	}
}

func TestExtractAudioBuildsArguments(t *testing.T) {
	var capturedName string
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedName = name
		capturedArgs = append([]string(nil), args...)
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI(WithBinary("ffmpeg-custom"), WithSampleRate(16000))
	if err := cli.ExtractAudio(context.Background(), "/in/a.mp4", "/out/a.wav"); err != nil {
		t.Fatalf("ExtractAudio returned error: %v", err)
	}

	if capturedName != "ffmpeg-custom" {
		t.Fatalf("unexpected binary: %q", capturedName)
	}
	joined := strings.Join(capturedArgs, " ")
	for _, want := range []string{"-i /in/a.mp4", "-vn", "-acodec pcm_s16le", "-ar 16000", "/out/a.wav"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("arguments %q missing %q", joined, want)
		}
	}
}

func TestExtractAudioWithStubBinary(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\nfor arg in \"$@\"; do last=\"$arg\"; done\nprintf 'RIFF' > \"$last\"\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	out := filepath.Join(dir, "out.wav")
	cli := NewCLI(WithBinary(stub))
	if err := cli.ExtractAudio(context.Background(), filepath.Join(dir, "in.mp4"), out); err != nil {
		t.Fatalf("ExtractAudio failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output artifact: %v", err)
	}
}

func TestExtractAudioSurfacesFailureOutput(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\necho 'Invalid data found when processing input' >&2\nexit 1\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	cli := NewCLI(WithBinary(stub))
	err := cli.ExtractAudio(context.Background(), "/in/bad.mp4", filepath.Join(dir, "out.wav"))
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("error should carry ffmpeg diagnostics, got %v", err)
	}
}
