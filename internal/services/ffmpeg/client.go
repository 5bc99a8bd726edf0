package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// Client defines the external audio extraction behaviour.
type Client interface {
	// ExtractAudio converts inputPath into a canonical wav artifact at
	// outputPath, discarding any video stream.
	ExtractAudio(ctx context.Context, inputPath, outputPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithSampleRate overrides the output sample rate.
func WithSampleRate(rate int) Option {
	return func(c *CLI) {
		if rate > 0 {
			c.sampleRate = rate
		}
	}
}

// CLI wraps the ffmpeg command-line transcoder.
type CLI struct {
	binary     string
	sampleRate int
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", sampleRate: 44100}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// ExtractAudio launches ffmpeg to strip video and write pcm_s16le wav audio.
func (c *CLI) ExtractAudio(ctx context.Context, inputPath, outputPath string) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	args := []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(c.sampleRate),
		outputPath,
	}
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg interrupted: %w", ctx.Err())
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, tail(output, 512))
	}
	return nil
}

// tail returns the last n bytes of combined output, trimmed, so error
// messages carry the relevant ffmpeg diagnostics without flooding logs.
func tail(output []byte, n int) string {
	text := strings.TrimSpace(string(output))
	if len(text) <= n {
		return text
	}
	return "..." + text[len(text)-n:]
}
