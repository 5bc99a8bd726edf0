package normalize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voicegate/internal/config"
	"voicegate/internal/logging"
	"voicegate/internal/services/ffmpeg"
	"voicegate/internal/uploads"
)

// ConversionError marks a failed transcode of an uploaded file. The original
// upload is left on disk when this is returned.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Result describes a normalized artifact ready for queue insertion. Names
// have their extension rewritten to the canonical format when conversion
// changed the container.
type Result struct {
	StoredName   string
	OriginalName string
	ArtifactPath string
	Converted    bool
}

// Normalizer turns a stored upload into a canonical wav artifact.
type Normalizer struct {
	cfg    *config.Config
	client ffmpeg.Client
	logger *slog.Logger
}

// NewNormalizer constructs a Normalizer around the transcoding client.
func NewNormalizer(cfg *config.Config, client ffmpeg.Client, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Normalizer{cfg: cfg, client: client, logger: logger}
}

// Normalize produces the canonical audio artifact for a stored upload.
//
// Canonical input passes through untouched and completes synchronously.
// Anything else is handed to the external transcoder; the call blocks until
// the transcode reaches one of its two terminal outcomes. On failure the
// stored original is deliberately not cleaned up.
func (n *Normalizer) Normalize(ctx context.Context, storedPath, storedName, originalName string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(storedName))
	if ext == uploads.CanonicalExt {
		return &Result{
			StoredName:   storedName,
			OriginalName: originalName,
			ArtifactPath: storedPath,
		}, nil
	}

	if n.client == nil {
		return nil, errors.New("no transcoding client configured")
	}

	outputPath := uploads.RewriteExt(storedPath, uploads.CanonicalExt)

	timeout := time.Duration(n.cfg.FFmpeg.TimeoutSeconds) * time.Second
	convertCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	if err := n.client.ExtractAudio(convertCtx, storedPath, outputPath); err != nil {
		n.logger.ErrorContext(ctx, "conversion failed",
			logging.String("input", storedPath),
			logging.Error(err))
		return nil, &ConversionError{Path: storedPath, Err: err}
	}
	if _, err := os.Stat(outputPath); err != nil {
		return nil, &ConversionError{Path: storedPath, Err: fmt.Errorf("transcoder produced no output: %w", err)}
	}

	n.logger.InfoContext(ctx, "conversion complete",
		logging.String("output", outputPath),
		logging.Duration("elapsed", time.Since(started)))

	return &Result{
		StoredName:   uploads.RewriteExt(storedName, uploads.CanonicalExt),
		OriginalName: uploads.RewriteExt(originalName, uploads.CanonicalExt),
		ArtifactPath: outputPath,
		Converted:    true,
	}, nil
}
