package inference

import (
	"context"
	"log/slog"
	"strings"

	"voicegate/internal/logging"
	"voicegate/internal/queue"
)

// Request is the externally produced classification payload. IsHuman is a
// pointer so a missing or non-boolean value is distinguishable from false;
// the producer must send a genuine JSON boolean.
type Request struct {
	Filename string `json:"filename"`
	IsHuman  *bool  `json:"isHuman"`
}

// ValidationError reports a malformed classification payload.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Merger is the queue surface the correlator needs.
type Merger interface {
	MergeClassification(ctx context.Context, storedName string, isHuman bool) (*queue.Item, error)
}

// Correlator attaches out-of-band verdicts to the queued item they target.
type Correlator struct {
	store  Merger
	logger *slog.Logger
}

// NewCorrelator constructs a Correlator around the queue store.
func NewCorrelator(store Merger, logger *slog.Logger) *Correlator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Correlator{store: store, logger: logger}
}

// Apply validates and merges a verdict. The returned flag reports whether a
// matching item existed; either way the verdict is accepted, because the
// producer runs decoupled from uploads and may race queue replacement.
func (c *Correlator) Apply(ctx context.Context, req Request) (bool, error) {
	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		return false, &ValidationError{msg: "filename is required"}
	}
	if req.IsHuman == nil {
		return false, &ValidationError{msg: "isHuman must be a boolean"}
	}

	item, err := c.store.MergeClassification(ctx, filename, *req.IsHuman)
	if err != nil {
		return false, err
	}
	if item == nil {
		c.logger.InfoContext(ctx, "orphan verdict discarded", logging.String("stored_name", filename))
		return false, nil
	}

	c.logger.InfoContext(ctx, "verdict recorded",
		logging.String("stored_name", filename),
		logging.Bool("is_human", *req.IsHuman))
	return true, nil
}
