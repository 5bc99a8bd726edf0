package api

import (
	"context"

	"voicegate/internal/queue"
)

// QueueReader abstracts queue persistence interactions needed for API queries.
type QueueReader interface {
	List(ctx context.Context) ([]*queue.Item, error)
	Stats(ctx context.Context) (map[queue.Status]int, error)
}

// QueueService exposes read-only queue projections returning API DTOs.
// Projection is pure: reading never mutates the store, and reading an empty
// store yields an empty list, never an error.
type QueueService struct {
	store QueueReader
}

// NewQueueService constructs a QueueService around the provided reader.
func NewQueueService(store QueueReader) *QueueService {
	if store == nil {
		return nil
	}
	return &QueueService{store: store}
}

// List projects the queue contents for the given request scheme and host.
func (s *QueueService) List(ctx context.Context, scheme, host string) ([]QueueEntry, error) {
	if s == nil || s.store == nil {
		return []QueueEntry{}, nil
	}
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromItems(items, scheme, host), nil
}

// Stats returns queue summary counts keyed by status string.
func (s *QueueService) Stats(ctx context.Context) (map[string]int, error) {
	if s == nil || s.store == nil {
		return map[string]int{}, nil
	}
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return MergeQueueStats(stats), nil
}
