package api

import (
	"fmt"
	"net/url"

	"voicegate/internal/queue"
)

// FromItem projects a queue item into its external representation. The
// download locator is computed from the caller's scheme and host so clients
// behind different hostnames each receive a reachable URL.
func FromItem(item *queue.Item, scheme, host string) QueueEntry {
	entry := QueueEntry{
		OriginalName: item.OriginalName,
		DownloadURL:  downloadURL(scheme, host, item.StoredName),
	}
	if item.Classification != nil {
		entry.InferenceResult = &InferenceResult{
			IsHuman:   item.Classification.IsHuman,
			Timestamp: item.Classification.ObservedAt.Format(dateTimeFormat),
		}
	}
	return entry
}

// FromItems projects the queue contents. The result is always non-nil so an
// empty queue serializes as an empty JSON array, never null.
func FromItems(items []*queue.Item, scheme, host string) []QueueEntry {
	entries := make([]QueueEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, FromItem(item, scheme, host))
	}
	return entries
}

// MergeQueueStats converts typed status counts to string keys for JSON.
func MergeQueueStats(stats map[queue.Status]int) map[string]int {
	merged := make(map[string]int, len(stats))
	for status, count := range stats {
		merged[string(status)] = count
	}
	return merged
}

func downloadURL(scheme, host, storedName string) string {
	if scheme == "" {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/download/%s", scheme, host, url.PathEscape(storedName))
}
