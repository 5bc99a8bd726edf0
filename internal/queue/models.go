package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of the queued item.
type Status string

const (
	// StatusQueued marks an item whose artifact is ready and awaiting a verdict.
	StatusQueued Status = "queued"
	// StatusClassified marks an item that has received at least one verdict.
	StatusClassified Status = "classified"
)

var allStatuses = []Status{StatusQueued, StatusClassified}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Classification is an externally produced verdict about the queued artifact.
// ObservedAt is assigned by the server clock at merge time, never by the
// verdict producer.
type Classification struct {
	IsHuman    bool
	ObservedAt time.Time
}

// Item is the sole persisted entity: the most recently normalized upload.
//
// StoredName is the unique on-disk identifier and the only correlation key
// between the item and external verdicts. OriginalName preserves the
// user-supplied display name, with the extension rewritten when conversion
// changed the container. ArtifactPath references the canonical audio bytes
// and is owned by this entry until the item is replaced.
type Item struct {
	ID             int64
	StoredName     string
	OriginalName   string
	ArtifactPath   string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Classification *Classification
}

// Classified reports whether a verdict has been merged into the item.
func (i *Item) Classified() bool {
	return i != nil && i.Classification != nil
}
