package testsupport

import (
	"context"
	"testing"

	"voicegate/internal/queue"
)

// MustOpenStore opens an in-memory queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB) *queue.Store {
	t.Helper()

	store, err := queue.Open()
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// QueueItem inserts an item for tests using the provided store.
func QueueItem(t testing.TB, store *queue.Store, storedName, originalName, artifactPath string) *queue.Item {
	t.Helper()

	item, err := store.Replace(context.Background(), storedName, originalName, artifactPath)
	if err != nil {
		t.Fatalf("store.Replace: %v", err)
	}
	return item
}
