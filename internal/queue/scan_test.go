package queue

import (
	"context"
	"testing"
)

func TestScanRejectsMalformedCreatedAt(t *testing.T) {
	store, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.db.Exec(
		`INSERT INTO queue_items (stored_name, original_name, artifact_path, status, created_at, updated_at)
		 VALUES ('100-clip.wav', 'clip.wav', '/tmp/100-clip.wav', 'queued', 'not-a-time', 'not-a-time')`)
	if err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	if _, err := store.List(context.Background()); err == nil {
		t.Fatal("List must surface a malformed created_at, not mask it")
	}
	if _, err := store.Current(context.Background()); err == nil {
		t.Fatal("Current must surface a malformed created_at, not mask it")
	}
}

func TestScanRejectsMalformedVerdictTimestamp(t *testing.T) {
	store, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if _, err := store.Replace(ctx, "100-clip.wav", "clip.wav", "/tmp/100-clip.wav"); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	_, err = store.db.Exec(
		`UPDATE queue_items SET status = 'classified', verdict_is_human = 1, verdict_observed_at = 'yesterday'`)
	if err != nil {
		t.Fatalf("corrupt verdict timestamp: %v", err)
	}

	if _, err := store.FindByStoredName(ctx, "100-clip.wav"); err == nil {
		t.Fatal("a corrupt verdict timestamp must be an error, not a dropped verdict")
	}
}
