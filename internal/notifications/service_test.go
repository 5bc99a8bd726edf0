package notifications_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voicegate/internal/notifications"
	"voicegate/internal/testsupport"
)

func TestNoopWithoutTopic(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	svc := notifications.NewService(cfg)

	if err := svc.NotifyUploadQueued(context.Background(), "clip.wav", false); err != nil {
		t.Fatalf("noop service returned error: %v", err)
	}
	if err := svc.TestNotification(context.Background()); err != nil {
		t.Fatalf("noop test notification returned error: %v", err)
	}
}

func TestNtfyRequestShape(t *testing.T) {
	var gotTitle, gotTags, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
		gotTags = r.Header.Get("Tags")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL))
	svc := notifications.NewService(cfg)

	if err := svc.NotifyUploadQueued(context.Background(), "talk.mp4", true); err != nil {
		t.Fatalf("NotifyUploadQueued failed: %v", err)
	}
	if gotTitle != "Voicegate - Upload Queued" {
		t.Fatalf("unexpected title: %q", gotTitle)
	}
	if !strings.Contains(gotTags, "upload") {
		t.Fatalf("unexpected tags: %q", gotTags)
	}
	if !strings.Contains(gotBody, "Converted and queued") {
		t.Fatalf("unexpected body: %q", gotBody)
	}
}

func TestNtfyServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL))
	svc := notifications.NewService(cfg)

	err := svc.NotifyVerdictRecorded(context.Background(), "100-clip.wav", true)
	if err == nil {
		t.Fatal("expected error from ntfy failure")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status code in error, got %v", err)
	}
}

func TestVerdictNotificationsCanBeDisabled(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL))
	cfg.Notifications.Verdicts = false
	svc := notifications.NewService(cfg)

	if err := svc.NotifyVerdictRecorded(context.Background(), "100-clip.wav", false); err != nil {
		t.Fatalf("disabled notification returned error: %v", err)
	}
	if called {
		t.Fatal("disabled notification still hit the server")
	}
}
