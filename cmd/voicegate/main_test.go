package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"voicegate/internal/api"
)

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueueCommandEmitsJSONForPipes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/queue" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"originalname":"clip1.wav","downloadUrl":"http://x/download/1-clip1.wav","inferenceResult":null}]`)
	}))
	defer server.Close()

	out, err := runCommand(t, newRootCommand(), "--addr", server.URL, "queue")
	if err != nil {
		t.Fatalf("queue command: %v", err)
	}

	// Output is not a terminal, so the command falls back to JSON.
	var entries []api.QueueEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].OriginalName != "clip1.wav" {
		t.Fatalf("unexpected entries: %#v", entries)
	}
}

func TestQueueTableRendering(t *testing.T) {
	entries := []api.QueueEntry{
		{
			OriginalName: "board_meeting.wav",
			DownloadURL:  "http://localhost:3001/download/1-board_meeting.wav",
			InferenceResult: &api.InferenceResult{
				IsHuman:   true,
				Timestamp: "2026-08-29T10:00:00.000Z",
			},
		},
	}

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	printQueueTable(cmd, entries)

	rendered := out.String()
	for _, want := range []string{"Board Meeting", "board_meeting.wav", "human", "2026-08-29T10:00:00.000Z"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("table missing %q:\n%s", want, rendered)
		}
	}
}

func TestQueueTableEmpty(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	printQueueTable(cmd, nil)

	if !strings.Contains(out.String(), "Queue is empty") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestVerdictCells(t *testing.T) {
	if verdict, observed := verdictCells(nil); verdict != "pending" || observed != "-" {
		t.Fatalf("nil result = %q/%q", verdict, observed)
	}
	if verdict, _ := verdictCells(&api.InferenceResult{IsHuman: false, Timestamp: "t"}); verdict != "synthetic" {
		t.Fatalf("synthetic verdict = %q", verdict)
	}
}

func TestVerdictCommandPostsBoolean(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inference-result" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"Inference result recorded"}`)
	}))
	defer server.Close()

	out, err := runCommand(t, newRootCommand(), "--addr", server.URL, "verdict", "169-clip.wav", "--synthetic")
	if err != nil {
		t.Fatalf("verdict command: %v", err)
	}
	if !strings.Contains(out, "Inference result recorded") {
		t.Fatalf("unexpected output: %q", out)
	}

	if captured["filename"] != "169-clip.wav" {
		t.Fatalf("filename = %v", captured["filename"])
	}
	isHuman, ok := captured["isHuman"].(bool)
	if !ok || isHuman {
		t.Fatalf("isHuman = %v (%T), want false boolean", captured["isHuman"], captured["isHuman"])
	}
}

func TestVerdictCommandRequiresExactlyOneFlag(t *testing.T) {
	if _, err := runCommand(t, newRootCommand(), "--addr", "http://127.0.0.1:1", "verdict", "x.wav"); err == nil {
		t.Fatal("expected error without --human or --synthetic")
	}
	if _, err := runCommand(t, newRootCommand(), "--addr", "http://127.0.0.1:1", "verdict", "x.wav", "--human", "--synthetic"); err == nil {
		t.Fatal("expected error with both flags")
	}
}

func TestUploadCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			file.Close()
		}
		if header != nil && header.Filename != "clip.wav" {
			t.Errorf("uploaded filename = %q", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"File uploaded successfully","file":{"filename":"169-clip.wav","originalname":"clip.wav"}}`)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, err := runCommand(t, newRootCommand(), "--addr", server.URL, "upload", path)
	if err != nil {
		t.Fatalf("upload command: %v", err)
	}
	if !strings.Contains(out, "Stored as 169-clip.wav") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestStatusCommandRendersErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"message":"queue store unavailable"}`)
	}))
	defer server.Close()

	_, err := runCommand(t, newRootCommand(), "--addr", server.URL, "status")
	if err == nil {
		t.Fatal("expected error from 500 response")
	}
	if !strings.Contains(err.Error(), "queue store unavailable") {
		t.Fatalf("error does not surface daemon message: %v", err)
	}
}
