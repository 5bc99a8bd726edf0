package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voicegate/internal/config"
)

const userAgent = "Voicegate/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyUploadQueued(ctx context.Context, originalName string, converted bool) error
	NotifyConversionFailed(ctx context.Context, originalName string, cause error) error
	NotifyVerdictRecorded(ctx context.Context, storedName string, isHuman bool) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		cfg:      cfg.Notifications,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	cfg      config.Notifications
}

func (n *ntfyService) NotifyUploadQueued(ctx context.Context, originalName string, converted bool) error {
	if !n.cfg.Uploads {
		return nil
	}
	message := fmt.Sprintf("Queued for review: %s", originalName)
	if converted {
		message = fmt.Sprintf("Converted and queued for review: %s", originalName)
	}
	return n.send(ctx, payload{
		title:   "Voicegate - Upload Queued",
		message: message,
		tags:    []string{"voicegate", "upload", "queued"},
	})
}

func (n *ntfyService) NotifyConversionFailed(ctx context.Context, originalName string, cause error) error {
	if !n.cfg.Errors {
		return nil
	}
	return n.send(ctx, payload{
		title:    "Voicegate - Conversion Failed",
		message:  fmt.Sprintf("Conversion failed for %s: %v", originalName, cause),
		tags:     []string{"voicegate", "convert", "failed"},
		priority: "high",
	})
}

func (n *ntfyService) NotifyVerdictRecorded(ctx context.Context, storedName string, isHuman bool) error {
	if !n.cfg.Verdicts {
		return nil
	}
	verdict := "synthetic voice"
	if isHuman {
		verdict = "human voice"
	}
	return n.send(ctx, payload{
		title:   "Voicegate - Verdict",
		message: fmt.Sprintf("%s classified as %s", storedName, verdict),
		tags:    []string{"voicegate", "verdict"},
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:   "Voicegate - Test",
		message: "Notifications are configured correctly",
		tags:    []string{"voicegate", "test"},
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyUploadQueued(context.Context, string, bool) error      { return nil }
func (noopService) NotifyConversionFailed(context.Context, string, error) error { return nil }
func (noopService) NotifyVerdictRecorded(context.Context, string, bool) error   { return nil }
func (noopService) TestNotification(context.Context) error                      { return nil }
