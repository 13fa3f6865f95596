package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cadenza/internal/config"
	"cadenza/internal/enrichment"
)

const userAgent = "cadenza/0.1.0"

// Service defines the notification surface exposed to sync workflows.
type Service interface {
	NotifySyncCompleted(ctx context.Context, user string, result *enrichment.SyncResult) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
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
}

func (n *ntfyService) NotifySyncCompleted(ctx context.Context, user string, result *enrichment.SyncResult) error {
	if result == nil {
		return nil
	}
	message := fmt.Sprintf("Sync for %s: %d plays processed, %d new scrobbles, %d AI calls",
		strings.TrimSpace(user), result.TracksProcessed, result.ScrobblesRecorded, result.AICallsUsed)
	if result.ArtistsEnrichedAI > 0 || result.ClassicalEnriched > 0 {
		message = fmt.Sprintf("%s\nEnriched %d artists and %d classical tracks",
			message, result.ArtistsEnrichedAI, result.ClassicalEnriched)
	}
	title := "Cadenza - Sync Complete"
	priority := ""
	if result.AIBudgetExhausted {
		title = "Cadenza - Sync Complete (budget exhausted)"
	}
	if result.EnrichmentFailures > 0 {
		message = fmt.Sprintf("%s\n%d enrichment calls failed", message, result.EnrichmentFailures)
		priority = "high"
	}
	return n.send(ctx, payload{
		title:    title,
		message:  message,
		tags:     []string{"cadenza", "sync", "completed"},
		priority: priority,
	})
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	return n.send(ctx, payload{
		title:    "Cadenza - Error",
		message:  builder.String(),
		tags:     []string{"cadenza", "error", "alert"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "Cadenza - Test",
		message:  "Notification system test",
		tags:     []string{"cadenza", "test"},
		priority: "low",
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

func (noopService) NotifySyncCompleted(context.Context, string, *enrichment.SyncResult) error {
	return nil
}
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
