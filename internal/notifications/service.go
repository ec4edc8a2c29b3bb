package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"binder/internal/config"
)

const userAgent = "Binder-Go/0.1.0"

// Service defines the notification surface exposed to the session and
// ledger components.
type Service interface {
	NotifyCardAdded(ctx context.Context, name string, quantity int) error
	NotifyReviewNeeded(ctx context.Context, name string, candidates int) error
	NotifyNotFound(ctx context.Context, name string) error
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

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		adds:     cfg.Notifications.Adds,
		reviews:  cfg.Notifications.Reviews,
		errors:   cfg.Notifications.Errors,
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
	adds     bool
	reviews  bool
	errors   bool
}

func (n *ntfyService) NotifyCardAdded(ctx context.Context, name string, quantity int) error {
	if !n.adds {
		return nil
	}
	name = strings.TrimSpace(name)
	message := fmt.Sprintf("Added: %s", name)
	if quantity > 1 {
		message = fmt.Sprintf("Added: %s x%d", name, quantity)
	}
	data := payload{
		title:   "Binder - Card Added",
		message: message,
		tags:    []string{"binder", "add", "confirmed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyReviewNeeded(ctx context.Context, name string, candidates int) error {
	if !n.reviews {
		return nil
	}
	name = strings.TrimSpace(name)
	data := payload{
		title:   "Binder - Review Needed",
		message: fmt.Sprintf("Ambiguous scan: %s (%d candidates)\nManual confirmation required", name, candidates),
		tags:    []string{"binder", "identify", "review"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyNotFound(ctx context.Context, name string) error {
	if !n.reviews {
		return nil
	}
	name = strings.TrimSpace(name)
	data := payload{
		title:   "Binder - Not Found",
		message: fmt.Sprintf("No catalog match: %s", name),
		tags:    []string{"binder", "identify", "notfound"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
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

	data := payload{
		title:    "Binder - Error",
		message:  builder.String(),
		tags:     []string{"binder", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Binder - Test",
		message:  "Notification system test",
		tags:     []string{"binder", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
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

func (noopService) NotifyCardAdded(context.Context, string, int) error    { return nil }
func (noopService) NotifyReviewNeeded(context.Context, string, int) error { return nil }
func (noopService) NotifyNotFound(context.Context, string) error          { return nil }
func (noopService) NotifyError(context.Context, error, string) error      { return nil }
func (noopService) TestNotification(context.Context) error                { return nil }
