package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"binder/internal/config"
	"binder/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyCardAdded(context.Background(), "Lightning Bolt", 1); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "card added",
			notify: func(svc notifications.Service) error {
				return svc.NotifyCardAdded(context.Background(), "Lightning Bolt", 1)
			},
			expectTitle:   "Binder - Card Added",
			expectMessage: "Added: Lightning Bolt",
			expectTags:    "binder,add,confirmed",
		},
		{
			name: "card added with quantity",
			notify: func(svc notifications.Service) error {
				return svc.NotifyCardAdded(context.Background(), "Forest", 4)
			},
			expectTitle:   "Binder - Card Added",
			expectMessage: "Added: Forest x4",
			expectTags:    "binder,add,confirmed",
		},
		{
			name: "review needed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyReviewNeeded(context.Background(), "Vampiric Tutor", 3)
			},
			expectTitle:   "Binder - Review Needed",
			expectMessage: "Ambiguous scan: Vampiric Tutor (3 candidates)\nManual confirmation required",
			expectTags:    "binder,identify,review",
		},
		{
			name: "not found",
			notify: func(svc notifications.Service) error {
				return svc.NotifyNotFound(context.Background(), "Unknown Card")
			},
			expectTitle:   "Binder - Not Found",
			expectMessage: "No catalog match: Unknown Card",
			expectTags:    "binder,identify,notfound",
		},
		{
			name: "error",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("catalog unreachable"), "lookup")
			},
			expectTitle:    "Binder - Error",
			expectMessage:  "Error with lookup: catalog unreachable",
			expectTags:     "binder,error,alert",
			expectPriority: "high",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceHonorsSuppressionFlags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for suppressed event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Adds = false
	cfg.Notifications.Reviews = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	ctx := context.Background()

	if err := svc.NotifyCardAdded(ctx, "Lightning Bolt", 1); err != nil {
		t.Fatalf("suppressed add returned error: %v", err)
	}
	if err := svc.NotifyReviewNeeded(ctx, "Lightning Bolt", 2); err != nil {
		t.Fatalf("suppressed review returned error: %v", err)
	}
	if err := svc.NotifyNotFound(ctx, "Lightning Bolt"); err != nil {
		t.Fatalf("suppressed not-found returned error: %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "lookup"); err != nil {
		t.Fatalf("suppressed error returned error: %v", err)
	}
}

func TestNtfyServiceSurfacesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error from non-2xx ntfy response")
	}
}
