package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"

	"binder/internal/catalog"
)

// searchResponse models the service's ranked search payload.
type searchResponse struct {
	Results []struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		SetCode         string `json:"set_code"`
		CollectorNumber string `json:"collector_number"`
		ImageURL        string `json:"image_url"`
		Score           int    `json:"score"`
	} `json:"results"`
}

// errTransient marks responses worth retrying.
var errTransient = errors.New("transient catalog error")

// Client queries a remote card-search service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
}

var _ catalog.Index = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMaxAttempts bounds how many times a transient failure is retried.
func WithMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// New creates a remote catalog client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		maxAttempts: 3,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search queries the service and maps its ranked results onto candidates.
func (c *Client) Search(ctx context.Context, query catalog.Query) ([]catalog.Candidate, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = catalog.DefaultLimit
	}

	params := url.Values{}
	if query.Name != "" {
		params.Set("name", query.Name)
	}
	if query.CollectorNumber != "" {
		params.Set("number", query.CollectorNumber)
	}
	if query.SetCode != "" {
		params.Set("set", query.SetCode)
	}
	params.Set("limit", strconv.Itoa(limit))

	endpoint := c.baseURL + "/cards/search?" + params.Encode()

	backoffCfg := backoff.NewExponentialBackOff()
	backoffCfg.InitialInterval = 100 * time.Millisecond
	backoffCfg.MaxInterval = 2 * time.Second

	var resp *searchResponse
	for attempt := 1; ; attempt++ {
		var err error
		resp, err = c.fetch(ctx, endpoint)
		if err == nil {
			break
		}
		if !errors.Is(err, errTransient) || attempt >= c.maxAttempts {
			return nil, err
		}
		sleep := backoffCfg.NextBackOff()
		if sleep == backoff.Stop {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}

	candidates := make([]catalog.Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		candidates = append(candidates, catalog.Candidate{
			Entry: catalog.Entry{
				ID:              catalog.EntryID(r.ID),
				Name:            r.Name,
				SetCode:         r.SetCode,
				CollectorNumber: r.CollectorNumber,
				ImageURL:        r.ImageURL,
			},
			Score: r.Score,
		})
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", errTransient, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 500 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 2048))
		return nil, fmt.Errorf("%w: catalog returned %d", errTransient, res.StatusCode)
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return nil, fmt.Errorf("catalog returned %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return &payload, nil
}
