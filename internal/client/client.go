// Package client talks to a remote quiz server with the same never-fail
// contract as the local services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/lsatarcade/internal/drill"
	"github.com/abhisek/lsatarcade/internal/tutor"
)

const (
	defaultTimeout = 30 * time.Second
	maxResponse    = 1 << 20
)

// Client calls <base>/api/lsat.
type Client struct {
	baseURL    string
	httpClient *http.Client
	normalizer *drill.Normalizer
	mock       func() drill.Drill
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMock replaces the mock source used for fallbacks.
func WithMock(draw func() drill.Drill) Option {
	return func(c *Client) { c.mock = draw }
}

// New returns a Client for baseURL. A trailing slash is ignored.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		mock:       drill.Mock,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.normalizer = drill.NewNormalizer(c.mock)
	return c
}

// BaseURL returns the server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type lsatRequest struct {
	Mode     string          `json:"mode"`
	Topic    string          `json:"topic,omitempty"`
	Messages []tutor.Message `json:"messages,omitempty"`
}

// Generate fetches a drill from the server. Transport failures and non-2xx
// responses yield a mock drill; whatever JSON comes back is normalized.
func (c *Client) Generate(ctx context.Context, topic string) drill.Drill {
	var raw any
	if err := c.post(ctx, lsatRequest{Mode: "drill", Topic: topic}, &raw); err != nil {
		c.logger.WarnContext(ctx, "proxy_drill_fallback", slog.String("error", err.Error()))
		return c.mock()
	}
	return c.normalizer.Normalize(raw)
}

// Reply asks the server's tutor. Failures yield tutor.UnavailableReply and
// an empty reply yields tutor.EmptyReply.
func (c *Client) Reply(ctx context.Context, history []tutor.Message) string {
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := c.post(ctx, lsatRequest{Mode: "tutor", Messages: history}, &resp); err != nil {
		c.logger.WarnContext(ctx, "proxy_tutor_fallback", slog.String("error", err.Error()))
		return tutor.UnavailableReply
	}
	if strings.TrimSpace(resp.Reply) == "" {
		return tutor.EmptyReply
	}
	return resp.Reply
}

func (c *Client) post(ctx context.Context, body lsatRequest, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/lsat", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
