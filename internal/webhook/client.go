// Package webhook is the adapter for the three content-automation
// endpoints: trend lookup, draft generation, and draft refinement.
//
// The backend schema is unstable across revisions, so the main burden here
// is defensive multi-shape parsing: each operation tries an ordered list of
// shape extractors and stops at the first match (see shapes.go). Trend
// lookups are non-critical and can be configured to absorb failures with a
// fixed mock list instead of propagating an error.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/trendin/postforge/internal/logging"
	"github.com/trendin/postforge/internal/post"
)

// FailurePolicy controls what a trend lookup does when the backend fails.
type FailurePolicy int

const (
	// FallbackToMock resolves with the fixed mock topic list. The UI never
	// sees the failure.
	FallbackToMock FailurePolicy = iota

	// Propagate returns the error to the caller.
	Propagate
)

// Options configures a Client. Base URLs and the generate payload field
// name are injected configuration, not constants.
type Options struct {
	TrendsURL   string
	GenerateURL string
	RefineURL   string
	TopicField  string // JSON key carrying the topic in the generate payload

	Timeout           time.Duration
	RequestsPerSecond float64

	TrendsOnFailure FailurePolicy

	// Pick selects an index in [0, n). Injectable so tests can pin the
	// synthesized volume/difficulty fill on trend topics. Defaults to
	// math/rand.
	Pick func(n int) int
}

// GenerateResult is a normalized draft-generation response.
type GenerateResult struct {
	Drafts   []post.Draft
	Analysis *post.Analysis
}

// RefineResult is a normalized refinement response.
type RefineResult struct {
	Content        string
	SummaryMessage string
}

// Client calls the three webhooks and normalizes their responses.
type Client struct {
	opts    Options
	client  *http.Client
	limiter *rate.Limiter
	pick    func(n int) int
}

// New creates a Client from options.
func New(opts Options) *Client {
	if opts.TopicField == "" {
		opts.TopicField = "keyword"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	pick := opts.Pick
	if pick == nil {
		pick = rand.Intn
	}
	return &Client{
		opts:    opts,
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		pick:    pick,
	}
}

// Trends fetches trending topics, optionally filtered by niche. Under the
// FallbackToMock policy it never returns an error: any transport failure,
// non-2xx status, or empty/unrecognized payload resolves with the mock
// list for the niche.
func (c *Client) Trends(ctx context.Context, niche string) ([]post.TrendingTopic, error) {
	topics, err := c.fetchTrends(ctx, niche)
	if err != nil {
		if c.opts.TrendsOnFailure == Propagate {
			return nil, err
		}
		logging.Warn("Trend lookup failed, using mock topics", "niche", niche, "error", err)
		return MockTrends(niche), nil
	}
	return topics, nil
}

func (c *Client) fetchTrends(ctx context.Context, niche string) ([]post.TrendingTopic, error) {
	u, err := url.Parse(c.opts.TrendsURL)
	if err != nil {
		return nil, fmt.Errorf("trends URL: %w", err)
	}
	if niche != "" {
		q := u.Query()
		q.Set("niche", niche)
		u.RawQuery = q.Encode()
	}

	raw, err := c.do(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	topics, err := parseTrends(raw)
	if err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, fmt.Errorf("trend webhook returned no topics")
	}

	// The backend leaves volume and difficulty blank; fill them so the
	// topic cards render fully.
	for i := range topics {
		if topics[i].ID == "" {
			topics[i].ID = newID()
		}
		if topics[i].Volume == "" {
			topics[i].Volume = fmt.Sprintf("%dK posts", c.pick(41)+10)
		}
		if topics[i].Difficulty == "" {
			topics[i].Difficulty = difficulties[c.pick(len(difficulties))]
		}
	}
	return topics, nil
}

// Generate asks the backend for post drafts on a topic. A response whose
// shape is unrecognizable yields a *ShapeError; callers do not retry.
func (c *Client) Generate(ctx context.Context, topic string) (*GenerateResult, error) {
	payload := map[string]string{c.opts.TopicField: topic}

	raw, err := c.do(ctx, http.MethodPost, c.opts.GenerateURL, payload)
	if err != nil {
		return nil, err
	}

	result, err := parseGenerate(raw)
	if err != nil {
		logging.Error("Unrecognized generate response", "topic", topic, "body", truncateForLog(raw))
		return nil, err
	}

	logging.Info("Drafts generated", "topic", topic, "count", len(result.Drafts))
	return result, nil
}

// Refine sends the current content plus an instruction and the chat
// history, returning the revised content and an optional summary message.
func (c *Client) Refine(ctx context.Context, content, instruction string, history []post.ChatMessage) (*RefineResult, error) {
	payload := map[string]any{
		"prompt":       instruction,
		"post":         content,
		"chat_history": history,
	}

	raw, err := c.do(ctx, http.MethodPost, c.opts.RefineURL, payload)
	if err != nil {
		return nil, err
	}

	result, err := parseRefine(raw)
	if err != nil {
		logging.Error("Unrecognized refine response", "body", truncateForLog(raw))
		return nil, err
	}
	return result, nil
}

// do performs one rate-limited HTTP exchange and returns the response body.
func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "Postforge/0.1 (+https://github.com/trendin/postforge)")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook returned %d: %s", resp.StatusCode, truncateForLog(raw))
	}
	return raw, nil
}

var difficulties = []string{post.DifficultyLow, post.DifficultyMed, post.DifficultyHigh}

func truncateForLog(raw []byte) string {
	const max = 512
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max]) + "..."
}
