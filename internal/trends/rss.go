package trends

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/trendin/postforge/internal/post"
)

// googleNewsSearch is the RSS search endpoint. The %s is the query.
const googleNewsSearch = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"

// RSSProvider resolves trends by searching Google News for "<niche>
// trends" and converting the result items to topics. It needs no backend
// at all, which makes it the offline-friendly alternative to the webhook.
type RSSProvider struct {
	client *http.Client
	limit  int

	// pick selects an index in [0, n) for the synthesized volume and
	// difficulty fields. Injectable for tests.
	pick func(n int) int
}

// NewRSSProvider creates an RSSProvider returning at most limit topics.
func NewRSSProvider(timeout time.Duration, limit int, pick func(n int) int) *RSSProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if limit <= 0 {
		limit = 5
	}
	return &RSSProvider{
		client: &http.Client{Timeout: timeout},
		limit:  limit,
		pick:   pick,
	}
}

// Trends searches Google News for the niche and returns the top items.
func (p *RSSProvider) Trends(ctx context.Context, niche string) ([]post.TrendingTopic, error) {
	query := "business trends"
	if niche != "" {
		query = niche + " trends"
	}
	feedURL := fmt.Sprintf(googleNewsSearch, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Postforge/0.1 (+https://github.com/trendin/postforge)")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed returned no items for %q", query)
	}

	topics := make([]post.TrendingTopic, 0, p.limit)
	for _, item := range feed.Items {
		if len(topics) >= p.limit {
			break
		}
		topics = append(topics, p.convertItem(item))
	}
	return topics, nil
}

func (p *RSSProvider) convertItem(item *gofeed.Item) post.TrendingTopic {
	published := ""
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.Format("Jan 02, 2006")
	}

	// Google News appends " - <source>" to titles; split it back out.
	title := item.Title
	source := ""
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		source = title[idx+3:]
		title = title[:idx]
	}

	return post.TrendingTopic{
		ID:            hashID(item),
		Title:         title,
		Snippet:       stripTags(item.Description),
		SourceName:    source,
		Link:          item.Link,
		PublishedDate: published,
		Volume:        fmt.Sprintf("%dK posts", p.pickIndex(41)+10),
		Difficulty:    difficulties[p.pickIndex(len(difficulties))],
	}
}

func (p *RSSProvider) pickIndex(n int) int {
	if p.pick != nil {
		return p.pick(n)
	}
	return 0
}

var difficulties = []string{post.DifficultyLow, post.DifficultyMed, post.DifficultyHigh}

// hashID creates a deterministic ID for a feed item.
func hashID(item *gofeed.Item) string {
	key := item.GUID
	if key == "" {
		key = item.Link
	}
	if key == "" {
		key = item.Title
	}
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}

// stripTags removes HTML markup from feed descriptions. Google News
// descriptions are anchor-wrapped headlines; plain text is enough here.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
