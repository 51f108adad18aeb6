// Package trends resolves trending topics for a niche.
//
// Two providers exist: the webhook backend (the default) and a direct
// Google News RSS lookup for running without a backend. Both satisfy
// Provider, and WithMockFallback wraps either so that a failed lookup
// resolves with the fixed mock list instead of an error.
package trends

import (
	"context"

	"github.com/trendin/postforge/internal/logging"
	"github.com/trendin/postforge/internal/post"
	"github.com/trendin/postforge/internal/webhook"
)

// Provider fetches trending topics, optionally filtered by niche.
type Provider interface {
	Trends(ctx context.Context, niche string) ([]post.TrendingTopic, error)
}

// mockFallback absorbs provider failures with the fixed mock list.
type mockFallback struct {
	inner Provider
}

// WithMockFallback wraps a provider so that lookups never fail: any
// error from the inner provider resolves with webhook.MockTrends.
func WithMockFallback(p Provider) Provider {
	return &mockFallback{inner: p}
}

func (m *mockFallback) Trends(ctx context.Context, niche string) ([]post.TrendingTopic, error) {
	topics, err := m.inner.Trends(ctx, niche)
	if err != nil {
		logging.Warn("Trend provider failed, using mock topics", "niche", niche, "error", err)
		return webhook.MockTrends(niche), nil
	}
	return topics, nil
}
