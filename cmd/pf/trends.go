package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/trendin/postforge/internal/config"
	"github.com/trendin/postforge/internal/trends"
	"github.com/trendin/postforge/internal/webhook"
)

func runTrends() {
	fs := flag.NewFlagSet("trends", flag.ExitOnError)
	niche := fs.String("niche", "", "Niche filter (e.g. Technology)")
	source := fs.String("source", "", "Source: webhook or rss (default from config)")
	propagate := fs.Bool("propagate", false, "Fail instead of falling back to mock topics")
	fs.Parse(os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *source == "" {
		*source = cfg.Trends.Source
	}

	policy := webhook.FallbackToMock
	if *propagate || cfg.Trends.OnFailure == "propagate" {
		policy = webhook.Propagate
	}

	var provider trends.Provider
	switch *source {
	case "rss":
		provider = trends.NewRSSProvider(30*time.Second, cfg.UI.TrendLimit, rand.Intn)
		if policy == webhook.FallbackToMock {
			provider = trends.WithMockFallback(provider)
		}
	default:
		provider = webhook.New(webhook.Options{
			TrendsURL:         cfg.Webhooks.TrendsURL,
			GenerateURL:       cfg.Webhooks.GenerateURL,
			RefineURL:         cfg.Webhooks.RefineURL,
			Timeout:           time.Duration(cfg.Webhooks.TimeoutSeconds) * time.Second,
			RequestsPerSecond: cfg.Webhooks.RequestsPerSecond,
			TrendsOnFailure:   policy,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	start := time.Now()
	topics, err := provider.Trends(ctx, *niche)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d topics in %s (source=%s)\n\n", len(topics), time.Since(start).Round(time.Millisecond), *source)
	for _, t := range topics {
		fmt.Printf("%s  [%s]\n", t.Title, t.Difficulty)
		fmt.Printf("    %s · %s · %s\n", t.SourceName, t.Volume, t.PublishedDate)
		if t.Snippet != "" {
			fmt.Printf("    %s\n", truncate(t.Snippet, 120))
		}
		fmt.Println()
	}
}
