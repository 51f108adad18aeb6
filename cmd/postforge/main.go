// Command postforge is the TUI for turning trending topics into
// LinkedIn posts.
package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trendin/postforge/internal/config"
	"github.com/trendin/postforge/internal/history"
	"github.com/trendin/postforge/internal/logging"
	"github.com/trendin/postforge/internal/post"
	"github.com/trendin/postforge/internal/state"
	"github.com/trendin/postforge/internal/telemetry"
	"github.com/trendin/postforge/internal/trends"
	"github.com/trendin/postforge/internal/ui"
	"github.com/trendin/postforge/internal/webhook"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if err := logging.Init(); err != nil {
		log.Fatalf("Failed to init logging: %v", err)
	}
	defer logging.Close()

	var collector *telemetry.Collector
	if cfg.Telemetry.Enabled {
		f, err := os.OpenFile(filepath.Join(dataDir, "postforge.events.jsonl"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logging.Warn("Event log unavailable, telemetry disabled", "error", err)
		} else {
			defer f.Close()
			collector = telemetry.NewCollector(f)
		}
	}
	if collector == nil {
		collector = telemetry.NewNullCollector()
	}
	defer collector.Close()
	ring := telemetry.NewRingBuffer(telemetry.DefaultRingSize)
	collector.SetRingBuffer(ring)
	collector.Track(telemetry.Event{Kind: telemetry.KindStartup, Comp: "main"})
	defer collector.Track(telemetry.Event{Kind: telemetry.KindShutdown, Comp: "main"})

	hist, err := history.NewStore(filepath.Join(dataDir, "postforge.db"))
	if err != nil {
		log.Fatalf("Failed to open history database: %v", err)
	}
	defer hist.Close()

	policy := webhook.FallbackToMock
	if cfg.Trends.OnFailure == "propagate" {
		policy = webhook.Propagate
	}
	client := webhook.New(webhook.Options{
		TrendsURL:         cfg.Webhooks.TrendsURL,
		GenerateURL:       cfg.Webhooks.GenerateURL,
		RefineURL:         cfg.Webhooks.RefineURL,
		TopicField:        cfg.Webhooks.TopicField,
		Timeout:           time.Duration(cfg.Webhooks.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.Webhooks.RequestsPerSecond,
		TrendsOnFailure:   policy,
	})

	var provider trends.Provider = client
	if cfg.Trends.Source == "rss" {
		provider = trends.NewRSSProvider(30*time.Second, cfg.UI.TrendLimit, rand.Intn)
		if policy == webhook.FallbackToMock {
			provider = trends.WithMockFallback(provider)
		}
	}

	store := state.New(client, rand.Intn)

	appCfg := ui.AppConfig{
		Store:  store,
		Niches: cfg.UI.Niches,
		Ctx:    ctx,
		LoadTrends: func(niche string) tea.Cmd {
			return func() tea.Msg {
				start := time.Now()
				topics, err := provider.Trends(ctx, niche)
				collector.Track(telemetry.Event{
					Kind: telemetry.KindTrendsFetch, Comp: "trends",
					Niche: niche, Count: len(topics), Dur: time.Since(start),
				})
				return ui.TrendsLoaded{Niche: niche, Topics: topics, Err: err}
			}
		},
		SavePost: func(topic string, d post.Draft) tea.Cmd {
			return func() tea.Msg {
				err := hist.SavePost(history.Entry{
					ID:       d.ID,
					Topic:    topic,
					Title:    d.Title,
					Content:  d.Content,
					Hashtags: d.Hashtags,
				})
				return ui.PostSaved{Err: err}
			}
		},
		SaveRevision: func(postID, instruction, content string) tea.Cmd {
			return func() tea.Msg {
				if err := hist.AddRevision(postID, instruction, content); err != nil {
					return ui.PostSaved{Err: err}
				}
				return ui.PostSaved{Err: hist.UpdateContent(postID, content)}
			}
		},
		Copy: func(text, what string) tea.Cmd {
			return func() tea.Msg {
				return ui.CopyDone{What: what, Err: clipboard.WriteAll(text)}
			}
		},
		Track:        collector.Track,
		RecentEvents: ring.Last,
	}

	program := tea.NewProgram(ui.NewApp(appCfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.Error("Program failed", "error", err)
		os.Exit(1)
	}
}
