package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// Webhook endpoints and payload contract
	Webhooks WebhookConfig `json:"webhooks"`

	// Trends source selection
	Trends TrendsConfig `json:"trends"`

	// UI preferences
	UI UIConfig `json:"ui"`

	// Telemetry settings
	Telemetry TelemetryConfig `json:"telemetry"`
}

// WebhookConfig holds the three backend endpoints. The backend schema is
// unstable across revisions, so the payload field name for the generate
// call is configuration too, not a fixed contract.
type WebhookConfig struct {
	TrendsURL   string `json:"trends_url"`
	GenerateURL string `json:"generate_url"`
	RefineURL   string `json:"refine_url"`
	TopicField  string `json:"topic_field"` // generate payload key, e.g. "keyword" or "topic"

	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

// TrendsConfig selects where trending topics come from and what happens
// when the source fails.
type TrendsConfig struct {
	Source    string `json:"source"`     // "webhook" or "rss"
	OnFailure string `json:"on_failure"` // "fallback" or "propagate"
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme      string   `json:"theme"`
	Niches     []string `json:"niches"`
	TrendLimit int      `json:"trend_limit"`
}

// TelemetryConfig holds event logging preferences
type TelemetryConfig struct {
	Enabled bool `json:"enabled"`
}

// DefaultNiches are the niche filter chips shown on the landing screen.
var DefaultNiches = []string{
	"Technology",
	"Marketing",
	"Finance",
	"Healthcare",
	"Education",
	"Real Estate",
	"E-commerce",
	"Sustainability",
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Webhooks: WebhookConfig{
			TrendsURL:         "https://aionesolution-trendin.hf.space/webhook/trendin-trends",
			GenerateURL:       "https://aionesolution-trendin.hf.space/webhook/smart-linkedin-agent",
			RefineURL:         "https://aionesolution-trendin.hf.space/webhook/linkedin-content-automation-interact-v2",
			TopicField:        "keyword",
			TimeoutSeconds:    60,
			RequestsPerSecond: 2,
		},
		Trends: TrendsConfig{
			Source:    "webhook",
			OnFailure: "fallback",
		},
		UI: UIConfig{
			Theme:      "dark",
			Niches:     DefaultNiches,
			TrendLimit: 20,
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
		},
	}
}

// DataDir returns the application data directory (~/.postforge)
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".postforge")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from an explicit path, or returns defaults
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		// A corrupt file is treated like a missing one; env overrides
		// still apply. A failed unmarshal may leave partial state, so
		// start over from defaults.
		cfg = DefaultConfig()
		cfg.AutoPopulateFromEnv()
		return cfg, nil
	}
	cfg.fillDefaults()
	cfg.AutoPopulateFromEnv()

	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes config to an explicit path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// AutoPopulateFromEnv applies endpoint overrides from the environment.
func (c *Config) AutoPopulateFromEnv() {
	if v := os.Getenv("POSTFORGE_TRENDS_URL"); v != "" {
		c.Webhooks.TrendsURL = v
	}
	if v := os.Getenv("POSTFORGE_GENERATE_URL"); v != "" {
		c.Webhooks.GenerateURL = v
	}
	if v := os.Getenv("POSTFORGE_REFINE_URL"); v != "" {
		c.Webhooks.RefineURL = v
	}
	if v := os.Getenv("POSTFORGE_TOPIC_FIELD"); v != "" {
		c.Webhooks.TopicField = v
	}
}

// fillDefaults patches zero values left by partial config files.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Webhooks.TopicField == "" {
		c.Webhooks.TopicField = def.Webhooks.TopicField
	}
	if c.Webhooks.TimeoutSeconds <= 0 {
		c.Webhooks.TimeoutSeconds = def.Webhooks.TimeoutSeconds
	}
	if c.Webhooks.RequestsPerSecond <= 0 {
		c.Webhooks.RequestsPerSecond = def.Webhooks.RequestsPerSecond
	}
	if c.Trends.Source == "" {
		c.Trends.Source = def.Trends.Source
	}
	if c.Trends.OnFailure == "" {
		c.Trends.OnFailure = def.Trends.OnFailure
	}
	if len(c.UI.Niches) == 0 {
		c.UI.Niches = def.UI.Niches
	}
	if c.UI.TrendLimit <= 0 {
		c.UI.TrendLimit = def.UI.TrendLimit
	}
}
