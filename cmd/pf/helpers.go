package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/trendin/postforge/internal/config"
	"github.com/trendin/postforge/internal/history"
)

// dataDir returns ~/.postforge/, creating it if needed.
func dataDir() string {
	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	return dir
}

// eventLogPath returns the path to postforge.events.jsonl.
func eventLogPath() string {
	return filepath.Join(dataDir(), "postforge.events.jsonl")
}

// openHistory opens the history store or fatals.
func openHistory() *history.Store {
	st, err := history.NewStore(filepath.Join(dataDir(), "postforge.db"))
	if err != nil {
		log.Fatalf("failed to open history database: %v", err)
	}
	return st
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
