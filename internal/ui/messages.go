// Package ui provides the Bubble Tea TUI for Postforge.
package ui

import "github.com/trendin/postforge/internal/post"

// TrendsLoaded is sent when trending topics have been fetched.
type TrendsLoaded struct {
	Niche  string
	Topics []post.TrendingTopic
	Err    error
}

// CopyDone is sent after a clipboard copy attempt.
type CopyDone struct {
	What string // "post" or "share link"
	Err  error
}

// PostSaved is sent after the draft has been written to history.
type PostSaved struct {
	Err error
}
