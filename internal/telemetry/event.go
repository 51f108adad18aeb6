// Package telemetry provides structured, fire-and-forget event collection
// for Postforge.
//
// Events are typed structs serialized as JSONL lines. The Collector writes
// events asynchronously via a buffered channel and background drain
// goroutine; a full channel drops the event rather than blocking the UI.
// An optional RingBuffer provides live in-memory inspection.
package telemetry

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of a telemetry event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Trend events
	KindTrendsFetch EventKind = "trends.fetch"
	KindTrendsError EventKind = "trends.error"
	KindTrendClick  EventKind = "trends.click"
	KindNicheSelect EventKind = "trends.niche_select"

	// Generation events
	KindGenerateStart    EventKind = "gen.start"
	KindGenerateComplete EventKind = "gen.complete"
	KindGenerateError    EventKind = "gen.error"

	// Editor events
	KindDraftSelect  EventKind = "editor.draft_select"
	KindCustomDraft  EventKind = "editor.custom_draft"
	KindRefineStart  EventKind = "editor.refine_start"
	KindRefineDone   EventKind = "editor.refine_complete"
	KindRefineError  EventKind = "editor.refine_error"
	KindCopyPost     EventKind = "editor.copy"
	KindShareLink    EventKind = "editor.share_link"
	KindBackToDrafts EventKind = "editor.back_to_drafts"

	// History events
	KindHistoryError EventKind = "history.error"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"
)

// Event is the universal telemetry record. Every field except Kind and
// Time is optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"`       // component: "ui", "state", "webhook", "main"
	SessionID string         `json:"session_id,omitempty"` // random hex, same for entire app run
	Topic     string         `json:"topic,omitempty"`
	Niche     string         `json:"niche,omitempty"`
	Draft     string         `json:"draft,omitempty"` // draft title
	Dur       time.Duration  `json:"-"`               // not serialized directly
	DurMs     float64        `json:"dur_ms,omitempty"` // computed from Dur at marshal time
	Count     int            `json:"count,omitempty"`
	Length    int            `json:"length,omitempty"` // post length in characters
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`   // free text
	Extra     map[string]any `json:"extra,omitempty"` // escape hatch for unusual fields
}

// MarshalJSON implements json.Marshaler, converting Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	a := struct {
		Alias
	}{Alias: Alias(e)}
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
