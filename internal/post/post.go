// Package post holds the domain types shared by the state store, the
// webhook client, and the UI: drafts, chat messages, trend analysis,
// and trending topics. Plain data, no behavior beyond hashtag helpers.
package post

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Draft is a candidate generated post. One draft becomes the selected
// draft and is thereafter the sole unit of mutation in the editor.
type Draft struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// ChatMessage is one entry in the refine conversation. The transcript is
// append-only; it is cleared and reseeded whenever a new draft is selected.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Analysis is the optional trend analysis attached to a generation result.
type Analysis struct {
	Consensus string `json:"consensus"`
	Gap       string `json:"gap"`
}

// Difficulty buckets for trending topics.
const (
	DifficultyLow  = "Low"
	DifficultyMed  = "Med"
	DifficultyHigh = "High"
)

// TrendingTopic is a transient trend entry, re-fetched on every niche
// change and never cached.
type TrendingTopic struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Snippet       string `json:"snippet,omitempty"`
	SourceName    string `json:"source_name,omitempty"`
	Link          string `json:"link,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	Volume        string `json:"volume,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
}
