// Package state holds the application's mode machine and session data.
//
// A single Store owns everything the screens render: the current mode,
// the topic, generated drafts, the selected draft, and the editor chat
// transcript. Mutations are synchronous; the slow webhook calls run as
// bubbletea commands whose completion messages are folded back in with
// the Apply methods.
package state

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trendin/postforge/internal/post"
	"github.com/trendin/postforge/internal/webhook"
)

// Mode identifies which screen the application is on.
type Mode int

const (
	ModeLanding Mode = iota
	ModeGenerating
	ModeSelection
	ModeEditor

	// ModeTrending is reserved for a dedicated trend-browsing screen.
	// Nothing transitions to it yet; trends render inline on the landing
	// screen.
	ModeTrending
)

func (m Mode) String() string {
	switch m {
	case ModeLanding:
		return "landing"
	case ModeGenerating:
		return "generating"
	case ModeSelection:
		return "selection"
	case ModeEditor:
		return "editor"
	case ModeTrending:
		return "trending"
	}
	return "unknown"
}

// CustomDraftID marks the blank draft a user starts from scratch.
const CustomDraftID = "custom"

// Client is the slice of the webhook client the store needs.
type Client interface {
	Generate(ctx context.Context, topic string) (*webhook.GenerateResult, error)
	Refine(ctx context.Context, content, instruction string, history []post.ChatMessage) (*webhook.RefineResult, error)
}

// Store is the session state. Not safe for concurrent use; bubbletea's
// single-threaded update loop is the only mutator.
type Store struct {
	Mode     Mode
	Topic    string
	Drafts   []post.Draft
	Selected *post.Draft
	Analysis *post.Analysis
	Messages []post.ChatMessage

	// Generating covers draft generation, Updating a refinement in
	// flight. They are separate because they gate different screens.
	Generating bool
	Updating   bool

	// Err is the last generation error, shown on the generating screen.
	Err error

	client Client

	// pick selects an index in [0, n) for canned assistant replies.
	pick func(n int) int
}

// New creates a Store in landing mode.
func New(client Client, pick func(n int) int) *Store {
	if pick == nil {
		pick = func(n int) int { return 0 }
	}
	return &Store{
		Mode:     ModeLanding,
		Messages: []post.ChatMessage{},
		client:   client,
		pick:     pick,
	}
}

// GenerateDrafts starts draft generation for a topic. It moves to the
// generating screen immediately and returns the command that performs
// the webhook call. Empty topics and double submissions are no-ops.
func (s *Store) GenerateDrafts(ctx context.Context, topic string) tea.Cmd {
	if topic == "" || s.Generating {
		return nil
	}
	s.Topic = topic
	s.Mode = ModeGenerating
	s.Generating = true
	s.Err = nil

	client := s.client
	return func() tea.Msg {
		result, err := client.Generate(ctx, topic)
		return DraftsGenerated{Topic: topic, Result: result, Err: err}
	}
}

// ApplyDrafts folds a generation result back in. Success lands on the
// selection screen. Failure stays on the generating screen with the
// spinner stopped and the error set; the user backs out manually.
func (s *Store) ApplyDrafts(msg DraftsGenerated) {
	s.Generating = false
	if msg.Err != nil {
		s.Err = msg.Err
		return
	}
	s.Drafts = msg.Result.Drafts
	s.Analysis = msg.Result.Analysis
	s.Mode = ModeSelection
}

// SelectDraft opens the editor on the draft with the given ID, merging
// the hashtag block into the content once. The chat transcript restarts
// with a greeting. Unknown IDs are ignored.
func (s *Store) SelectDraft(id string) {
	for i := range s.Drafts {
		if s.Drafts[i].ID == id {
			draft := s.Drafts[i]
			draft.Content = post.MergeTags(draft.Content, draft.Hashtags)
			s.Selected = &draft
			s.Messages = []post.ChatMessage{{Role: post.RoleAssistant, Content: greetingDraft}}
			s.Mode = ModeEditor
			return
		}
	}
}

// UseCustomDraft opens the editor on an empty draft.
func (s *Store) UseCustomDraft() {
	s.Selected = &post.Draft{
		ID:       CustomDraftID,
		Title:    "Custom Draft",
		Content:  "",
		Hashtags: []string{},
	}
	s.Messages = []post.ChatMessage{{Role: post.RoleAssistant, Content: greetingCustom}}
	s.Mode = ModeEditor
}

// SendChatMessage records the user's instruction and starts a
// refinement. The chat history sent to the backend is the transcript
// before this instruction was appended. No-op when empty, when no draft
// is open, or while a refinement is already in flight.
func (s *Store) SendChatMessage(ctx context.Context, instruction string) tea.Cmd {
	if instruction == "" || s.Selected == nil || s.Updating {
		return nil
	}
	history := make([]post.ChatMessage, len(s.Messages))
	copy(history, s.Messages)

	s.Messages = append(s.Messages, post.ChatMessage{Role: post.RoleUser, Content: instruction})
	s.Updating = true

	client := s.client
	content := s.Selected.Content
	return func() tea.Msg {
		result, err := client.Refine(ctx, content, instruction, history)
		return PostRefined{Result: result, Err: err}
	}
}

// ApplyRefine folds a refinement result back in. On success the draft
// content is replaced (with its hashtags re-applied) and the assistant
// confirms; on failure the content is untouched and the assistant
// apologizes. Either way the conversation continues.
func (s *Store) ApplyRefine(msg PostRefined) {
	s.Updating = false
	if s.Selected == nil {
		return
	}
	if msg.Err != nil {
		reply := errorReplies[s.pick(len(errorReplies))]
		s.Messages = append(s.Messages, post.ChatMessage{Role: post.RoleAssistant, Content: reply})
		return
	}

	s.Selected.Content = post.MergeTags(msg.Result.Content, s.Selected.Hashtags)

	reply := msg.Result.SummaryMessage
	if reply == "" {
		reply = successReplies[s.pick(len(successReplies))]
	}
	s.Messages = append(s.Messages, post.ChatMessage{Role: post.RoleAssistant, Content: reply})
}

// SetContent replaces the selected draft's content with a manual edit.
func (s *Store) SetContent(content string) {
	if s.Selected != nil {
		s.Selected.Content = content
	}
}

// BackToDrafts returns from the editor to the selection screen. The
// drafts and analysis stay; the transcript and selection are discarded.
func (s *Store) BackToDrafts() {
	s.Selected = nil
	s.Messages = []post.ChatMessage{}
	s.Updating = false
	s.Mode = ModeSelection
}

// Reset returns to a clean landing screen, dropping all session data
// including the topic analysis.
func (s *Store) Reset() {
	s.Mode = ModeLanding
	s.Topic = ""
	s.Drafts = nil
	s.Selected = nil
	s.Analysis = nil
	s.Messages = []post.ChatMessage{}
	s.Generating = false
	s.Updating = false
	s.Err = nil
}
