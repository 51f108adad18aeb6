package ui

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trendin/postforge/internal/post"
	"github.com/trendin/postforge/internal/state"
	"github.com/trendin/postforge/internal/telemetry"
	"github.com/trendin/postforge/internal/webhook"
)

type scriptedClient struct {
	generateResult *webhook.GenerateResult
	generateErr    error
	refineResult   *webhook.RefineResult
	refineErr      error
}

func (c *scriptedClient) Generate(context.Context, string) (*webhook.GenerateResult, error) {
	return c.generateResult, c.generateErr
}

func (c *scriptedClient) Refine(context.Context, string, string, []post.ChatMessage) (*webhook.RefineResult, error) {
	return c.refineResult, c.refineErr
}

func newTestApp(client *scriptedClient) App {
	store := state.New(client, func(n int) int { return 0 })
	app := NewApp(AppConfig{
		Store:  store,
		Niches: []string{"Tech", "Finance"},
		LoadTrends: func(niche string) tea.Cmd {
			return func() tea.Msg {
				return TrendsLoaded{Niche: niche, Topics: webhook.MockTrends(niche)}
			}
		},
	})
	// Simulate the terminal being ready.
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(App)
}

func enterKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }
func escKey() tea.KeyMsg   { return tea.KeyMsg{Type: tea.KeyEscape} }

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs a command tree and feeds every produced message back in.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch batch := msg.(type) {
	case tea.BatchMsg:
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	case nil:
		return m
	}
	m, next := m.Update(msg)
	return drain(t, m, next)
}

func TestInitLoadsTrends(t *testing.T) {
	app := newTestApp(&scriptedClient{})

	m := drain(t, app, app.Init())
	app = m.(App)

	if len(app.landing.trends) == 0 {
		t.Fatal("trends should load on init")
	}
	if app.landing.loading {
		t.Error("loading flag should clear")
	}
}

func TestGenerateFlow(t *testing.T) {
	client := &scriptedClient{generateResult: &webhook.GenerateResult{
		Drafts: []post.Draft{
			{ID: "d1", Title: "Story", Content: "Once.", Hashtags: []string{"AI"}},
		},
		Analysis: &post.Analysis{Consensus: "c", Gap: "g"},
	}}
	app := newTestApp(client)

	m, _ := app.Update(runeKey("remote work"))
	app = m.(App)
	m, cmd := app.Update(enterKey())
	app = m.(App)

	if app.store.Mode != state.ModeGenerating {
		t.Fatalf("mode = %v, want generating", app.store.Mode)
	}
	if !strings.Contains(app.View(), "remote work") {
		t.Error("generating view should show the topic")
	}

	app = drain(t, app, cmd).(App)

	if app.store.Mode != state.ModeSelection {
		t.Fatalf("mode = %v, want selection", app.store.Mode)
	}
	view := app.View()
	if !strings.Contains(view, "Story") {
		t.Error("selection view should show the draft title")
	}
	if !strings.Contains(view, "Consensus") {
		t.Error("selection view should show the analysis panel")
	}
	if !strings.Contains(view, "Start from scratch") {
		t.Error("selection view should offer the custom draft")
	}
}

func TestGenerateFromHighlightedTrend(t *testing.T) {
	client := &scriptedClient{generateResult: &webhook.GenerateResult{
		Drafts: []post.Draft{{ID: "d1", Title: "T", Content: "c", Hashtags: []string{}}},
	}}
	app := newTestApp(client)
	app = drain(t, app, app.Init()).(App)

	// Empty input plus enter uses the highlighted trend title.
	m, _ := app.Update(enterKey())
	app = m.(App)

	if app.store.Mode != state.ModeGenerating {
		t.Fatalf("mode = %v, want generating", app.store.Mode)
	}
	if app.store.Topic != webhook.MockTrends("")[0].Title {
		t.Errorf("topic = %q", app.store.Topic)
	}
}

func TestGenerateFailureShowsErrorOnGenerating(t *testing.T) {
	client := &scriptedClient{generateErr: errors.New("backend down")}
	app := newTestApp(client)

	m, _ := app.Update(runeKey("x"))
	app = m.(App)
	m, cmd := app.Update(enterKey())
	app = drain(t, m.(App), cmd).(App)

	if app.store.Mode != state.ModeGenerating {
		t.Fatalf("mode = %v, want generating", app.store.Mode)
	}
	if !strings.Contains(app.View(), "backend down") {
		t.Error("generating view should show the error")
	}

	// Backing out clears the failed session.
	m, _ = app.Update(escKey())
	app = m.(App)
	if app.store.Mode != state.ModeLanding {
		t.Errorf("esc should return to landing, mode = %v", app.store.Mode)
	}
	if app.store.Err != nil {
		t.Error("error should clear on reset")
	}
}

func TestEscapeDuringGenerationDropsLateResult(t *testing.T) {
	client := &scriptedClient{generateResult: &webhook.GenerateResult{
		Drafts: []post.Draft{{ID: "d1", Title: "T", Content: "c", Hashtags: []string{}}},
	}}
	app := newTestApp(client)

	m, _ := app.Update(runeKey("x"))
	app = m.(App)
	m, genCmd := app.Update(enterKey())
	app = m.(App)

	m, _ = app.Update(escKey())
	app = m.(App)
	if app.store.Mode != state.ModeLanding {
		t.Fatalf("esc should return to landing, mode = %v", app.store.Mode)
	}

	// The in-flight result arrives after the reset.
	app = drain(t, app, genCmd).(App)
	if app.store.Mode != state.ModeLanding {
		t.Errorf("late result should be dropped, mode = %v", app.store.Mode)
	}
}

func selectFirstDraft(t *testing.T, app App) App {
	t.Helper()
	m, cmd := app.Update(enterKey())
	return drain(t, m.(App), cmd).(App)
}

func appInSelection(t *testing.T, client *scriptedClient) App {
	t.Helper()
	app := newTestApp(client)
	m, _ := app.Update(runeKey("topic"))
	app = m.(App)
	m, cmd := app.Update(enterKey())
	return drain(t, m.(App), cmd).(App)
}

func TestSelectDraftOpensEditor(t *testing.T) {
	var savedTopic string
	var savedDraft post.Draft
	client := &scriptedClient{generateResult: &webhook.GenerateResult{
		Drafts: []post.Draft{{ID: "d1", Title: "Story", Content: "Once.", Hashtags: []string{"AI"}}},
	}}
	app := appInSelection(t, client)
	app.cfg.SavePost = func(topic string, d post.Draft) tea.Cmd {
		return func() tea.Msg {
			savedTopic, savedDraft = topic, d
			return PostSaved{}
		}
	}

	app = selectFirstDraft(t, app)

	if app.store.Mode != state.ModeEditor {
		t.Fatalf("mode = %v, want editor", app.store.Mode)
	}
	if savedTopic != "topic" || savedDraft.ID != "d1" {
		t.Errorf("SavePost got %q / %+v", savedTopic, savedDraft)
	}
	view := app.View()
	if !strings.Contains(view, "Once.") {
		t.Error("editor should show the post content")
	}
	if !strings.Contains(view, "refine this post") {
		t.Error("editor should show the assistant greeting")
	}
}

func TestCustomDraftEntry(t *testing.T) {
	client := &scriptedClient{generateResult: &webhook.GenerateResult{
		Drafts: []post.Draft{{ID: "d1", Title: "Story", Content: "Once.", Hashtags: []string{}}},
	}}
	app := appInSelection(t, client)

	// Move past the single draft onto the custom entry.
	m, _ := app.Update(runeKey("j"))
	app = m.(App)
	app = selectFirstDraft(t, app)

	if app.store.Mode != state.ModeEditor {
		t.Fatalf("mode = %v", app.store.Mode)
	}
	if app.store.Selected.ID != state.CustomDraftID {
		t.Errorf("selected = %+v", app.store.Selected)
	}
}

func TestRefineFlow(t *testing.T) {
	var revPostID, revInstruction string
	client := &scriptedClient{
		generateResult: &webhook.GenerateResult{
			Drafts: []post.Draft{{ID: "d1", Title: "Story", Content: "Once.", Hashtags: []string{"AI"}}},
		},
		refineResult: &webhook.RefineResult{Content: "Twice."},
	}
	app := appInSelection(t, client)
	app.cfg.SaveRevision = func(postID, instruction, content string) tea.Cmd {
		return func() tea.Msg {
			revPostID, revInstruction = postID, instruction
			return PostSaved{}
		}
	}
	app = selectFirstDraft(t, app)

	m, _ := app.Update(runeKey("make it better"))
	app = m.(App)
	m, cmd := app.Update(enterKey())
	app = m.(App)

	if !app.store.Updating {
		t.Error("refinement should be in flight")
	}
	app = drain(t, app, cmd).(App)

	if app.store.Selected.Content != "Twice.\n\n#AI" {
		t.Errorf("content = %q", app.store.Selected.Content)
	}
	if revPostID != "d1" || revInstruction != "make it better" {
		t.Errorf("revision = %q / %q", revPostID, revInstruction)
	}
	if !strings.Contains(app.View(), "Twice.") {
		t.Error("editor should show the refined content")
	}
}

func TestCopyPost(t *testing.T) {
	var copied string
	client := &scriptedClient{generateResult: &webhook.GenerateResult{
		Drafts: []post.Draft{{ID: "d1", Title: "Story", Content: "Once.", Hashtags: []string{}}},
	}}
	app := appInSelection(t, client)
	app.cfg.Copy = func(text, what string) tea.Cmd {
		return func() tea.Msg {
			copied = text
			return CopyDone{What: what}
		}
	}
	app = selectFirstDraft(t, app)

	m, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	app = drain(t, m.(App), cmd).(App)

	if copied != "Once." {
		t.Errorf("copied = %q", copied)
	}
	if !strings.Contains(app.View(), "Copied post") {
		t.Error("status bar should confirm the copy")
	}
}

func TestBackToDraftsFromEditor(t *testing.T) {
	client := &scriptedClient{generateResult: &webhook.GenerateResult{
		Drafts: []post.Draft{{ID: "d1", Title: "Story", Content: "Once.", Hashtags: []string{}}},
	}}
	app := appInSelection(t, client)
	app = selectFirstDraft(t, app)

	m, _ := app.Update(escKey())
	app = m.(App)

	if app.store.Mode != state.ModeSelection {
		t.Errorf("mode = %v, want selection", app.store.Mode)
	}
}

func TestNicheCycleReloadsTrends(t *testing.T) {
	var lastNiche string
	app := newTestApp(&scriptedClient{})
	app.cfg.LoadTrends = func(niche string) tea.Cmd {
		return func() tea.Msg {
			lastNiche = niche
			return TrendsLoaded{Niche: niche, Topics: webhook.MockTrends(niche)}
		}
	}

	m, cmd := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = drain(t, m.(App), cmd).(App)

	if lastNiche != "Tech" {
		t.Errorf("niche = %q, want Tech", lastNiche)
	}
	if !strings.Contains(app.landing.trends[0].Title, "Tech:") {
		t.Errorf("trend titles should be niche-prefixed, got %q", app.landing.trends[0].Title)
	}
}

func TestCustomNicheFilter(t *testing.T) {
	var lastNiche string
	app := newTestApp(&scriptedClient{})
	app.cfg.LoadTrends = func(niche string) tea.Cmd {
		return func() tea.Msg {
			lastNiche = niche
			return TrendsLoaded{Niche: niche, Topics: webhook.MockTrends(niche)}
		}
	}

	m, _ := app.Update(runeKey("crypto"))
	app = m.(App)
	m, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	app = drain(t, m.(App), cmd).(App)

	if lastNiche != "crypto" {
		t.Errorf("niche = %q, want crypto", lastNiche)
	}
	if app.landing.input.Value() != "" {
		t.Error("input should clear after the filter is taken")
	}
	if !strings.Contains(app.View(), "crypto") {
		t.Error("custom filter should render as a chip")
	}

	// Cycling the chips drops the custom filter.
	m, cmd = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = drain(t, m.(App), cmd).(App)
	if lastNiche != "Tech" {
		t.Errorf("niche = %q, want Tech", lastNiche)
	}
	if app.landing.customNiche != "" {
		t.Error("custom filter should clear on tab")
	}
}

func TestEditorCharCount(t *testing.T) {
	client := &scriptedClient{generateResult: &webhook.GenerateResult{
		Drafts: []post.Draft{{ID: "d1", Title: "Story", Content: "Once.", Hashtags: []string{}}},
	}}
	app := appInSelection(t, client)
	app = selectFirstDraft(t, app)

	if !strings.Contains(app.View(), "5 chars · short") {
		t.Error("editor should show the character count")
	}

	app.store.SetContent(strings.Repeat("a", 150))
	if !strings.Contains(app.View(), "150 chars · optimal") {
		t.Error("counts inside 100-300 should read optimal")
	}

	app.store.SetContent(strings.Repeat("a", 301))
	if !strings.Contains(app.View(), "301 chars · long") {
		t.Error("counts above 300 should read long")
	}
}

func TestTrackEventsEmitted(t *testing.T) {
	var kinds []telemetry.EventKind
	client := &scriptedClient{generateResult: &webhook.GenerateResult{
		Drafts: []post.Draft{{ID: "d1", Title: "T", Content: "c", Hashtags: []string{}}},
	}}
	app := newTestApp(client)
	app.cfg.Track = func(ev telemetry.Event) { kinds = append(kinds, ev.Kind) }

	m, _ := app.Update(runeKey("x"))
	app = m.(App)
	m, cmd := app.Update(enterKey())
	app = drain(t, m.(App), cmd).(App)

	want := []telemetry.EventKind{telemetry.KindGenerateStart, telemetry.KindGenerateComplete}
	if len(kinds) != 2 || kinds[0] != want[0] || kinds[1] != want[1] {
		t.Errorf("tracked kinds = %v, want %v", kinds, want)
	}
}

func TestDebugOverlayShowsRecentEvents(t *testing.T) {
	app := newTestApp(&scriptedClient{})
	app.cfg.RecentEvents = func(n int) []telemetry.Event {
		return []telemetry.Event{
			{Kind: telemetry.KindGenerateStart, Topic: "remote work"},
			{Kind: telemetry.KindGenerateError, Err: "backend down"},
		}
	}

	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	app = m.(App)

	view := app.View()
	if !strings.Contains(view, "gen.start") || !strings.Contains(view, "remote work") {
		t.Errorf("overlay should list buffered events, got %q", view)
	}
	if !strings.Contains(view, "err=backend down") {
		t.Error("overlay should show event errors")
	}

	// Keys other than the close keys are swallowed while open.
	m, _ = app.Update(runeKey("x"))
	app = m.(App)
	if app.landing.input.Value() != "" {
		t.Error("typing should not reach the landing input while the overlay is open")
	}

	m, _ = app.Update(escKey())
	app = m.(App)
	if !strings.Contains(app.View(), "Postforge") {
		t.Error("esc should close the overlay")
	}
}

func TestDebugOverlayDisabledWithoutSource(t *testing.T) {
	app := newTestApp(&scriptedClient{})

	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	app = m.(App)

	if !strings.Contains(app.View(), "Postforge") {
		t.Error("ctrl+g should be inert when no event source is wired")
	}
}

func TestShareURL(t *testing.T) {
	u, err := url.Parse(ShareURL("Hello world #AI"))
	if err != nil {
		t.Fatalf("ShareURL produced an invalid URL: %v", err)
	}
	if u.Host != "www.linkedin.com" || u.Path != "/feed/" {
		t.Errorf("unexpected URL: %s", u)
	}
	q := u.Query()
	if q.Get("shareActive") != "true" {
		t.Error("shareActive param missing")
	}
	if q.Get("text") != "Hello world #AI" {
		t.Errorf("text param = %q", q.Get("text"))
	}
}
