package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trendin/postforge/internal/post"
	"github.com/trendin/postforge/internal/state"
	"github.com/trendin/postforge/internal/telemetry"
)

// AppConfig carries the injected command functions and collaborators.
// App does not talk to the webhook client, history store, or clipboard
// directly; it receives closures that produce commands.
type AppConfig struct {
	Store *state.Store

	// LoadTrends fetches trending topics for a niche ("" = all).
	LoadTrends func(niche string) tea.Cmd

	// SavePost persists the draft the user just opened.
	SavePost func(topic string, d post.Draft) tea.Cmd

	// SaveRevision records an accepted refinement.
	SaveRevision func(postID, instruction, content string) tea.Cmd

	// Copy puts text on the clipboard; what labels the CopyDone notice.
	Copy func(text, what string) tea.Cmd

	// Track records a telemetry event. May be nil.
	Track func(ev telemetry.Event)

	// RecentEvents returns the newest telemetry events, oldest first,
	// for the debug overlay. May be nil, which disables the overlay.
	RecentEvents func(n int) []telemetry.Event

	// Niches shown as filter chips on the landing screen.
	Niches []string

	// Ctx bounds the webhook calls. Defaults to context.Background.
	Ctx context.Context
}

// App is the root Bubble Tea model. It routes messages to the screen
// the store's mode selects.
type App struct {
	cfg   AppConfig
	store *state.Store

	landing landingModel
	editor  editorModel

	// selCursor indexes the selection screen: 0..len(Drafts)-1 are the
	// generated drafts, len(Drafts) is the "start from scratch" entry.
	selCursor int

	spin   spinner.Model
	width  int
	height int
	ready  bool
	notice string
	debug  bool

	// lastInstruction is the pending refinement instruction, kept so
	// the revision row can record it when the result lands.
	lastInstruction string
}

// NewApp creates the root model.
func NewApp(cfg AppConfig) App {
	if cfg.Ctx == nil {
		cfg.Ctx = context.Background()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return App{
		cfg:     cfg,
		store:   cfg.Store,
		landing: newLandingModel(cfg.Niches),
		editor:  newEditorModel(),
		spin:    sp,
	}
}

// Init starts the trend lookup for the unfiltered view.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.landing.Focus()}
	if a.cfg.LoadTrends != nil {
		a.landing.loading = true
		cmds = append(cmds, a.cfg.LoadTrends(""))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.editor.setSize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if !a.store.Generating && !a.store.Updating {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case TrendsLoaded:
		a.landing.loading = false
		if msg.Err != nil {
			a.landing.trendsErr = msg.Err
			return a, nil
		}
		a.landing.trendsErr = nil
		a.landing.trends = msg.Topics
		a.landing.cursor = 0
		return a, nil

	case state.DraftsGenerated:
		// A reset while waiting drops the late result.
		if !a.store.Generating {
			return a, nil
		}
		a.store.ApplyDrafts(msg)
		a.selCursor = 0
		if msg.Err != nil {
			a.track(telemetry.Event{Kind: telemetry.KindGenerateError, Topic: msg.Topic, Err: msg.Err.Error()})
		} else {
			a.track(telemetry.Event{Kind: telemetry.KindGenerateComplete, Topic: msg.Topic, Count: len(msg.Result.Drafts)})
		}
		return a, nil

	case state.PostRefined:
		a.store.ApplyRefine(msg)
		a.editor.syncTranscript(a.store.Messages)
		if msg.Err != nil {
			a.track(telemetry.Event{Kind: telemetry.KindRefineError, Err: msg.Err.Error()})
			return a, nil
		}
		a.track(telemetry.Event{Kind: telemetry.KindRefineDone, Length: len(a.store.Selected.Content)})
		if a.cfg.SaveRevision != nil {
			return a, a.cfg.SaveRevision(a.store.Selected.ID, a.lastInstruction, a.store.Selected.Content)
		}
		return a, nil

	case CopyDone:
		if msg.Err != nil {
			a.notice = "Copy failed: " + msg.Err.Error()
		} else {
			a.notice = "Copied " + msg.What + " to clipboard"
		}
		return a, nil

	case PostSaved:
		if msg.Err != nil {
			a.track(telemetry.Event{Kind: telemetry.KindHistoryError, Err: msg.Err.Error()})
		}
		return a, nil

	case tea.KeyMsg:
		a.notice = ""
		if msg.String() == "ctrl+g" && a.cfg.RecentEvents != nil {
			a.debug = !a.debug
			return a, nil
		}
		if a.debug {
			switch msg.String() {
			case "ctrl+c":
				return a, tea.Quit
			case "esc", "q":
				a.debug = false
			}
			return a, nil
		}
		switch a.store.Mode {
		case state.ModeLanding:
			return a.updateLanding(msg)
		case state.ModeGenerating:
			return a.updateGenerating(msg)
		case state.ModeSelection:
			return a.updateSelection(msg)
		case state.ModeEditor:
			return a.updateEditor(msg)
		}
	}

	return a, nil
}

// View renders the screen for the current mode.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.debug {
		return a.viewDebug()
	}
	switch a.store.Mode {
	case state.ModeLanding:
		return a.viewLanding()
	case state.ModeGenerating:
		return a.viewGenerating()
	case state.ModeSelection:
		return a.viewSelection()
	case state.ModeEditor:
		return a.viewEditor()
	}
	return ""
}

// debugEventCount is how many ring buffer entries the overlay shows.
const debugEventCount = 20

// viewDebug renders the recent telemetry events from the ring buffer.
func (a App) viewDebug() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Recent events"))
	b.WriteString("\n")

	events := a.cfg.RecentEvents(debugEventCount)
	if len(events) == 0 {
		b.WriteString(SubtitleStyle.Render("No events this session."))
		b.WriteString("\n")
	} else {
		lines := make([]string, 0, len(events))
		for _, ev := range events {
			line := ev.Time.Format("15:04:05") + "  " + string(ev.Kind)
			if ev.Topic != "" {
				line += "  " + truncate(ev.Topic, 40)
			}
			if ev.Niche != "" {
				line += "  niche=" + ev.Niche
			}
			if ev.Err != "" {
				line += "  err=" + ev.Err
			}
			lines = append(lines, line)
		}
		b.WriteString(HelpStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	return b.String() + a.renderStatusBar([][2]string{
		{"esc", "close"},
		{"ctrl+c", "quit"},
	})
}

// startGeneration kicks off draft generation for a topic.
func (a App) startGeneration(topic string) (tea.Model, tea.Cmd) {
	cmd := a.store.GenerateDrafts(a.cfg.Ctx, topic)
	if cmd == nil {
		return a, nil
	}
	a.track(telemetry.Event{Kind: telemetry.KindGenerateStart, Topic: topic})
	return a, tea.Batch(cmd, a.spin.Tick)
}

func (a App) track(ev telemetry.Event) {
	if a.cfg.Track != nil {
		a.cfg.Track(ev)
	}
}
