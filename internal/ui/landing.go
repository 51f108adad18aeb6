package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trendin/postforge/internal/post"
	"github.com/trendin/postforge/internal/telemetry"
)

// landingModel is the topic entry screen: a text input, niche filter
// chips, and the trending topic list.
type landingModel struct {
	input  textinput.Model
	niches []string

	// nicheIdx 0 is "All"; 1..len(niches) index into niches.
	nicheIdx int

	// customNiche is a free-text filter entered with ctrl+f. It wins
	// over the chip selection until cleared by cycling the chips.
	customNiche string

	trends    []post.TrendingTopic
	cursor    int
	loading   bool
	trendsErr error
}

func newLandingModel(niches []string) landingModel {
	ti := textinput.New()
	ti.Placeholder = "What do you want to post about?"
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	ti.CharLimit = 200
	ti.Focus()
	return landingModel{
		input:  ti,
		niches: niches,
	}
}

func (l *landingModel) Focus() tea.Cmd {
	l.input.Focus()
	return textinput.Blink
}

// niche returns the active niche filter, "" meaning all.
func (l landingModel) niche() string {
	if l.customNiche != "" {
		return l.customNiche
	}
	if l.nicheIdx == 0 {
		return ""
	}
	return l.niches[l.nicheIdx-1]
}

func (a App) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "enter":
		topic := strings.TrimSpace(a.landing.input.Value())
		if topic == "" && len(a.landing.trends) > 0 {
			// Empty input generates from the highlighted trend.
			t := a.landing.trends[a.landing.cursor]
			a.track(telemetry.Event{Kind: telemetry.KindTrendClick, Topic: t.Title})
			topic = t.Title
		}
		if topic == "" {
			return a, nil
		}
		return a.startGeneration(topic)

	case "tab":
		a.landing.customNiche = ""
		a.landing.nicheIdx = (a.landing.nicheIdx + 1) % (len(a.landing.niches) + 1)
		return a.reloadTrends()

	case "shift+tab":
		a.landing.customNiche = ""
		a.landing.nicheIdx--
		if a.landing.nicheIdx < 0 {
			a.landing.nicheIdx = len(a.landing.niches)
		}
		return a.reloadTrends()

	case "ctrl+f":
		// Use the typed text as a free-form niche filter.
		niche := strings.TrimSpace(a.landing.input.Value())
		if niche == "" {
			return a, nil
		}
		a.landing.customNiche = niche
		a.landing.input.SetValue("")
		return a.reloadTrends()

	case "down", "ctrl+n":
		if a.landing.cursor < len(a.landing.trends)-1 {
			a.landing.cursor++
		}
		return a, nil

	case "up", "ctrl+p":
		if a.landing.cursor > 0 {
			a.landing.cursor--
		}
		return a, nil

	case "ctrl+r":
		return a.reloadTrends()
	}

	var cmd tea.Cmd
	a.landing.input, cmd = a.landing.input.Update(msg)
	return a, cmd
}

func (a App) reloadTrends() (tea.Model, tea.Cmd) {
	niche := a.landing.niche()
	a.track(telemetry.Event{Kind: telemetry.KindNicheSelect, Niche: niche})
	if a.cfg.LoadTrends == nil {
		return a, nil
	}
	a.landing.loading = true
	return a, a.cfg.LoadTrends(niche)
}

func (a App) viewLanding() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Postforge"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Turn trending topics into LinkedIn posts"))
	b.WriteString("\n\n")

	b.WriteString(" " + a.landing.input.View())
	b.WriteString("\n\n")

	// Niche chips. A custom filter takes the active highlight.
	chips := make([]string, 0, len(a.landing.niches)+2)
	for i, name := range append([]string{"All"}, a.landing.niches...) {
		if i == a.landing.nicheIdx && a.landing.customNiche == "" {
			chips = append(chips, NicheActive.Render(name))
		} else {
			chips = append(chips, NicheInactive.Render(name))
		}
	}
	if a.landing.customNiche != "" {
		chips = append(chips, NicheActive.Render(a.landing.customNiche))
	}
	b.WriteString(" " + lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	b.WriteString("\n\n")

	switch {
	case a.landing.loading:
		b.WriteString(SubtitleStyle.Render("Loading trends..."))
		b.WriteString("\n")
	case a.landing.trendsErr != nil:
		b.WriteString(ErrorStyle.Render("Trends unavailable: " + a.landing.trendsErr.Error()))
		b.WriteString("\n")
	default:
		for i, t := range a.landing.trends {
			b.WriteString(a.renderTrend(t, i == a.landing.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString(a.renderStatusBar([][2]string{
		{"enter", "generate"},
		{"tab", "niche"},
		{"ctrl+f", "filter"},
		{"↑/↓", "trends"},
		{"ctrl+r", "refresh"},
		{"ctrl+c", "quit"},
	}))
	return b.String()
}

func (a App) renderTrend(t post.TrendingTopic, selected bool) string {
	title := CardTitle.Render(t.Title)
	meta := CardMeta.Render(fmt.Sprintf("%s · %s · %s · %s", t.SourceName, t.Volume, t.Difficulty, t.PublishedDate))
	body := title + "\n" + meta
	if t.Snippet != "" {
		body += "\n" + CardMeta.Render(truncate(t.Snippet, 100))
	}
	style := NormalCard
	if selected {
		style = SelectedCard
	}
	if a.width > 4 {
		style = style.Width(a.width - 4)
	}
	return style.Render(body)
}

func (a App) renderStatusBar(hints [][2]string) string {
	parts := make([]string, 0, len(hints)+1)
	if a.notice != "" {
		parts = append(parts, NoticeStyle.Render(a.notice))
	}
	for _, h := range hints {
		parts = append(parts, StatusBarKey.Render(h[0])+StatusBarText.Render(" "+h[1]))
	}
	return StatusBar.Width(a.width).Render(strings.Join(parts, "  "))
}

func (a App) viewGenerating() string {
	var b strings.Builder
	b.WriteString("\n\n")
	if a.store.Err != nil {
		b.WriteString(ErrorStyle.Render("Generation failed: " + a.store.Err.Error()))
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render("Press esc to try another topic."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(TitleStyle.Render(a.spin.View() + " Generating posts"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Researching \"" + a.store.Topic + "\" and drafting angles..."))
	b.WriteString("\n")
	return b.String()
}

func (a App) updateGenerating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		// Abandon the wait; the in-flight result arrives against a
		// store that is no longer generating and gets dropped.
		a.store.Reset()
		cmd := a.landing.Focus()
		return a, cmd
	}
	return a, nil
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
