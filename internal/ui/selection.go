package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trendin/postforge/internal/post"
	"github.com/trendin/postforge/internal/telemetry"
)

func (a App) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The last entry is "start from scratch".
	last := len(a.store.Drafts)

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "j", "down":
		if a.selCursor < last {
			a.selCursor++
		}
		return a, nil

	case "k", "up":
		if a.selCursor > 0 {
			a.selCursor--
		}
		return a, nil

	case "esc":
		a.store.Reset()
		cmd := a.landing.Focus()
		return a, cmd

	case "enter":
		if a.selCursor == last {
			a.store.UseCustomDraft()
			a.track(telemetry.Event{Kind: telemetry.KindCustomDraft, Topic: a.store.Topic})
		} else {
			draft := a.store.Drafts[a.selCursor]
			a.store.SelectDraft(draft.ID)
			a.track(telemetry.Event{Kind: telemetry.KindDraftSelect, Topic: a.store.Topic, Draft: draft.Title})
		}
		cmds := []tea.Cmd{a.editor.open(a.store)}
		if a.cfg.SavePost != nil {
			cmds = append(cmds, a.cfg.SavePost(a.store.Topic, *a.store.Selected))
		}
		return a, tea.Batch(cmds...)
	}

	return a, nil
}

func (a App) viewSelection() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Pick a draft"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d angles on \"%s\"", len(a.store.Drafts), a.store.Topic)))
	b.WriteString("\n\n")

	if an := a.store.Analysis; an != nil {
		panel := CardTitle.Render("Topic analysis") + "\n"
		if an.Consensus != "" {
			panel += CardMeta.Render("Consensus: ") + an.Consensus + "\n"
		}
		if an.Gap != "" {
			panel += CardMeta.Render("Gap: ") + an.Gap
		}
		style := AnalysisPanel
		if a.width > 4 {
			style = style.Width(a.width - 4)
		}
		b.WriteString(style.Render(strings.TrimRight(panel, "\n")))
		b.WriteString("\n")
	}

	for i, d := range a.store.Drafts {
		b.WriteString(a.renderDraftCard(d, i == a.selCursor))
		b.WriteString("\n")
	}

	custom := CardTitle.Render("Start from scratch") + "\n" + CardMeta.Render("Write your own post with AI help")
	style := NormalCard
	if a.selCursor == len(a.store.Drafts) {
		style = SelectedCard
	}
	if a.width > 4 {
		style = style.Width(a.width - 4)
	}
	b.WriteString(style.Render(custom))
	b.WriteString("\n")

	b.WriteString(a.renderStatusBar([][2]string{
		{"j/k", "move"},
		{"enter", "edit"},
		{"esc", "new topic"},
		{"q", "quit"},
	}))
	return b.String()
}

func (a App) renderDraftCard(d post.Draft, selected bool) string {
	body := CardTitle.Render(d.Title) + "\n" + truncate(d.Content, 180)
	if len(d.Hashtags) > 0 {
		body += "\n" + CardMeta.Render(strings.Join(post.FormatTags(d.Hashtags), " "))
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
