package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trendin/postforge/internal/post"
	"github.com/trendin/postforge/internal/state"
	"github.com/trendin/postforge/internal/telemetry"
)

// editorModel is the refinement screen: the post pane on the left, the
// chat transcript and input on the right. ctrl+e switches the post pane
// into a textarea for manual edits.
type editorModel struct {
	chatInput textinput.Model
	editArea  textarea.Model
	chat      viewport.Model

	editing bool
	width   int
	height  int
}

func newEditorModel() editorModel {
	ti := textinput.New()
	ti.Placeholder = "Ask for a change..."
	ti.Prompt = "> "
	ti.CharLimit = 500

	ta := textarea.New()
	ta.ShowLineNumbers = false

	return editorModel{
		chatInput: ti,
		editArea:  ta,
		chat:      viewport.New(40, 10),
	}
}

func (e *editorModel) setSize(width, height int) {
	e.width = width
	e.height = height
	half := width/2 - 4
	if half < 20 {
		half = 20
	}
	e.chatInput.Width = half
	e.editArea.SetWidth(half)
	e.editArea.SetHeight(height - 8)
	e.chat.Width = half
	e.chat.Height = height - 10
}

// open prepares the editor for the store's selected draft.
func (e *editorModel) open(s *state.Store) tea.Cmd {
	e.editing = false
	e.chatInput.SetValue("")
	e.syncTranscript(s.Messages)
	e.chatInput.Focus()
	return textinput.Blink
}

// syncTranscript re-renders the chat viewport and scrolls to the end.
func (e *editorModel) syncTranscript(messages []post.ChatMessage) {
	var b strings.Builder
	for _, m := range messages {
		switch m.Role {
		case post.RoleUser:
			b.WriteString(ChatUser.Render("You: "))
		default:
			b.WriteString(ChatAssistant.Render("Assistant: "))
		}
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}
	width := e.chat.Width
	if width <= 0 {
		width = 40
	}
	e.chat.SetContent(lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n")))
	e.chat.GotoBottom()
}

func (a App) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editor.editing {
		return a.updateEditorEditing(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.store.BackToDrafts()
		a.track(telemetry.Event{Kind: telemetry.KindBackToDrafts})
		return a, nil

	case "enter":
		instruction := strings.TrimSpace(a.editor.chatInput.Value())
		cmd := a.store.SendChatMessage(a.cfg.Ctx, instruction)
		if cmd == nil {
			return a, nil
		}
		a.lastInstruction = instruction
		a.editor.chatInput.SetValue("")
		a.editor.syncTranscript(a.store.Messages)
		a.track(telemetry.Event{Kind: telemetry.KindRefineStart, Length: len(instruction)})
		return a, tea.Batch(cmd, a.spin.Tick)

	case "ctrl+e":
		a.editor.editing = true
		a.editor.editArea.SetValue(a.store.Selected.Content)
		a.editor.chatInput.Blur()
		cmd := a.editor.editArea.Focus()
		return a, cmd

	case "ctrl+y":
		if a.cfg.Copy == nil || a.store.Selected == nil {
			return a, nil
		}
		a.track(telemetry.Event{Kind: telemetry.KindCopyPost, Length: len(a.store.Selected.Content)})
		return a, a.cfg.Copy(a.store.Selected.Content, "post")

	case "ctrl+s":
		if a.cfg.Copy == nil || a.store.Selected == nil {
			return a, nil
		}
		a.track(telemetry.Event{Kind: telemetry.KindShareLink})
		return a, a.cfg.Copy(ShareURL(a.store.Selected.Content), "share link")

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		a.editor.chat, cmd = a.editor.chat.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.editor.chatInput, cmd = a.editor.chatInput.Update(msg)
	return a, cmd
}

func (a App) updateEditorEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		// Leave edit mode, keeping the manual changes.
		a.store.SetContent(a.editor.editArea.Value())
		a.editor.editing = false
		a.editor.editArea.Blur()
		a.editor.chatInput.Focus()
		return a, textinput.Blink
	}

	var cmd tea.Cmd
	a.editor.editArea, cmd = a.editor.editArea.Update(msg)
	return a, cmd
}

func (a App) viewEditor() string {
	if a.store.Selected == nil {
		return ""
	}
	d := a.store.Selected

	half := a.width/2 - 2
	if half < 24 {
		half = 24
	}

	// Left: the post.
	var left strings.Builder
	left.WriteString(CardTitle.Render(d.Title))
	left.WriteString("\n\n")
	if a.editor.editing {
		left.WriteString(a.editor.editArea.View())
	} else {
		left.WriteString(d.Content)
	}
	if !a.editor.editing && len(d.Hashtags) > 0 && !strings.Contains(d.Content, "#") {
		left.WriteString("\n\n" + CardMeta.Render(strings.Join(post.FormatTags(d.Hashtags), " ")))
	}
	content := d.Content
	if a.editor.editing {
		content = a.editor.editArea.Value()
	}
	left.WriteString("\n\n" + renderCharCount(content))
	leftPane := PostPanel.Width(half).Render(left.String())

	// Right: the chat.
	var right strings.Builder
	right.WriteString(CardTitle.Render("Assistant"))
	right.WriteString("\n")
	right.WriteString(a.editor.chat.View())
	right.WriteString("\n")
	if a.store.Updating {
		right.WriteString(SubtitleStyle.Render(a.spin.View() + " Updating your post..."))
	} else {
		right.WriteString(" " + a.editor.chatInput.View())
	}
	rightPane := PostPanel.Width(half).Render(right.String())

	body := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	hints := [][2]string{
		{"enter", "send"},
		{"ctrl+e", "edit"},
		{"ctrl+y", "copy"},
		{"ctrl+s", "share"},
		{"esc", "drafts"},
	}
	if a.editor.editing {
		hints = [][2]string{{"esc", "done editing"}}
	}

	return body + "\n" + a.renderStatusBar(hints)
}

// renderCharCount shows the post length against the 100-300 character
// range that tends to perform best on LinkedIn.
func renderCharCount(content string) string {
	n := len([]rune(content))
	label := fmt.Sprintf("%d chars", n)
	switch {
	case n < 100:
		return CardMeta.Render(label + " · short")
	case n > 300:
		return CardMeta.Render(label + " · long")
	}
	return NoticeStyle.Render(label + " · optimal")
}
