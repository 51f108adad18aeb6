package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("33")  // Blue
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorError     = lipgloss.Color("196") // Red
)

// TitleStyle for screen headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary).
	Padding(0, 1)

// SubtitleStyle for the tagline under headings.
var SubtitleStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// SelectedCard style for the highlighted draft or trend.
var SelectedCard = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(0, 1)

// NormalCard style for unselected cards.
var NormalCard = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// CardTitle style for draft and trend titles.
var CardTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// CardMeta style for the source/volume/difficulty line.
var CardMeta = lipgloss.NewStyle().
	Foreground(colorSecondary)

// NicheActive style for the selected niche chip.
var NicheActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1).
	MarginRight(1)

// NicheInactive style for the other niche chips.
var NicheInactive = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// AnalysisPanel style for the consensus/gap box.
var AnalysisPanel = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(colorHighlight).
	Padding(0, 1).
	MarginBottom(1)

// ChatUser style for user chat lines.
var ChatUser = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary)

// ChatAssistant style for assistant chat lines.
var ChatAssistant = lipgloss.NewStyle().
	Foreground(colorSuccess)

// PostPanel style for the post content pane in the editor.
var PostPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in the status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true).
	Padding(0, 1)

// NoticeStyle for transient confirmations (copied, saved).
var NoticeStyle = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Padding(0, 1)

// HelpStyle for the debug overlay body.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)
