package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PrimaryColor  = lipgloss.Color("#7C3AED") // Purple
	EpicColor     = lipgloss.Color("#F59E0B") // Amber
	RareColor     = lipgloss.Color("#10B981") // Green
	BorderColor   = lipgloss.Color("#374151")
	TextColor     = lipgloss.Color("#F9FAFB")
	TextMuted     = lipgloss.Color("#6B7280")
	TextSecondary = lipgloss.Color("#9CA3AF")
)

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondary)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	EpicStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(EpicColor)

	RareStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RareColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)
)

const panelWidth = 30
