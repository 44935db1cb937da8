package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luckfunc/gardenstock/internal/view"
)

var panelTitles = map[view.Region]string{
	view.GearList:  "Gear",
	view.SeedsList: "Seeds",
	view.EggsList:  "Eggs",
}

// Model is the dashboard's bubbletea model.
type Model struct {
	title  string
	target *Target
	lists  map[view.Region][]view.Entry
	texts  map[view.Region]string
	width  int
}

func NewModel(title string, target *Target) *Model {
	return &Model{
		title:  title,
		target: target,
		lists:  make(map[view.Region][]view.Entry),
		texts:  make(map[view.Region]string),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.target.waitForUpdate()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case listMsg:
		m.lists[msg.region] = msg.entries
		return m, m.target.waitForUpdate()
	case textMsg:
		m.texts[msg.region] = msg.text
		return m, m.target.waitForUpdate()
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(m.texts[view.LocalTime]))
	if cd := m.texts[view.Countdown]; cd != "" {
		b.WriteString(MutedStyle.Render("  🎄 " + cd))
	}
	b.WriteString("\n")

	weather := strings.TrimSpace(strings.Join([]string{
		m.texts[view.WeatherIcon],
		m.texts[view.WeatherDesc],
		m.texts[view.WeatherBonus],
	}, " "))
	b.WriteString(PanelStyle.Render(RowStyle.Render(weather)))
	b.WriteString("\n")

	panels := make([]string, 0, len(view.ListRegions))
	for _, region := range view.ListRegions {
		panels = append(panels, m.renderPanel(region))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	b.WriteString("\n")

	b.WriteString(MutedStyle.Render(m.texts[view.LastUpdated]))
	b.WriteString("\n")
	b.WriteString(HelpKeyStyle.Render("q") + MutedStyle.Render(" quit"))
	return b.String()
}

func (m *Model) renderPanel(region view.Region) string {
	lines := []string{HeaderStyle.Render(panelTitles[region])}
	for _, e := range m.lists[region] {
		lines = append(lines, entryStyle(e.Class).Render(e.Text))
	}
	return PanelStyle.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

func entryStyle(class string) lipgloss.Style {
	switch class {
	case view.ClassEpic:
		return EpicStyle
	case view.ClassRare:
		return RareStyle
	default:
		return RowStyle
	}
}

// Run shows the dashboard until the user quits or ctx is cancelled. The
// target is closed on return.
func Run(ctx context.Context, title string, target *Target) error {
	defer target.Close()
	p := tea.NewProgram(NewModel(title, target), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
