package schedule

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"flowplan/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	breakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236"))
)

type Model struct {
	viewport viewport.Model
	Entries  []models.ScheduleEntry
	cursor   int
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.Entries) == 0 {
		return "No schedule yet. Press 'g' to generate."
	}
	return m.viewport.View()
}

// Selected returns the entry under the cursor, skipping to the next
// task entry if the cursor sits on a break.
func (m Model) Selected() (models.ScheduleEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.Entries) {
		return models.ScheduleEntry{}, false
	}
	return m.Entries[m.cursor], !m.Entries[m.cursor].IsBreak()
}

func (m *Model) MoveCursor(delta int) {
	if len(m.Entries) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.Entries) {
		m.cursor = len(m.Entries) - 1
	}
	m.Render()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetEntries(entries []models.ScheduleEntry) {
	m.Entries = entries
	if m.cursor >= len(entries) {
		m.cursor = 0
	}
	m.Render()
}

func (m *Model) Render() {
	if len(m.Entries) == 0 {
		m.viewport.SetContent("No schedule loaded.")
		return
	}

	var b strings.Builder
	lastDay := ""
	for i, entry := range m.Entries {
		day := entry.StartTime.Format("Monday, Jan 2")
		if day != lastDay {
			if lastDay != "" {
				b.WriteString("\n")
			}
			b.WriteString(titleStyle.Render(day) + "\n")
			lastDay = day
		}

		window := fmt.Sprintf("%s - %s",
			entry.StartTime.Format("15:04"), entry.EndTime.Format("15:04"))

		var line string
		if entry.IsBreak() {
			line = fmt.Sprintf("%s %s",
				timeStyle.Render(window), breakStyle.Render("~ Break"))
		} else {
			meta := entry.Category
			if entry.Priority != "" {
				meta += " | " + string(entry.Priority)
			}
			if entry.SlotWeight != nil {
				meta += fmt.Sprintf(" | w=%.2f", *entry.SlotWeight)
			}
			line = fmt.Sprintf("%s %s %s",
				timeStyle.Render(window),
				titleStyle.Render(entry.Title),
				metaStyle.Render(meta))
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	m.viewport.SetContent(b.String())
}
