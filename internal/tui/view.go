package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateSchedule:
		content = docStyle.Render(m.scheduleModel.View())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateEvents:
		content = docStyle.Render(m.eventList.View())
	case StateAddTask, StateFeedback:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs(), content}
	if m.validationWarning != "" {
		sections = append(sections, warningStyle.Render(m.validationWarning))
	}
	if m.statusMessage != "" {
		sections = append(sections, m.statusMessage)
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Schedule", "Tasks", "Events"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirmDelete() string {
	subject := "this event"
	if m.taskToDeleteID != "" {
		subject = "this task"
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete "+subject+"?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
