package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"flowplan/internal/feedback"
	"flowplan/internal/models"
	"flowplan/internal/scheduler"
	"flowplan/internal/tui/components/eventlist"
	"flowplan/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 6
		if contentHeight < 1 {
			contentHeight = 1
		}
		m.scheduleModel.SetSize(msg.Width-4, contentHeight)
		m.taskList.SetSize(msg.Width-4, contentHeight)
		m.eventList.SetSize(msg.Width-4, contentHeight)

	case tasklist.AddTaskMsg:
		m.taskForm = &TaskFormModel{Category: "work", Estimate: "60"}
		m.form = newTaskForm(m.taskForm)
		m.state = StateAddTask
		return m, m.form.Init()

	case tasklist.DeleteTaskMsg:
		m.taskToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case tasklist.RestoreTaskMsg:
		if err := m.store.RestoreTask(msg.ID); err != nil {
			m.statusMessage = fmt.Sprintf("restore failed: %v", err)
		} else {
			m.statusMessage = "Task restored."
			m.refreshTasks()
		}
		return m, nil

	case eventlist.DeleteEventMsg:
		m.eventToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateAddTask, StateFeedback:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.statusMessage = ""
			return m, nil
		case key.Matches(keyMsg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.statusMessage = ""
			return m, nil
		case key.Matches(keyMsg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		switch m.state {
		case StateSchedule:
			switch {
			case key.Matches(keyMsg, m.keys.Generate):
				m.generateSchedule()
				return m, nil
			case key.Matches(keyMsg, m.keys.Feedback):
				if entry, ok := m.scheduleModel.Selected(); ok {
					m.ratedEntry = entry
					m.feedbackForm = &FeedbackFormModel{Energy: 3, Difficulty: 3, Satisfaction: 3}
					m.form = newFeedbackForm(m.feedbackForm, entry.Title)
					m.state = StateFeedback
					return m, m.form.Init()
				}
				m.statusMessage = "Select a task slot to rate, not a break."
				return m, nil
			case key.Matches(keyMsg, m.keys.Up):
				m.scheduleModel.MoveCursor(-1)
				return m, nil
			case key.Matches(keyMsg, m.keys.Down):
				m.scheduleModel.MoveCursor(1)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateSchedule:
		m.scheduleModel, cmd = m.scheduleModel.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case StateEvents:
		m.eventList, cmd = m.eventList.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	returnState := StateTasks
	if m.state == StateFeedback {
		returnState = StateSchedule
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.form = nil
		m.state = returnState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.state {
		case StateAddTask:
			m.submitTaskForm()
		case StateFeedback:
			m.submitFeedbackForm()
		}
		m.form = nil
		m.state = returnState
		return m, nil
	}
	return m, cmd
}

func (m *Model) submitTaskForm() {
	estimate, err := strconv.Atoi(m.taskForm.Estimate)
	if err != nil || estimate < 0 {
		estimate = models.DefaultEstimatedMinutes
	}
	task := models.Task{
		ID:               uuid.New().String(),
		Title:            m.taskForm.Title,
		Category:         m.taskForm.Category,
		EstimatedMinutes: estimate,
		Urgent:           m.taskForm.Urgent,
		Important:        m.taskForm.Important,
		CreatedAt:        time.Now(),
	}
	if err := m.store.AddTask(task); err != nil {
		m.statusMessage = fmt.Sprintf("add failed: %v", err)
	} else {
		m.statusMessage = fmt.Sprintf("Added %q.", task.Title)
		m.refreshTasks()
	}
	m.taskForm = nil
}

func (m *Model) submitFeedbackForm() {
	fb := models.TaskFeedback{
		ScheduledStart: m.ratedEntry.StartTime,
		ScheduledEnd:   m.ratedEntry.EndTime,
		Completed:      m.feedbackForm.Completed,
		EnergyLevel:    m.feedbackForm.Energy,
		Difficulty:     m.feedbackForm.Difficulty,
		Satisfaction:   m.feedbackForm.Satisfaction,
		Notes:          m.feedbackForm.Notes,
	}

	tasks, err := m.store.GetAllTasks()
	if err == nil {
		for _, t := range tasks {
			if t.Title == m.ratedEntry.Title {
				fb.TaskID = t.ID
				break
			}
		}
	}
	if fb.TaskID == "" {
		m.statusMessage = fmt.Sprintf("no task found for %q", m.ratedEntry.Title)
		m.feedbackForm = nil
		return
	}

	if err := m.store.SaveFeedback(m.user, fb); err != nil {
		m.statusMessage = fmt.Sprintf("feedback failed: %v", err)
	} else {
		m.statusMessage = fmt.Sprintf("Rated %q.", m.ratedEntry.Title)
	}
	m.feedbackForm = nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		if m.taskToDeleteID != "" {
			if err := m.store.DeleteTask(m.taskToDeleteID); err != nil {
				m.statusMessage = fmt.Sprintf("delete failed: %v", err)
			} else {
				m.statusMessage = "Task deleted."
				m.refreshTasks()
			}
			m.taskToDeleteID = ""
			m.state = StateTasks
		} else if m.eventToDeleteID != "" {
			if err := m.store.DeleteEvent(m.eventToDeleteID); err != nil {
				m.statusMessage = fmt.Sprintf("delete failed: %v", err)
			} else {
				m.statusMessage = "Event deleted."
				m.refreshEvents()
			}
			m.eventToDeleteID = ""
			m.state = StateEvents
		}
		m.updateValidationStatus()
	case "n", "esc":
		if m.taskToDeleteID != "" {
			m.taskToDeleteID = ""
			m.state = StateTasks
		} else {
			m.eventToDeleteID = ""
			m.state = StateEvents
		}
	}
	return m, nil
}

func (m *Model) generateSchedule() {
	prefs, err := m.store.GetPreferences()
	if err != nil {
		m.statusMessage = fmt.Sprintf("generate failed: %v", err)
		return
	}
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		m.statusMessage = fmt.Sprintf("generate failed: %v", err)
		return
	}
	events, err := m.store.GetAllEvents()
	if err != nil {
		m.statusMessage = fmt.Sprintf("generate failed: %v", err)
		return
	}

	sched := scheduler.New()
	if snapshot, err := m.store.GetFeedback(m.user); err == nil && len(snapshot) > 0 {
		sched = scheduler.NewWithWeights(feedback.FromSnapshot(snapshot))
	}

	entries, err := sched.BuildSchedule(tasks, events, prefs)
	if err != nil {
		m.statusMessage = fmt.Sprintf("generate failed: %v", err)
		return
	}
	if err := m.store.SaveSchedule(entries); err != nil {
		m.statusMessage = fmt.Sprintf("save failed: %v", err)
		return
	}

	m.scheduleModel.SetEntries(entries)
	m.statusMessage = fmt.Sprintf("Generated %d entries.", len(entries))
	m.updateValidationStatus()
}

func (m *Model) refreshTasks() {
	tasks, err := m.store.GetAllTasksIncludingDeleted()
	if err != nil {
		return
	}
	m.taskList.SetTasks(tasks)
	m.updateValidationStatus()
}

func (m *Model) refreshEvents() {
	events, err := m.store.GetAllEvents()
	if err != nil {
		return
	}
	m.eventList.SetEvents(events)
	m.updateValidationStatus()
}
