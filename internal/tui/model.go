package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"flowplan/internal/models"
	"flowplan/internal/storage"
	"flowplan/internal/tui/components/eventlist"
	"flowplan/internal/tui/components/schedule"
	"flowplan/internal/tui/components/tasklist"
	"flowplan/internal/validation"
)

type SessionState int

const (
	StateSchedule SessionState = iota
	StateTasks
	StateEvents
	StateAddTask
	StateFeedback
	StateConfirmDelete
)

// tabCount covers the states reachable by tab cycling.
const tabCount = 3

type TaskFormModel struct {
	Title     string
	Category  string
	Estimate  string
	Urgent    bool
	Important bool
}

type FeedbackFormModel struct {
	Completed    bool
	Energy       int
	Difficulty   int
	Satisfaction int
	Notes        string
}

type Model struct {
	store         storage.Provider
	user          string
	state         SessionState
	keys          KeyMap
	help          help.Model
	scheduleModel schedule.Model
	taskList      tasklist.Model
	eventList     eventlist.Model

	form         *huh.Form
	taskForm     *TaskFormModel
	feedbackForm *FeedbackFormModel
	ratedEntry   models.ScheduleEntry

	taskToDeleteID  string
	eventToDeleteID string

	validationWarning string
	statusMessage     string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider, user string) Model {
	entries, _ := store.GetSchedule()
	sm := schedule.New(0, 0)
	sm.SetEntries(entries)

	tasks, err := store.GetAllTasksIncludingDeleted()
	if err != nil {
		tasks = []models.Task{}
	}
	events, _ := store.GetAllEvents()

	m := Model{
		store:         store,
		user:          user,
		state:         StateSchedule,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		scheduleModel: sm,
		taskList:      tasklist.New(tasks, 0, 0),
		eventList:     eventlist.New(events, 0, 0),
	}

	m.updateValidationStatus()

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateSchedule:
		keys = append(keys, m.keys.Generate, m.keys.Feedback)
	case StateTasks:
		keys = append(keys, m.keys.Add, m.keys.Delete, m.keys.Restore)
	case StateEvents:
		keys = append(keys, m.keys.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateSchedule:
		actions = []key.Binding{m.keys.Generate, m.keys.Feedback}
	case StateTasks:
		actions = []key.Binding{m.keys.Add, m.keys.Delete, m.keys.Restore}
	case StateEvents:
		actions = []key.Binding{m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) updateValidationStatus() {
	tasks, err := m.store.GetAllTasks()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}
	events, err := m.store.GetAllEvents()
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}

	v := validation.New()
	conflicts := append(
		v.ValidateTasks(tasks).Conflicts,
		v.ValidateEvents(events).Conflicts...)

	if len(conflicts) > 0 {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(conflicts))
	} else {
		m.validationWarning = ""
	}
}

func newTaskForm(fm *TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Category").
				Value(&fm.Category),
			huh.NewInput().
				Title("Estimate (minutes)").
				Value(&fm.Estimate),
			huh.NewConfirm().
				Title("Urgent?").
				Value(&fm.Urgent),
			huh.NewConfirm().
				Title("Important?").
				Value(&fm.Important),
		),
	)
}

func ratingOptions() []huh.Option[int] {
	return []huh.Option[int]{
		huh.NewOption("1", 1),
		huh.NewOption("2", 2),
		huh.NewOption("3", 3),
		huh.NewOption("4", 4),
		huh.NewOption("5", 5),
	}
}

func newFeedbackForm(fm *FeedbackFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Did you complete %q?", title)).
				Value(&fm.Completed),
			huh.NewSelect[int]().
				Title("Energy level").
				Options(ratingOptions()...).
				Value(&fm.Energy),
			huh.NewSelect[int]().
				Title("Difficulty").
				Options(ratingOptions()...).
				Value(&fm.Difficulty),
			huh.NewSelect[int]().
				Title("Satisfaction").
				Options(ratingOptions()...).
				Value(&fm.Satisfaction),
			huh.NewInput().
				Title("Notes").
				Value(&fm.Notes),
		),
	)
}
