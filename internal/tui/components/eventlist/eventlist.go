package eventlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"flowplan/internal/models"
)

type DeleteEventMsg struct {
	ID string
}

type Item struct {
	Event models.FixedEvent
}

func (i Item) Title() string { return i.Event.Title }

func (i Item) Description() string {
	return fmt.Sprintf("%s - %s | %s",
		i.Event.StartTime.Format("Mon Jan 2 15:04"),
		i.Event.EndTime.Format("15:04"),
		i.Event.Category)
}

func (i Item) FilterValue() string { return i.Event.Title }

type KeyMap struct {
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(events []models.FixedEvent, width, height int) Model {
	items := make([]list.Item, len(events))
	for i, e := range events {
		items[i] = Item{Event: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Events"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetEvents(events []models.FixedEvent) {
	items := make([]list.Item, len(events))
	for i, e := range events {
		items[i] = Item{Event: e}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Delete) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteEventMsg{ID: i.Event.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No fixed events yet.\n  Add one with 'flowplan event add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
