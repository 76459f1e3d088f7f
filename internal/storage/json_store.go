package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flowplan/internal/models"
)

// Store is the on-disk JSON layout. Feedback mirrors the interchange
// snapshot format: user id -> task id -> feedback record.
type Store struct {
	Version     int                                       `json:"version"`
	Preferences models.Preferences                        `json:"preferences"`
	Tasks       map[string]models.Task                    `json:"tasks"`
	Events      map[string]models.FixedEvent              `json:"events"`
	Schedule    []models.ScheduleEntry                    `json:"schedule,omitempty"`
	Feedback    map[string]map[string]models.TaskFeedback `json:"feedback"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:     1,
		Preferences: models.DefaultPreferences(),
		Tasks:       make(map[string]models.Task),
		Events:      make(map[string]models.FixedEvent),
		Feedback:    make(map[string]map[string]models.TaskFeedback),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'flowplan init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Tasks == nil {
		s.store.Tasks = make(map[string]models.Task)
	}
	if s.store.Events == nil {
		s.store.Events = make(map[string]models.FixedEvent)
	}
	if s.store.Feedback == nil {
		s.store.Feedback = make(map[string]map[string]models.TaskFeedback)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetPreferences() (models.Preferences, error) {
	if s.store == nil {
		return models.Preferences{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Preferences, nil
}

func (s *JSONStore) SavePreferences(prefs models.Preferences) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Preferences = prefs
	return s.save()
}

func (s *JSONStore) AddTask(task models.Task) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) GetTask(id string) (models.Task, error) {
	if s.store == nil {
		return models.Task{}, fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok || task.DeletedAt != nil {
		return models.Task{}, fmt.Errorf("task not found: %s", id)
	}

	return task, nil
}

func (s *JSONStore) GetAllTasks() ([]models.Task, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	tasks := make([]models.Task, 0, len(s.store.Tasks))
	for _, task := range s.store.Tasks {
		if task.DeletedAt == nil {
			tasks = append(tasks, task)
		}
	}

	return tasks, nil
}

func (s *JSONStore) GetAllTasksIncludingDeleted() ([]models.Task, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	tasks := make([]models.Task, 0, len(s.store.Tasks))
	for _, task := range s.store.Tasks {
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (s *JSONStore) UpdateTask(task models.Task) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Tasks[task.ID]; !ok {
		return fmt.Errorf("task not found: %s", task.ID)
	}

	s.store.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) DeleteTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}

	// Soft delete: set deleted_at timestamp
	now := time.Now().UTC()
	task.DeletedAt = &now
	s.store.Tasks[id] = task
	return s.save()
}

func (s *JSONStore) RestoreTask(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	task, ok := s.store.Tasks[id]
	if !ok {
		return fmt.Errorf("task not found: %s", id)
	}

	// Only allow restoring tasks that are currently soft-deleted
	if task.DeletedAt == nil {
		return fmt.Errorf("cannot restore a task that is not deleted: %s", id)
	}

	task.DeletedAt = nil
	s.store.Tasks[id] = task
	return s.save()
}

func (s *JSONStore) AddEvent(event models.FixedEvent) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Events[event.ID] = event
	return s.save()
}

func (s *JSONStore) GetAllEvents() ([]models.FixedEvent, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	events := make([]models.FixedEvent, 0, len(s.store.Events))
	for _, event := range s.store.Events {
		if event.DeletedAt == nil {
			events = append(events, event)
		}
	}

	return events, nil
}

func (s *JSONStore) DeleteEvent(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	event, ok := s.store.Events[id]
	if !ok {
		return fmt.Errorf("event not found: %s", id)
	}

	now := time.Now().UTC()
	event.DeletedAt = &now
	s.store.Events[id] = event
	return s.save()
}

func (s *JSONStore) SaveSchedule(entries []models.ScheduleEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Schedule = entries
	return s.save()
}

func (s *JSONStore) GetSchedule() ([]models.ScheduleEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.store.Schedule, nil
}

func (s *JSONStore) SaveFeedback(userID string, fb models.TaskFeedback) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if s.store.Feedback[userID] == nil {
		s.store.Feedback[userID] = make(map[string]models.TaskFeedback)
	}
	s.store.Feedback[userID][fb.TaskID] = fb
	return s.save()
}

func (s *JSONStore) GetFeedback(userID string) (map[string]models.TaskFeedback, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	out := make(map[string]models.TaskFeedback, len(s.store.Feedback[userID]))
	for taskID, fb := range s.store.Feedback[userID] {
		out[taskID] = fb
	}
	return out, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
