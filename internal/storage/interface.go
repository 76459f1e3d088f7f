package storage

import "flowplan/internal/models"

// Provider is the persistence contract. Two implementations exist: a
// SQLite store (default) and a JSON file store selected by a .json
// config path.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Preferences
	GetPreferences() (models.Preferences, error)
	SavePreferences(models.Preferences) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	GetAllTasksIncludingDeleted() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	RestoreTask(id string) error

	// Fixed events
	AddEvent(models.FixedEvent) error
	GetAllEvents() ([]models.FixedEvent, error)
	DeleteEvent(id string) error

	// Latest generated schedule (replaced wholesale on save)
	SaveSchedule([]models.ScheduleEntry) error
	GetSchedule() ([]models.ScheduleEntry, error)

	// Feedback, keyed by user then task id. Saving under an existing
	// task id overwrites the stored record.
	SaveFeedback(userID string, fb models.TaskFeedback) error
	GetFeedback(userID string) (map[string]models.TaskFeedback, error)

	// Utils
	GetConfigPath() string
}
