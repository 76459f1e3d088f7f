package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"flowplan/internal/models"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

var schema = []string{
	`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS preferred_times (
		category TEXT PRIMARY KEY,
		clock TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		estimated_minutes INTEGER NOT NULL,
		urgent INTEGER NOT NULL DEFAULT 0,
		important INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		deleted_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		deleted_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_entries (
		position INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT '',
		slot_weight REAL
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		user_id TEXT NOT NULL,
		task_id TEXT NOT NULL,
		scheduled_start TEXT NOT NULL,
		scheduled_end TEXT NOT NULL,
		actual_start TEXT,
		actual_end TEXT,
		completed INTEGER NOT NULL DEFAULT 0,
		energy_level INTEGER NOT NULL,
		difficulty INTEGER NOT NULL,
		satisfaction INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (user_id, task_id)
	)`,
}

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Initialize default preferences if not present
	if _, err := s.GetPreferences(); err != nil {
		if err := s.SavePreferences(models.DefaultPreferences()); err != nil {
			return fmt.Errorf("failed to save default preferences: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'flowplan init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	var version int
	row := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("schema version mismatch: store has %d, binary expects %d", version, schemaVersion)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetDB exposes the underlying connection for health checks.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) migrate() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetPreferences() (models.Preferences, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Preferences{}, err
	}
	defer rows.Close()

	prefs := models.Preferences{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Preferences{}, err
		}
		switch key {
		case "work_day_start":
			prefs.WorkDayStart = value
		case "work_day_end":
			prefs.WorkDayEnd = value
		case "break_duration":
			if prefs.BreakDuration, err = strconv.Atoi(value); err != nil {
				return models.Preferences{}, fmt.Errorf("parsing break_duration: %w", err)
			}
		case "min_work_block":
			if prefs.MinWorkBlock, err = strconv.Atoi(value); err != nil {
				return models.Preferences{}, fmt.Errorf("parsing min_work_block: %w", err)
			}
		}
		count++
	}

	if count == 0 {
		return models.Preferences{}, fmt.Errorf("preferences not found")
	}

	preferred, err := s.db.Query("SELECT category, clock FROM preferred_times")
	if err != nil {
		return models.Preferences{}, err
	}
	defer preferred.Close()

	for preferred.Next() {
		var category, clock string
		if err := preferred.Scan(&category, &clock); err != nil {
			return models.Preferences{}, err
		}
		if prefs.PreferredTimes == nil {
			prefs.PreferredTimes = make(map[string]string)
		}
		prefs.PreferredTimes[category] = clock
	}

	return prefs, nil
}

func (s *SQLiteStore) SavePreferences(prefs models.Preferences) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("work_day_start", prefs.WorkDayStart); err != nil {
		return err
	}
	if _, err := stmt.Exec("work_day_end", prefs.WorkDayEnd); err != nil {
		return err
	}
	if _, err := stmt.Exec("break_duration", strconv.Itoa(prefs.BreakDuration)); err != nil {
		return err
	}
	if _, err := stmt.Exec("min_work_block", strconv.Itoa(prefs.MinWorkBlock)); err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM preferred_times"); err != nil {
		return err
	}
	for category, clock := range prefs.PreferredTimes {
		if _, err := tx.Exec("INSERT INTO preferred_times (category, clock) VALUES (?, ?)", category, clock); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddTask(task models.Task) error {
	deletedAt := nullableTime(task.DeletedAt)
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO tasks (id, title, category, estimated_minutes, urgent, important, created_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Category, task.EstimatedMinutes,
		task.Urgent, task.Important, task.CreatedAt.UTC().Format(time.RFC3339), deletedAt,
	)
	return err
}

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT id, title, category, estimated_minutes, urgent, important, created_at, deleted_at
		FROM tasks WHERE id = ? AND deleted_at IS NULL`, id)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return models.Task{}, fmt.Errorf("task not found: %s", id)
	}
	return task, err
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, category, estimated_minutes, urgent, important, created_at, deleted_at
		FROM tasks WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) GetAllTasksIncludingDeleted() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, category, estimated_minutes, urgent, important, created_at, deleted_at
		FROM tasks ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	res, err := s.db.Exec(`
		UPDATE tasks SET title = ?, category = ?, estimated_minutes = ?, urgent = ?, important = ?
		WHERE id = ?`,
		task.Title, task.Category, task.EstimatedMinutes, task.Urgent, task.Important, task.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task not found: %s", task.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteTask(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec("UPDATE tasks SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) RestoreTask(id string) error {
	res, err := s.db.Exec("UPDATE tasks SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("cannot restore a task that is not deleted: %s", id)
	}
	return nil
}

func (s *SQLiteStore) AddEvent(event models.FixedEvent) error {
	deletedAt := nullableTime(event.DeletedAt)
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO events (id, title, category, start_time, end_time, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.Category,
		event.StartTime.Format(time.RFC3339), event.EndTime.Format(time.RFC3339), deletedAt,
	)
	return err
}

func (s *SQLiteStore) GetAllEvents() ([]models.FixedEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, title, category, start_time, end_time
		FROM events WHERE deleted_at IS NULL ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.FixedEvent
	for rows.Next() {
		var e models.FixedEvent
		var start, end string
		if err := rows.Scan(&e.ID, &e.Title, &e.Category, &start, &end); err != nil {
			return nil, err
		}
		if e.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
			return nil, fmt.Errorf("event %s has malformed start_time: %w", e.ID, err)
		}
		if e.EndTime, err = time.Parse(time.RFC3339, end); err != nil {
			return nil, fmt.Errorf("event %s has malformed end_time: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) DeleteEvent(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec("UPDATE events SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) SaveSchedule(entries []models.ScheduleEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Replace wholesale; the stored schedule is always the latest run.
	if _, err := tx.Exec("DELETE FROM schedule_entries"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO schedule_entries (position, title, category, start_time, end_time, priority, slot_weight)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		var weight any
		if e.SlotWeight != nil {
			weight = *e.SlotWeight
		}
		if _, err := stmt.Exec(i, e.Title, e.Category,
			e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339),
			string(e.Priority), weight); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSchedule() ([]models.ScheduleEntry, error) {
	rows, err := s.db.Query(`
		SELECT title, category, start_time, end_time, priority, slot_weight
		FROM schedule_entries ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ScheduleEntry
	for rows.Next() {
		var e models.ScheduleEntry
		var start, end, priority string
		var weight sql.NullFloat64
		if err := rows.Scan(&e.Title, &e.Category, &start, &end, &priority, &weight); err != nil {
			return nil, err
		}
		if e.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
			return nil, fmt.Errorf("schedule entry %q has malformed start_time: %w", e.Title, err)
		}
		if e.EndTime, err = time.Parse(time.RFC3339, end); err != nil {
			return nil, fmt.Errorf("schedule entry %q has malformed end_time: %w", e.Title, err)
		}
		e.Priority = models.Priority(priority)
		if weight.Valid {
			w := weight.Float64
			e.SlotWeight = &w
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) SaveFeedback(userID string, fb models.TaskFeedback) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO feedback
		(user_id, task_id, scheduled_start, scheduled_end, actual_start, actual_end,
		 completed, energy_level, difficulty, satisfaction, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, fb.TaskID,
		fb.ScheduledStart.Format(time.RFC3339), fb.ScheduledEnd.Format(time.RFC3339),
		nullableTime(fb.ActualStart), nullableTime(fb.ActualEnd),
		fb.Completed, fb.EnergyLevel, fb.Difficulty, fb.Satisfaction, fb.Notes,
	)
	return err
}

func (s *SQLiteStore) GetFeedback(userID string) (map[string]models.TaskFeedback, error) {
	rows, err := s.db.Query(`
		SELECT task_id, scheduled_start, scheduled_end, actual_start, actual_end,
		       completed, energy_level, difficulty, satisfaction, notes
		FROM feedback WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]models.TaskFeedback)
	for rows.Next() {
		var fb models.TaskFeedback
		var start, end string
		var actualStart, actualEnd sql.NullString
		if err := rows.Scan(&fb.TaskID, &start, &end, &actualStart, &actualEnd,
			&fb.Completed, &fb.EnergyLevel, &fb.Difficulty, &fb.Satisfaction, &fb.Notes); err != nil {
			return nil, err
		}
		if fb.ScheduledStart, err = time.Parse(time.RFC3339, start); err != nil {
			return nil, fmt.Errorf("feedback %s has malformed scheduled_start: %w", fb.TaskID, err)
		}
		if fb.ScheduledEnd, err = time.Parse(time.RFC3339, end); err != nil {
			return nil, fmt.Errorf("feedback %s has malformed scheduled_end: %w", fb.TaskID, err)
		}
		if fb.ActualStart, err = parseNullableTime(actualStart); err != nil {
			return nil, fmt.Errorf("feedback %s has malformed actual_start: %w", fb.TaskID, err)
		}
		if fb.ActualEnd, err = parseNullableTime(actualEnd); err != nil {
			return nil, fmt.Errorf("feedback %s has malformed actual_end: %w", fb.TaskID, err)
		}
		out[fb.TaskID] = fb
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&t.ID, &t.Title, &t.Category, &t.EstimatedMinutes,
		&t.Urgent, &t.Important, &createdAt, &deletedAt); err != nil {
		return models.Task{}, err
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("task %s has malformed created_at: %w", t.ID, err)
	}
	t.CreatedAt = created

	t.DeletedAt, err = parseNullableTime(deletedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("task %s has malformed deleted_at: %w", t.ID, err)
	}

	return t, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
