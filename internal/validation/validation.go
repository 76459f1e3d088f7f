// Package validation checks scheduling inputs before a run. Malformed
// time strings and impossible intervals indicate an upstream contract
// violation and fail fast rather than being partially recovered.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"flowplan/internal/interval"
	"flowplan/internal/models"
)

type ConflictType string

const (
	ConflictEventOverlap      ConflictType = "event_overlap"
	ConflictInvertedEvent     ConflictType = "inverted_event"
	ConflictDuplicateTaskName ConflictType = "duplicate_task_name"
	ConflictBadEstimate       ConflictType = "bad_estimate"
	ConflictBadWorkWindow     ConflictType = "bad_work_window"
)

type Conflict struct {
	Type    ConflictType
	Message string
}

type ValidationResult struct {
	Conflicts []Conflict
}

func (r ValidationResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ParseClock parses an HH:MM wall-clock string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format: %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// ValidateTasks flags duplicate titles and nonpositive estimates.
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	var result ValidationResult

	seen := make(map[string]bool)
	for _, task := range tasks {
		if task.DeletedAt != nil {
			continue
		}
		if seen[task.Title] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictDuplicateTaskName,
				Message: fmt.Sprintf("duplicate task title %q", task.Title),
			})
		}
		seen[task.Title] = true

		if task.EstimatedMinutes < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictBadEstimate,
				Message: fmt.Sprintf("task %q has negative estimate %d", task.Title, task.EstimatedMinutes),
			})
		}
	}

	return result
}

// ValidateEvents flags inverted intervals and overlapping fixed events.
// Overlaps are warnings only: the resolver tolerates them (the cursor
// never moves backward) but the user loses the double-booked time.
func (v *Validator) ValidateEvents(events []models.FixedEvent) ValidationResult {
	var result ValidationResult

	for _, e := range events {
		if !e.EndTime.After(e.StartTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictInvertedEvent,
				Message: fmt.Sprintf("event %q ends at or before it starts", e.Title),
			})
		}
	}

	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			a, b := events[i], events[j]
			if interval.Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:    ConflictEventOverlap,
					Message: fmt.Sprintf("events %q and %q overlap", a.Title, b.Title),
				})
			}
		}
	}

	return result
}

// ValidatePreferences checks the working window and preferred times parse
// and that the window has positive length.
func (v *Validator) ValidatePreferences(prefs models.Preferences) ValidationResult {
	var result ValidationResult

	sh, sm, err := ParseClock(prefs.WorkDayStart)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictBadWorkWindow,
			Message: fmt.Sprintf("workDayStart: %v", err),
		})
	}
	eh, em, err := ParseClock(prefs.WorkDayEnd)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictBadWorkWindow,
			Message: fmt.Sprintf("workDayEnd: %v", err),
		})
	} else if eh*60+em <= sh*60+sm {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictBadWorkWindow,
			Message: fmt.Sprintf("work day ends (%s) at or before it starts (%s)", prefs.WorkDayEnd, prefs.WorkDayStart),
		})
	}

	for category, clock := range prefs.PreferredTimes {
		if _, _, err := ParseClock(clock); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictBadWorkWindow,
				Message: fmt.Sprintf("preferred time for %q: %v", category, err),
			})
		}
	}

	return result
}

// ValidateFeedback checks the 1-5 rating scales and timestamp ordering.
func (v *Validator) ValidateFeedback(fb models.TaskFeedback) error {
	if fb.TaskID == "" {
		return fmt.Errorf("feedback requires a task id")
	}
	if !fb.ScheduledEnd.After(fb.ScheduledStart) {
		return fmt.Errorf("feedback for %q: scheduled_end must be after scheduled_start", fb.TaskID)
	}
	for name, val := range map[string]int{
		"energy_level": fb.EnergyLevel,
		"difficulty":   fb.Difficulty,
		"satisfaction": fb.Satisfaction,
	} {
		if val < 1 || val > 5 {
			return fmt.Errorf("feedback for %q: %s must be between 1 and 5, got %d", fb.TaskID, name, val)
		}
	}
	return nil
}
