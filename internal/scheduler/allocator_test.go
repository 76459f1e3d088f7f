package scheduler

import (
	"testing"
	"time"

	"flowplan/internal/models"
	"flowplan/internal/prioritize"
)

func at(d, hour, min int) time.Time {
	return time.Date(2025, 10, d, hour, min, 0, 0, time.UTC)
}

func slot(start, end time.Time) models.TimeSlot {
	return models.NewTimeSlot(start, end)
}

func ranked(tasks ...models.Task) []prioritize.RankedTask {
	return prioritize.Rank(tasks)
}

func TestAllocate_PlacesTaskAndSplitsResidual(t *testing.T) {
	// A 120-minute urgent+important task in a 5-hour slot starting 12:00
	// yields a high-priority 12:00-14:00 entry and a 14:00-17:00 residual.
	tasks := ranked(models.Task{
		Title:            "Math Review",
		Category:         "study",
		EstimatedMinutes: 120,
		Urgent:           true,
		Important:        true,
	})
	pool := []models.TimeSlot{slot(at(18, 12, 0), at(18, 17, 0))}

	entries, rest := allocate(tasks, pool, models.DefaultPreferences())

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if !e.StartTime.Equal(at(18, 12, 0)) || !e.EndTime.Equal(at(18, 14, 0)) {
		t.Errorf("Entry = %v-%v, want 12:00-14:00", e.StartTime, e.EndTime)
	}
	if e.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want high", e.Priority)
	}

	if len(rest) != 1 {
		t.Fatalf("Expected 1 residual slot, got %d: %v", len(rest), rest)
	}
	if !rest[0].StartTime.Equal(at(18, 14, 0)) || !rest[0].EndTime.Equal(at(18, 17, 0)) {
		t.Errorf("Residual = %v-%v, want 14:00-17:00", rest[0].StartTime, rest[0].EndTime)
	}
}

func TestAllocate_DiscardsSmallResidual(t *testing.T) {
	// 60-minute task in a 75-minute slot leaves 15 minutes, too small to keep.
	tasks := ranked(models.Task{Title: "Email", EstimatedMinutes: 60})
	pool := []models.TimeSlot{slot(at(18, 9, 0), at(18, 10, 15))}

	_, rest := allocate(tasks, pool, models.DefaultPreferences())

	if len(rest) != 0 {
		t.Errorf("Expected residual under 30 minutes to be dropped, got %v", rest)
	}
}

func TestAllocate_NeverUsesTooShortSlot(t *testing.T) {
	tasks := ranked(models.Task{Title: "Deep Work", EstimatedMinutes: 180})
	pool := []models.TimeSlot{
		slot(at(18, 9, 0), at(18, 10, 0)),
		slot(at(18, 13, 0), at(18, 14, 30)),
	}

	entries, rest := allocate(tasks, pool, models.DefaultPreferences())

	if len(entries) != 0 {
		t.Errorf("Task must be dropped when no slot fits, got %v", entries)
	}
	if len(rest) != 2 {
		t.Errorf("Pool must be untouched when nothing is placed, got %v", rest)
	}
}

func TestAllocate_PrefersClosestDuration(t *testing.T) {
	tasks := ranked(models.Task{Title: "Essay", EstimatedMinutes: 60})
	pool := []models.TimeSlot{
		slot(at(18, 9, 0), at(18, 13, 0)), // 4h, score 3
		slot(at(18, 14, 0), at(18, 15, 0)), // 1h, score 0
	}

	entries, _ := allocate(tasks, pool, models.DefaultPreferences())

	if len(entries) != 1 || !entries[0].StartTime.Equal(at(18, 14, 0)) {
		t.Errorf("Expected the tight 14:00 slot, got %v", entries)
	}
}

func TestAllocate_PreferredHourPenalty(t *testing.T) {
	// Both slots fit equally well; the 14:00 preferred study time pushes
	// the task to the afternoon slot despite the morning one coming first.
	prefs := models.DefaultPreferences()
	prefs.PreferredTimes = map[string]string{"study": "14:00"}

	tasks := ranked(models.Task{Title: "Physics", Category: "study", EstimatedMinutes: 60})
	pool := []models.TimeSlot{
		slot(at(18, 9, 0), at(18, 10, 0)),
		slot(at(18, 14, 0), at(18, 15, 0)),
	}

	entries, _ := allocate(tasks, pool, prefs)

	if len(entries) != 1 || !entries[0].StartTime.Equal(at(18, 14, 0)) {
		t.Errorf("Expected preferred 14:00 slot, got %v", entries)
	}
}

func TestAllocate_TieBreakEarlierStart(t *testing.T) {
	// Identical scores: the earlier slot must win regardless of pool order.
	tasks := ranked(models.Task{Title: "Reading", EstimatedMinutes: 60})
	pool := []models.TimeSlot{
		slot(at(18, 15, 0), at(18, 16, 0)),
		slot(at(18, 9, 0), at(18, 10, 0)),
	}

	entries, _ := allocate(tasks, pool, models.DefaultPreferences())

	if len(entries) != 1 || !entries[0].StartTime.Equal(at(18, 9, 0)) {
		t.Errorf("Expected earlier 09:00 slot on tie, got %v", entries)
	}
}

func TestAllocate_ResidualHostsLaterTask(t *testing.T) {
	// The second task lands in the residual left by the first.
	tasks := ranked(
		models.Task{Title: "First", EstimatedMinutes: 60, Urgent: true, Important: true},
		models.Task{Title: "Second", EstimatedMinutes: 120},
	)
	pool := []models.TimeSlot{slot(at(18, 9, 0), at(18, 12, 0))}

	entries, rest := allocate(tasks, pool, models.DefaultPreferences())

	if len(entries) != 2 {
		t.Fatalf("Expected both tasks placed, got %v", entries)
	}
	if !entries[1].StartTime.Equal(at(18, 10, 0)) || !entries[1].EndTime.Equal(at(18, 12, 0)) {
		t.Errorf("Second entry = %v-%v, want 10:00-12:00", entries[1].StartTime, entries[1].EndTime)
	}
	if len(rest) != 0 {
		t.Errorf("Expected empty pool, got %v", rest)
	}
}
