package scheduler

import (
	"testing"
	"time"

	"flowplan/internal/feedback"
	"flowplan/internal/interval"
	"flowplan/internal/models"
)

func fixedEvent(title string, start, end time.Time) models.FixedEvent {
	return models.FixedEvent{Title: title, StartTime: start, EndTime: end}
}

func TestBuildSchedule_EmptyTasks(t *testing.T) {
	events := []models.FixedEvent{
		fixedEvent("Exam", at(18, 10, 0), at(18, 12, 0)),
	}

	schedule, err := New().BuildSchedule(nil, events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}
	if len(schedule) != 0 {
		t.Errorf("Empty tasks must yield an empty schedule, got %v", schedule)
	}
}

func TestBuildSchedule_EmptyEvents(t *testing.T) {
	tasks := []models.Task{{Title: "Orphan", EstimatedMinutes: 60}}

	schedule, err := New().BuildSchedule(tasks, nil, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}
	if len(schedule) != 0 {
		t.Errorf("No anchor events means no slots and an empty schedule, got %v", schedule)
	}
}

func TestBuildSchedule_EndToEnd(t *testing.T) {
	events := []models.FixedEvent{
		fixedEvent("Math Exam", at(18, 10, 0), at(18, 12, 0)),
	}
	tasks := []models.Task{
		{Title: "Math Review", Category: "study", EstimatedMinutes: 120, Urgent: true, Important: true},
		{Title: "Physics Problems", Category: "study", EstimatedMinutes: 90, Important: true},
	}

	schedule, err := New().BuildSchedule(tasks, events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}

	var work []models.ScheduleEntry
	for _, e := range schedule {
		if !e.IsBreak() {
			work = append(work, e)
		}
	}
	if len(work) != 2 {
		t.Fatalf("Expected both tasks placed, got %v", schedule)
	}

	// Sorted by start time
	for i := 1; i < len(schedule); i++ {
		if schedule[i].StartTime.Before(schedule[i-1].StartTime) {
			t.Error("Schedule must be sorted by start time")
		}
	}

	// Work entries never overlap each other or the fixed event
	for i, a := range work {
		for _, b := range work[i+1:] {
			if interval.Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
				t.Errorf("Entries %q and %q overlap", a.Title, b.Title)
			}
		}
		if interval.Overlaps(a.StartTime, a.EndTime, events[0].StartTime, events[0].EndTime) {
			t.Errorf("Entry %q overlaps the fixed event", a.Title)
		}
	}

	// The urgent+important task is labeled high
	for _, e := range work {
		if e.Title == "Math Review" && e.Priority != models.PriorityHigh {
			t.Errorf("Math Review priority = %q, want high", e.Priority)
		}
	}
}

func TestBuildSchedule_Deterministic(t *testing.T) {
	events := []models.FixedEvent{
		fixedEvent("Standup", at(18, 9, 30), at(18, 10, 0)),
		fixedEvent("Lunch", at(18, 12, 0), at(18, 13, 0)),
	}
	tasks := []models.Task{
		{Title: "A", EstimatedMinutes: 60},
		{Title: "B", EstimatedMinutes: 60},
		{Title: "C", EstimatedMinutes: 90, Important: true},
	}

	first, err := New().BuildSchedule(tasks, events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}
	second, err := New().BuildSchedule(tasks, events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Title != second[i].Title || !first[i].StartTime.Equal(second[i].StartTime) {
			t.Errorf("Run mismatch at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestBuildSchedule_WithWeights(t *testing.T) {
	store := feedback.NewStore()
	store.Record(models.TaskFeedback{
		TaskID:         "past",
		ScheduledStart: at(13, 9, 0), // a Monday
		ScheduledEnd:   at(13, 10, 0),
		Completed:      true,
		EnergyLevel:    4,
		Difficulty:     2,
		Satisfaction:   4,
	})

	events := []models.FixedEvent{
		fixedEvent("Exam", at(20, 12, 0), at(20, 13, 0)), // also a Monday
	}
	tasks := []models.Task{{Title: "Review", EstimatedMinutes: 60}}

	schedule, err := NewWithWeights(store).BuildSchedule(tasks, events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}
	if len(schedule) == 0 {
		t.Fatal("Expected a non-empty schedule")
	}
	for _, e := range schedule {
		if e.SlotWeight == nil {
			t.Errorf("Entry %q missing slot weight annotation", e.Title)
		}
	}
}

func TestBuildSchedule_UnschedulableTaskDropped(t *testing.T) {
	// Day window fits 8 hours; a 10-hour task can never be placed but the
	// run still succeeds and schedules the rest.
	events := []models.FixedEvent{
		fixedEvent("Anchor", at(18, 10, 0), at(18, 10, 30)),
	}
	tasks := []models.Task{
		{Title: "Impossible", EstimatedMinutes: 600},
		{Title: "Possible", EstimatedMinutes: 60},
	}

	schedule, err := New().BuildSchedule(tasks, events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}

	for _, e := range schedule {
		if e.Title == "Impossible" {
			t.Error("Unschedulable task must be dropped from output")
		}
	}
	found := false
	for _, e := range schedule {
		if e.Title == "Possible" {
			found = true
		}
	}
	if !found {
		t.Error("Schedulable task missing from output")
	}
}
