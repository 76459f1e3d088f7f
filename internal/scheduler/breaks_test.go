package scheduler

import (
	"testing"

	"flowplan/internal/models"
)

func entry(title string, start, end [2]int) models.ScheduleEntry {
	return models.ScheduleEntry{
		Title:     title,
		Category:  "work",
		StartTime: at(18, start[0], start[1]),
		EndTime:   at(18, end[0], end[1]),
	}
}

func TestInsertBreaks_GapGetsBreak(t *testing.T) {
	// Entries ending 10:00 and starting 11:00 (gap 60 min) with the
	// default minWorkBlock=45 / breakDuration=15 yield a 10:00-10:15 break.
	schedule := []models.ScheduleEntry{
		entry("First", [2]int{9, 0}, [2]int{10, 0}),
		entry("Second", [2]int{11, 0}, [2]int{12, 0}),
	}

	enhanced := insertBreaks(schedule, models.DefaultPreferences())

	if len(enhanced) != 3 {
		t.Fatalf("Expected 3 entries, got %d: %v", len(enhanced), enhanced)
	}
	br := enhanced[1]
	if !br.IsBreak() || br.Title != "Break" {
		t.Fatalf("Middle entry should be a break, got %+v", br)
	}
	if !br.StartTime.Equal(at(18, 10, 0)) || !br.EndTime.Equal(at(18, 10, 15)) {
		t.Errorf("Break = %v-%v, want 10:00-10:15", br.StartTime, br.EndTime)
	}
	if br.Priority != "" {
		t.Errorf("Breaks carry no priority, got %q", br.Priority)
	}
}

func TestInsertBreaks_ShortGapSkipped(t *testing.T) {
	// 30-minute gap is under minWorkBlock=45; no break.
	schedule := []models.ScheduleEntry{
		entry("First", [2]int{9, 0}, [2]int{10, 0}),
		entry("Second", [2]int{10, 30}, [2]int{11, 30}),
	}

	enhanced := insertBreaks(schedule, models.DefaultPreferences())

	if len(enhanced) != 2 {
		t.Errorf("Expected no break for a 30-minute gap, got %v", enhanced)
	}
}

func TestInsertBreaks_BreakMustEndStrictlyBeforeNext(t *testing.T) {
	// Gap of exactly the break duration: the break would end exactly at
	// the next start, which is not strictly before it, so none is added.
	prefs := models.DefaultPreferences()
	prefs.MinWorkBlock = 10
	prefs.BreakDuration = 15

	schedule := []models.ScheduleEntry{
		entry("First", [2]int{9, 0}, [2]int{10, 0}),
		entry("Second", [2]int{10, 15}, [2]int{11, 0}),
	}

	enhanced := insertBreaks(schedule, prefs)

	if len(enhanced) != 2 {
		t.Errorf("Expected no break when it cannot end before the next entry, got %v", enhanced)
	}
}

func TestInsertBreaks_NoLeadingOrTrailingBreaks(t *testing.T) {
	schedule := []models.ScheduleEntry{
		entry("Only", [2]int{9, 0}, [2]int{10, 0}),
	}

	enhanced := insertBreaks(schedule, models.DefaultPreferences())

	if len(enhanced) != 1 {
		t.Errorf("A single entry must produce no breaks, got %v", enhanced)
	}

	if got := insertBreaks(nil, models.DefaultPreferences()); len(got) != 0 {
		t.Errorf("Empty schedule must stay empty, got %v", got)
	}
}

func TestInsertBreaks_BreaksNeverOverlapWork(t *testing.T) {
	schedule := []models.ScheduleEntry{
		entry("A", [2]int{9, 0}, [2]int{10, 0}),
		entry("B", [2]int{11, 0}, [2]int{12, 0}),
		entry("C", [2]int{13, 0}, [2]int{14, 0}),
	}

	enhanced := insertBreaks(schedule, models.DefaultPreferences())

	for i := 1; i < len(enhanced); i++ {
		if enhanced[i].StartTime.Before(enhanced[i-1].EndTime) {
			t.Errorf("Entry %q starts before %q ends", enhanced[i].Title, enhanced[i-1].Title)
		}
	}
}
