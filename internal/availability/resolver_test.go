package availability

import (
	"testing"
	"time"

	"flowplan/internal/interval"
	"flowplan/internal/models"
)

func day(d, hour, min int) time.Time {
	return time.Date(2025, 10, d, hour, min, 0, 0, time.UTC)
}

func event(title string, start, end time.Time) models.FixedEvent {
	return models.FixedEvent{Title: title, StartTime: start, EndTime: end}
}

func TestResolve_NoEvents(t *testing.T) {
	slots, err := New().Resolve(nil, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("Expected no slots without anchor events, got %d", len(slots))
	}
}

func TestResolve_SingleEventSplitsDay(t *testing.T) {
	// One fixed event 10:00-12:00 with the default 09:00-17:00 window
	// yields [09:00,10:00) and [12:00,17:00).
	events := []models.FixedEvent{
		event("Math Exam", day(18, 10, 0), day(18, 12, 0)),
	}

	slots, err := New().Resolve(events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(slots) != 2 {
		t.Fatalf("Expected 2 slots, got %d: %v", len(slots), slots)
	}
	if !slots[0].StartTime.Equal(day(18, 9, 0)) || !slots[0].EndTime.Equal(day(18, 10, 0)) {
		t.Errorf("First slot = %v-%v, want 09:00-10:00", slots[0].StartTime, slots[0].EndTime)
	}
	if !slots[1].StartTime.Equal(day(18, 12, 0)) || !slots[1].EndTime.Equal(day(18, 17, 0)) {
		t.Errorf("Second slot = %v-%v, want 12:00-17:00", slots[1].StartTime, slots[1].EndTime)
	}
	if slots[1].DurationHours != 5 {
		t.Errorf("Second slot duration = %v, want 5", slots[1].DurationHours)
	}
}

func TestResolve_DropsShortGaps(t *testing.T) {
	// The 9:00-9:20 gap (20 min) is unusable and must be dropped.
	events := []models.FixedEvent{
		event("Standup", day(18, 9, 20), day(18, 10, 0)),
	}

	slots, err := New().Resolve(events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(slots) != 1 {
		t.Fatalf("Expected 1 slot, got %d: %v", len(slots), slots)
	}
	if !slots[0].StartTime.Equal(day(18, 10, 0)) {
		t.Errorf("Slot start = %v, want 10:00", slots[0].StartTime)
	}
}

func TestResolve_SlotsNeverOverlapEvents(t *testing.T) {
	events := []models.FixedEvent{
		event("Breakfast", day(18, 9, 0), day(18, 9, 30)),
		event("Lecture", day(18, 11, 0), day(18, 13, 0)),
		event("Gym", day(19, 15, 0), day(19, 16, 0)),
	}

	slots, err := New().Resolve(events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("Expected slots to be emitted")
	}

	for _, slot := range slots {
		for _, e := range events {
			if interval.Overlaps(slot.StartTime, slot.EndTime, e.StartTime, e.EndTime) {
				t.Errorf("Slot %v-%v overlaps event %q", slot.StartTime, slot.EndTime, e.Title)
			}
		}
		if got := interval.Hours(slot.StartTime, slot.EndTime); got != slot.DurationHours {
			t.Errorf("Slot duration %v inconsistent with endpoints (%v)", slot.DurationHours, got)
		}
	}
}

func TestResolve_CoversEveryDayInRange(t *testing.T) {
	// Events on the 18th and 20th; the 19th has no events and yields the
	// whole working window as one slot.
	events := []models.FixedEvent{
		event("Kickoff", day(18, 10, 0), day(18, 11, 0)),
		event("Retro", day(20, 14, 0), day(20, 15, 0)),
	}

	slots, err := New().Resolve(events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	var full []models.TimeSlot
	for _, s := range slots {
		if s.StartTime.Equal(day(19, 9, 0)) && s.EndTime.Equal(day(19, 17, 0)) {
			full = append(full, s)
		}
	}
	if len(full) != 1 {
		t.Errorf("Expected the empty day to appear as one full-window slot, got %v", slots)
	}
}

func TestResolve_OverlappingEventsAdvanceCursorForward(t *testing.T) {
	// The nested second event must not rewind the cursor or produce a
	// slot inside the first event.
	events := []models.FixedEvent{
		event("Workshop", day(18, 9, 0), day(18, 13, 0)),
		event("Call", day(18, 10, 0), day(18, 11, 0)),
	}

	slots, err := New().Resolve(events, models.DefaultPreferences())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(slots) != 1 {
		t.Fatalf("Expected 1 trailing slot, got %d: %v", len(slots), slots)
	}
	if !slots[0].StartTime.Equal(day(18, 13, 0)) || !slots[0].EndTime.Equal(day(18, 17, 0)) {
		t.Errorf("Slot = %v-%v, want 13:00-17:00", slots[0].StartTime, slots[0].EndTime)
	}
}

func TestResolve_MalformedWindowFailsFast(t *testing.T) {
	events := []models.FixedEvent{
		event("Anchor", day(18, 10, 0), day(18, 11, 0)),
	}
	prefs := models.Preferences{WorkDayStart: "nine", WorkDayEnd: "17:00"}

	if _, err := New().Resolve(events, prefs); err == nil {
		t.Error("Expected error for malformed workDayStart")
	}
}
