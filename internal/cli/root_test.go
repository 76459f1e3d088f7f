package cli

import (
	"strings"
	"testing"
	"time"

	"flowplan/internal/models"
)

func TestParseTimestamp(t *testing.T) {
	cases := []string{
		"2026-08-29T10:00:00Z",
		"2026-08-29T10:00",
		"2026-08-29 10:00",
	}
	for _, in := range cases {
		got, err := parseTimestamp(in)
		if err != nil {
			t.Errorf("parseTimestamp(%q): %v", in, err)
			continue
		}
		if got.Hour() != 10 || got.Minute() != 0 {
			t.Errorf("parseTimestamp(%q) = %v, want 10:00", in, got)
		}
	}

	if _, err := parseTimestamp("next tuesday"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestFormatEntry(t *testing.T) {
	start := time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)

	entry := models.ScheduleEntry{
		Title:     "Write report",
		Category:  "work",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Priority:  models.PriorityHigh,
	}
	got := formatEntry(entry)
	if !strings.Contains(got, "Write report") {
		t.Errorf("formatEntry = %q, missing title", got)
	}
	if !strings.Contains(got, "09:00") || !strings.Contains(got, "10:00") {
		t.Errorf("formatEntry = %q, missing window", got)
	}
	if !strings.Contains(got, string(models.PriorityHigh)) {
		t.Errorf("formatEntry = %q, missing priority", got)
	}

	br := models.ScheduleEntry{
		Title:     "Break",
		Category:  models.CategoryBreak,
		StartTime: start,
		EndTime:   start.Add(15 * time.Minute),
	}
	got = formatEntry(br)
	if !strings.Contains(got, "~") {
		t.Errorf("formatEntry(break) = %q, want break marker", got)
	}
}

func TestMatchTaskPrefix(t *testing.T) {
	tasks := []models.Task{
		{ID: "aaaa1111-0000-0000-0000-000000000000", Title: "a"},
		{ID: "aaaa2222-0000-0000-0000-000000000000", Title: "b"},
		{ID: "bbbb1111-0000-0000-0000-000000000000", Title: "c"},
	}

	id, err := matchTaskPrefix(tasks, "bbbb")
	if err != nil {
		t.Fatalf("matchTaskPrefix: %v", err)
	}
	if id != tasks[2].ID {
		t.Errorf("matched %q, want %q", id, tasks[2].ID)
	}

	if _, err := matchTaskPrefix(tasks, "aaaa"); err == nil {
		t.Error("expected ambiguity error for shared prefix")
	}
	if _, err := matchTaskPrefix(tasks, "cccc"); err == nil {
		t.Error("expected error for unknown prefix")
	}
	// Prefixes shorter than 4 chars only match exact IDs.
	if _, err := matchTaskPrefix(tasks, "bb"); err == nil {
		t.Error("expected error for too-short prefix")
	}
}
