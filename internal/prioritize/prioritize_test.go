package prioritize

import (
	"testing"

	"flowplan/internal/models"
)

func task(title string, minutes int, urgent, important bool) models.Task {
	return models.Task{
		ID:               title,
		Title:            title,
		EstimatedMinutes: minutes,
		Urgent:           urgent,
		Important:        important,
	}
}

func TestCategorize_FourBuckets(t *testing.T) {
	tasks := []models.Task{
		task("ui", 60, true, true),
		task("i", 60, false, true),
		task("u", 60, true, false),
		task("n", 60, false, false),
	}

	b := Categorize(tasks)

	if len(b.UrgentImportant) != 1 || b.UrgentImportant[0].Title != "ui" {
		t.Errorf("UrgentImportant = %v", b.UrgentImportant)
	}
	if len(b.Important) != 1 || b.Important[0].Title != "i" {
		t.Errorf("Important = %v", b.Important)
	}
	if len(b.Urgent) != 1 || b.Urgent[0].Title != "u" {
		t.Errorf("Urgent = %v", b.Urgent)
	}
	if len(b.Neither) != 1 || b.Neither[0].Title != "n" {
		t.Errorf("Neither = %v", b.Neither)
	}
}

func TestCategorize_ShorterFirstStable(t *testing.T) {
	tasks := []models.Task{
		task("long", 120, true, true),
		task("short-a", 30, true, true),
		task("short-b", 30, true, true),
	}

	b := Categorize(tasks)

	got := make([]string, 0, len(b.UrgentImportant))
	for _, tk := range b.UrgentImportant {
		got = append(got, tk.Title)
	}
	want := []string{"short-a", "short-b", "long"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Bucket order = %v, want %v", got, want)
		}
	}
}

func TestCategorize_DefaultEstimate(t *testing.T) {
	// A zero estimate counts as the 60-minute default, so it sorts after
	// an explicit 30-minute task.
	tasks := []models.Task{
		task("unestimated", 0, false, false),
		task("quick", 30, false, false),
	}

	b := Categorize(tasks)
	if b.Neither[0].Title != "quick" {
		t.Errorf("Expected explicit 30-minute task first, got %q", b.Neither[0].Title)
	}
}

func TestRank_PriorityLabels(t *testing.T) {
	tasks := []models.Task{
		task("n", 60, false, false),
		task("ui", 60, true, true),
		task("u", 60, true, false),
		task("i", 60, false, true),
	}

	ranked := Rank(tasks)

	wantOrder := []string{"ui", "i", "u", "n"}
	wantPriority := []models.Priority{
		models.PriorityHigh, models.PriorityMedium, models.PriorityLow, models.PriorityLow,
	}

	if len(ranked) != len(wantOrder) {
		t.Fatalf("Rank returned %d tasks, want %d", len(ranked), len(wantOrder))
	}
	for i, r := range ranked {
		if r.Task.Title != wantOrder[i] {
			t.Errorf("ranked[%d] = %q, want %q", i, r.Task.Title, wantOrder[i])
		}
		if r.Priority != wantPriority[i] {
			t.Errorf("ranked[%d].Priority = %q, want %q", i, r.Priority, wantPriority[i])
		}
	}
}
