package cli

import (
	"fmt"
	"strings"
	"time"

	"flowplan/internal/models"
	"flowplan/internal/storage"
)

// Context carries the shared command dependencies. User scopes feedback
// records; everything else in the store is single-profile.
type Context struct {
	Store storage.Provider
	User  string
}

// timestampLayouts are the accepted command-line timestamp formats, most
// specific first.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, use RFC3339 or YYYY-MM-DD HH:MM", s)
}

func formatEntry(e models.ScheduleEntry) string {
	window := fmt.Sprintf("%s - %s", e.StartTime.Format("Mon 15:04"), e.EndTime.Format("15:04"))
	if e.IsBreak() {
		return fmt.Sprintf("%s  ~ %s", window, e.Title)
	}

	var extras []string
	if e.Priority != "" {
		extras = append(extras, string(e.Priority))
	}
	if e.Category != "" {
		extras = append(extras, e.Category)
	}
	if e.SlotWeight != nil {
		extras = append(extras, fmt.Sprintf("weight %.2f", *e.SlotWeight))
	}

	if len(extras) == 0 {
		return fmt.Sprintf("%s  %s", window, e.Title)
	}
	return fmt.Sprintf("%s  %s (%s)", window, e.Title, strings.Join(extras, ", "))
}

func printSchedule(entries []models.ScheduleEntry) {
	lastDay := ""
	for _, e := range entries {
		day := e.StartTime.Format("2006-01-02")
		if day != lastDay {
			fmt.Printf("\n%s\n", e.StartTime.Format("Monday, Jan 2"))
			lastDay = day
		}
		fmt.Printf("  %s\n", formatEntry(e))
	}
}
