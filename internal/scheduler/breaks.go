package scheduler

import (
	"time"

	"flowplan/internal/interval"
	"flowplan/internal/models"
)

// insertBreaks walks a start-sorted schedule and places a recovery break
// after every work block long enough to warrant one: when the gap from
// one entry's end to the next entry's start is at least minWorkBlock
// minutes, a break of breakDuration minutes starts exactly at the prior
// entry's end, provided it ends strictly before the next entry starts.
// No break is added before the first or after the last entry.
func insertBreaks(schedule []models.ScheduleEntry, prefs models.Preferences) []models.ScheduleEntry {
	if len(schedule) == 0 {
		return schedule
	}

	breakLen := time.Duration(prefs.BreakMinutes()) * time.Minute
	minBlock := float64(prefs.MinBlockMinutes())

	enhanced := make([]models.ScheduleEntry, 0, len(schedule))
	var lastEnd time.Time

	for i, entry := range schedule {
		if i > 0 && interval.Minutes(lastEnd, entry.StartTime) >= minBlock {
			breakEnd := lastEnd.Add(breakLen)
			if breakEnd.Before(entry.StartTime) {
				enhanced = append(enhanced, models.ScheduleEntry{
					Title:     "Break",
					Category:  models.CategoryBreak,
					StartTime: lastEnd,
					EndTime:   breakEnd,
				})
			}
		}
		enhanced = append(enhanced, entry)
		lastEnd = entry.EndTime
	}

	return enhanced
}
