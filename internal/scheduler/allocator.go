package scheduler

import (
	"math"
	"time"

	"flowplan/internal/constants"
	"flowplan/internal/interval"
	"flowplan/internal/logger"
	"flowplan/internal/models"
	"flowplan/internal/prioritize"
	"flowplan/internal/validation"
)

// allocate greedily assigns ranked tasks to the best-scoring free slot.
// It works on its own copy of the pool; the consumed slot is removed and
// any residual capacity of 30+ minutes re-enters the pool. Tasks with no
// qualifying slot are dropped from the result. Returns the schedule
// entries (in allocation order) and the final pool.
func allocate(ranked []prioritize.RankedTask, slots []models.TimeSlot, prefs models.Preferences) ([]models.ScheduleEntry, []models.TimeSlot) {
	pool := make([]models.TimeSlot, len(slots))
	copy(pool, slots)

	var entries []models.ScheduleEntry

	for _, r := range ranked {
		idx := findBestSlot(r.Task, pool, prefs)
		if idx < 0 {
			logger.Debug("no qualifying slot for task", "task", r.Task.Title, "minutes", r.Task.Minutes())
			continue
		}

		slot := pool[idx]
		end := slot.StartTime.Add(time.Duration(r.Task.Minutes()) * time.Minute)

		entries = append(entries, models.ScheduleEntry{
			Title:     r.Task.Title,
			Category:  r.Task.Category,
			StartTime: slot.StartTime,
			EndTime:   end,
			Priority:  r.Priority,
		})

		pool = append(pool[:idx], pool[idx+1:]...)
		if interval.Minutes(end, slot.EndTime) >= constants.MinSlotMinutes {
			pool = append(pool, models.NewTimeSlot(end, slot.EndTime))
		}
	}

	return entries, pool
}

// findBestSlot scores every slot large enough for the task and returns
// the index of the cheapest one, or -1 when none qualifies. The score is
// the absolute difference between slot and task duration, plus a flat
// penalty when the slot starts more than two hours from the category's
// preferred hour. Ties go to the earlier slot start, which makes the
// choice independent of the pool's append/remove history.
func findBestSlot(task models.Task, pool []models.TimeSlot, prefs models.Preferences) int {
	taskHours := task.DurationHours()

	preferredHour := -1
	if clock, ok := prefs.PreferredTime(task.Category); ok {
		if h, _, err := validation.ParseClock(clock); err == nil {
			preferredHour = h
		}
	}

	best := -1
	var bestScore float64

	for i, slot := range pool {
		if slot.DurationHours < taskHours {
			continue
		}

		score := math.Abs(slot.DurationHours - taskHours)
		if preferredHour >= 0 {
			delta := slot.StartTime.Hour() - preferredHour
			if delta < 0 {
				delta = -delta
			}
			if delta > constants.PreferredHourTolerance {
				score += constants.PreferredHourPenalty
			}
		}

		switch {
		case best < 0, score < bestScore:
			best, bestScore = i, score
		case score == bestScore && slot.StartTime.Before(pool[best].StartTime):
			best = i
		}
	}

	return best
}
