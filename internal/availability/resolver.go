// Package availability derives free time slots from fixed calendar
// events and the user's working-hour preferences.
package availability

import (
	"fmt"
	"sort"
	"time"

	"flowplan/internal/constants"
	"flowplan/internal/interval"
	"flowplan/internal/models"
	"flowplan/internal/validation"
)

type Resolver struct{}

func New() *Resolver {
	return &Resolver{}
}

// Resolve produces the ordered free slots between fixed events for every
// calendar day from the earliest to the latest event start date. With no
// events there is nothing to anchor a schedule to, so the slot list is
// empty. Gaps shorter than 30 minutes are dropped as unusable.
//
// Events spanning midnight belong to their start date only; time claimed
// by overlapping events is skipped because the cursor never moves
// backward.
func (r *Resolver) Resolve(events []models.FixedEvent, prefs models.Preferences) ([]models.TimeSlot, error) {
	if len(events) == 0 {
		return []models.TimeSlot{}, nil
	}

	startHour, startMin, err := validation.ParseClock(prefs.WorkDayStart)
	if err != nil {
		return nil, fmt.Errorf("invalid workDayStart: %w", err)
	}
	endHour, endMin, err := validation.ParseClock(prefs.WorkDayEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid workDayEnd: %w", err)
	}

	sorted := make([]models.FixedEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	// All day windows are built in the first event's location.
	loc := sorted[0].StartTime.Location()
	current := dateOf(sorted[0].StartTime, loc)
	last := dateOf(sorted[len(sorted)-1].StartTime, loc)

	var slots []models.TimeSlot

	for !current.After(last) {
		dayStart := current.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute)
		dayEnd := current.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute)

		dayEvents := eventsOn(sorted, current, loc)

		if len(dayEvents) == 0 {
			if dayEnd.After(dayStart) {
				slots = append(slots, models.NewTimeSlot(dayStart, dayEnd))
			}
			current = current.AddDate(0, 0, 1)
			continue
		}

		cursor := dayStart
		for _, event := range dayEvents {
			if cursor.Before(event.StartTime) && usable(cursor, event.StartTime) {
				slots = append(slots, models.NewTimeSlot(cursor, event.StartTime))
			}
			cursor = interval.Later(cursor, event.EndTime)
		}

		if cursor.Before(dayEnd) && usable(cursor, dayEnd) {
			slots = append(slots, models.NewTimeSlot(cursor, dayEnd))
		}

		current = current.AddDate(0, 0, 1)
	}

	return slots, nil
}

func usable(start, end time.Time) bool {
	return interval.Minutes(start, end) >= constants.MinSlotMinutes
}

// dateOf truncates an instant to midnight of its calendar day in loc.
func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func eventsOn(sorted []models.FixedEvent, day time.Time, loc *time.Location) []models.FixedEvent {
	var out []models.FixedEvent
	for _, e := range sorted {
		if dateOf(e.StartTime, loc).Equal(day) {
			out = append(out, e)
		}
	}
	return out
}
