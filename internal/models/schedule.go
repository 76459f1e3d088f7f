package models

import "time"

// TimeSlot is a contiguous free interval eligible to host a task.
// DurationHours is derived from the endpoints and kept consistent by
// construction through NewTimeSlot.
type TimeSlot struct {
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	DurationHours float64   `json:"duration"`
}

func NewTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{
		StartTime:     start,
		EndTime:       end,
		DurationHours: end.Sub(start).Hours(),
	}
}

// CategoryBreak marks synthetic recovery entries inserted between work blocks.
const CategoryBreak = "break"

// ScheduleEntry is one placed task (or inserted break) in the result
// schedule. Breaks carry no priority. SlotWeight is advisory and only
// set when feedback history was applied.
type ScheduleEntry struct {
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Priority   Priority  `json:"priority,omitempty"`
	SlotWeight *float64  `json:"slot_weight,omitempty"`
}

// IsBreak reports whether the entry is a synthetic recovery break.
func (e ScheduleEntry) IsBreak() bool {
	return e.Category == CategoryBreak
}
