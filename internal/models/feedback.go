package models

import "time"

// TaskFeedback records one completed or attempted task's outcome.
// Keyed by TaskID; resubmitting overwrites the stored record.
type TaskFeedback struct {
	TaskID         string     `json:"task_id"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   time.Time  `json:"scheduled_end"`
	ActualStart    *time.Time `json:"actual_start,omitempty"`
	ActualEnd      *time.Time `json:"actual_end,omitempty"`
	Completed      bool       `json:"completed"`
	EnergyLevel    int        `json:"energy_level"` // 1-5
	Difficulty     int        `json:"difficulty"`   // 1-5
	Satisfaction   int        `json:"satisfaction"` // 1-5
	Notes          string     `json:"notes,omitempty"`
}

// TimeSlotStat aggregates feedback for one (hour, weekday) slot.
// DayOfWeek uses 0 = Monday through 6 = Sunday, matching the persisted
// snapshot format. Means are maintained incrementally and never decay.
type TimeSlotStat struct {
	Hour           int     `json:"hour"`        // 0-23
	DayOfWeek      int     `json:"day_of_week"` // 0 = Monday
	CompletionRate float64 `json:"completion_rate"`
	AvgEnergy      float64 `json:"avg_energy"`
	SampleCount    int     `json:"sample_count"`
}

// Recommendation types emitted by the feedback store.
const (
	RecommendationTimeSlotWarning = "time_slot_warning"
	RecommendationEnergyWarning   = "energy_warning"
)

// Recommendation is a descriptive scheduling hint derived from feedback
// history. It never alters allocation by itself.
type Recommendation struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}
