package models

import "time"

// DefaultEstimatedMinutes is assumed when a task carries no estimate.
const DefaultEstimatedMinutes = 60

// Task is a unit of work waiting to be placed into a free slot.
type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Category         string     `json:"category"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	Urgent           bool       `json:"urgent"`
	Important        bool       `json:"important"`
	CreatedAt        time.Time  `json:"created_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// Minutes returns the task's estimate, falling back to the default
// when no estimate was provided.
func (t Task) Minutes() int {
	if t.EstimatedMinutes <= 0 {
		return DefaultEstimatedMinutes
	}
	return t.EstimatedMinutes
}

// DurationHours returns the estimate expressed in hours.
func (t Task) DurationHours() float64 {
	return float64(t.Minutes()) / 60.0
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)
