package models

import "time"

// FixedEvent is an immovable calendar commitment. Events constrain
// availability; the engine never moves or mutates them.
type FixedEvent struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Category  string     `json:"category"`
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
