// Package prioritize orders tasks for allocation using the Eisenhower
// urgency/importance matrix.
package prioritize

import (
	"sort"

	"flowplan/internal/models"
)

// RankedTask pairs a task with the priority label derived from its
// bucket. Carrying the label explicitly avoids re-deriving it later by
// bucket membership.
type RankedTask struct {
	Task     models.Task
	Priority models.Priority
}

// Buckets holds the four urgency/importance partitions, each sorted
// ascending by estimated minutes (stable, so ties keep input order).
type Buckets struct {
	UrgentImportant []models.Task
	Important       []models.Task
	Urgent          []models.Task
	Neither         []models.Task
}

func Categorize(tasks []models.Task) Buckets {
	var b Buckets

	for _, task := range tasks {
		switch {
		case task.Urgent && task.Important:
			b.UrgentImportant = append(b.UrgentImportant, task)
		case task.Important:
			b.Important = append(b.Important, task)
		case task.Urgent:
			b.Urgent = append(b.Urgent, task)
		default:
			b.Neither = append(b.Neither, task)
		}
	}

	for _, bucket := range [][]models.Task{b.UrgentImportant, b.Important, b.Urgent, b.Neither} {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Minutes() < bucket[j].Minutes()
		})
	}

	return b
}

// Rank returns the global scheduling order: urgent+important first, then
// important, then urgent, then neither. The first bucket is labeled
// high, the second medium, the rest low.
func Rank(tasks []models.Task) []RankedTask {
	b := Categorize(tasks)

	ranked := make([]RankedTask, 0, len(tasks))
	for _, task := range b.UrgentImportant {
		ranked = append(ranked, RankedTask{Task: task, Priority: models.PriorityHigh})
	}
	for _, task := range b.Important {
		ranked = append(ranked, RankedTask{Task: task, Priority: models.PriorityMedium})
	}
	for _, task := range b.Urgent {
		ranked = append(ranked, RankedTask{Task: task, Priority: models.PriorityLow})
	}
	for _, task := range b.Neither {
		ranked = append(ranked, RankedTask{Task: task, Priority: models.PriorityLow})
	}
	return ranked
}
