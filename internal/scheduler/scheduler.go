// Package scheduler assembles the full allocation pipeline: resolve free
// slots around fixed events, rank tasks, place them greedily, insert
// recovery breaks, and optionally annotate entries with feedback
// weights.
package scheduler

import (
	"sort"

	"flowplan/internal/availability"
	"flowplan/internal/models"
	"flowplan/internal/prioritize"
)

// WeightApplier annotates schedule entries with historical slot weights.
// Satisfied by *feedback.Store.
type WeightApplier interface {
	ApplyWeights([]models.ScheduleEntry) []models.ScheduleEntry
}

type Scheduler struct {
	resolver *availability.Resolver
	weights  WeightApplier
}

func New() *Scheduler {
	return &Scheduler{resolver: availability.New()}
}

// NewWithWeights returns a scheduler that annotates results with the
// given feedback weights. The weights are advisory; they never change
// which slot a task gets.
func NewWithWeights(w WeightApplier) *Scheduler {
	return &Scheduler{resolver: availability.New(), weights: w}
}

// BuildSchedule is a pure function of its inputs: the same tasks, events,
// and preferences always produce the same schedule. An empty task list
// or an empty resolved slot pool yields an empty schedule, not an error.
func (s *Scheduler) BuildSchedule(tasks []models.Task, events []models.FixedEvent, prefs models.Preferences) ([]models.ScheduleEntry, error) {
	if len(tasks) == 0 {
		return []models.ScheduleEntry{}, nil
	}

	slots, err := s.resolver.Resolve(events, prefs)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return []models.ScheduleEntry{}, nil
	}

	ranked := prioritize.Rank(tasks)
	entries, _ := allocate(ranked, slots, prefs)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime.Before(entries[j].StartTime)
	})

	entries = insertBreaks(entries, prefs)

	if s.weights != nil {
		entries = s.weights.ApplyWeights(entries)
	}

	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	return entries, nil
}
