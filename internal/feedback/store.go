// Package feedback aggregates task completion feedback into per-slot
// statistics and turns them into advisory scheduling weights.
package feedback

import (
	"fmt"
	"sort"
	"time"

	"flowplan/internal/constants"
	"flowplan/internal/models"
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Weekday maps an instant to the store's weekday index (0 = Monday).
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekdayName returns the short label for a store weekday index.
func WeekdayName(day int) string {
	return weekdayNames[day]
}

type slotKey struct {
	hour int
	day  int
}

// Store keeps running (hour, weekday) statistics built from recorded
// feedback. Recording is not idempotent: the same task id submitted
// twice updates the running aggregates twice, while the per-task map
// keeps only the last record. Samples never decay.
type Store struct {
	tasks map[string]models.TaskFeedback
	slots map[slotKey]*models.TimeSlotStat
}

func NewStore() *Store {
	return &Store{
		tasks: make(map[string]models.TaskFeedback),
		slots: make(map[slotKey]*models.TimeSlotStat),
	}
}

// FromSnapshot rebuilds a store from a persisted task-id keyed snapshot.
// Records are replayed in task-id order so the rebuilt aggregates are
// deterministic.
func FromSnapshot(entries map[string]models.TaskFeedback) *Store {
	s := NewStore()

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		s.Record(entries[id])
	}
	return s
}

// Record folds one feedback record into the aggregates using the
// standard incremental mean: new = (old*(n-1) + x) / n.
func (s *Store) Record(fb models.TaskFeedback) {
	s.tasks[fb.TaskID] = fb

	key := slotKey{hour: fb.ScheduledStart.Hour(), day: Weekday(fb.ScheduledStart)}
	slot, ok := s.slots[key]
	if !ok {
		slot = &models.TimeSlotStat{Hour: key.hour, DayOfWeek: key.day, AvgEnergy: 3.0}
		s.slots[key] = slot
	}

	completed := 0.0
	if fb.Completed {
		completed = 1.0
	}

	n := float64(slot.SampleCount + 1)
	slot.SampleCount++
	slot.CompletionRate = (slot.CompletionRate*(n-1) + completed) / n
	slot.AvgEnergy = (slot.AvgEnergy*(n-1) + float64(fb.EnergyLevel)) / n
}

// Weight blends a slot's completion rate and normalized energy into one
// scalar. Slots without history are neutral (1.0).
func (s *Store) Weight(hour, weekday int) float64 {
	slot, ok := s.slots[slotKey{hour: hour, day: weekday}]
	if !ok {
		return 1.0
	}
	return slot.CompletionRate*constants.CompletionWeight + (slot.AvgEnergy/5.0)*constants.EnergyWeight
}

// ApplyWeights annotates each entry with the weight of its own start
// slot. Purely advisory: entries are neither reordered nor rejected.
func (s *Store) ApplyWeights(schedule []models.ScheduleEntry) []models.ScheduleEntry {
	weighted := make([]models.ScheduleEntry, len(schedule))
	for i, entry := range schedule {
		w := s.Weight(entry.StartTime.Hour(), Weekday(entry.StartTime))
		entry.SlotWeight = &w
		weighted[i] = entry
	}
	return weighted
}

// Stats returns all aggregates ordered by weekday then hour.
func (s *Store) Stats() []models.TimeSlotStat {
	out := make([]models.TimeSlotStat, 0, len(s.slots))
	for _, slot := range s.slots {
		out = append(out, *slot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// Recommendations scans aggregates with enough samples and describes
// slots with poor completion or low energy. Descriptive output only.
func (s *Store) Recommendations() []models.Recommendation {
	var recs []models.Recommendation

	for _, slot := range s.Stats() {
		if slot.SampleCount < constants.RecommendationMinSamples {
			continue
		}
		if slot.CompletionRate < constants.LowCompletionThreshold {
			recs = append(recs, models.Recommendation{
				Type: models.RecommendationTimeSlotWarning,
				Message: fmt.Sprintf("Low completion rate (%.0f%%) for %02d:00 on %s",
					slot.CompletionRate*100, slot.Hour, weekdayNames[slot.DayOfWeek]),
				Suggestion: "Consider rescheduling important tasks away from this time slot",
			})
		}
		if slot.AvgEnergy < constants.LowEnergyThreshold {
			recs = append(recs, models.Recommendation{
				Type: models.RecommendationEnergyWarning,
				Message: fmt.Sprintf("Consistently low energy (%.1f/5) at %02d:00",
					slot.AvgEnergy, slot.Hour),
				Suggestion: "Schedule lighter tasks during this time",
			})
		}
	}

	return recs
}

// Snapshot returns the last-recorded feedback per task id, suitable for
// persistence and for rebuilding the store with FromSnapshot.
func (s *Store) Snapshot() map[string]models.TaskFeedback {
	out := make(map[string]models.TaskFeedback, len(s.tasks))
	for id, fb := range s.tasks {
		out[id] = fb
	}
	return out
}
