package constants

const (
	// Slot weighting constants:
	// - CompletionWeight and EnergyWeight blend a slot's historical
	//   completion rate and normalized energy level into one advisory
	//   weight. They must sum to 1.0.
	CompletionWeight = 0.6 // weight of the historical completion rate
	EnergyWeight     = 0.4 // weight of the normalized (x/5) energy level

	// MinSlotMinutes is the smallest free interval worth keeping; shorter
	// gaps and residuals are dropped as unusable.
	MinSlotMinutes = 30

	// Recommendation thresholds. A slot needs at least
	// RecommendationMinSamples before warnings are emitted for it.
	RecommendationMinSamples = 3
	LowCompletionThreshold   = 0.5
	LowEnergyThreshold       = 2.5

	// PreferredHourTolerance is how far (in hours) a slot's start may sit
	// from a category's preferred hour before the allocator penalizes it.
	PreferredHourTolerance = 2
	PreferredHourPenalty   = 2.0
)

func init() {
	// Runtime validation: ensure weighting constants sum to 1.0
	if CompletionWeight+EnergyWeight != 1.0 {
		panic("CompletionWeight and EnergyWeight must sum to 1.0")
	}
}
