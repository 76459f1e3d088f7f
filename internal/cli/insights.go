package cli

import (
	"fmt"

	"flowplan/internal/constants"
	"flowplan/internal/feedback"
)

type InsightsCmd struct{}

func (c *InsightsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	snapshot, err := ctx.Store.GetFeedback(ctx.User)
	if err != nil {
		return err
	}
	if len(snapshot) == 0 {
		fmt.Println("No feedback recorded yet. Run 'flowplan feedback' after working a scheduled slot.")
		return nil
	}

	store := feedback.FromSnapshot(snapshot)

	stats := store.Stats()
	fmt.Printf("Time slot statistics (%d feedback records):\n\n", len(snapshot))
	fmt.Println("  Slot        Completion  Energy  Samples")
	for _, s := range stats {
		marker := ""
		if s.SampleCount >= constants.RecommendationMinSamples &&
			(s.CompletionRate < constants.LowCompletionThreshold || s.AvgEnergy < constants.LowEnergyThreshold) {
			marker = "  !"
		}
		fmt.Printf("  %s %02d:00   %9.0f%%  %6.1f  %7d%s\n",
			feedback.WeekdayName(s.DayOfWeek), s.Hour,
			s.CompletionRate*100, s.AvgEnergy, s.SampleCount, marker)
	}

	recs := store.Recommendations()
	if len(recs) == 0 {
		fmt.Println("\nNo recommendations: your tracked slots look fine so far.")
		return nil
	}

	fmt.Println("\nRecommendations:")
	for _, r := range recs {
		fmt.Printf("  - %s\n    %s\n", r.Message, r.Suggestion)
	}
	return nil
}
