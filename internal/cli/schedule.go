package cli

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"

	"flowplan/internal/feedback"
	"flowplan/internal/logger"
	"flowplan/internal/scheduler"
)

type ScheduleCmd struct {
	NoWeights bool `help:"Skip annotating entries with feedback weights."`
}

func (c *ScheduleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}

	sched := scheduler.New()
	if !c.NoWeights {
		snapshot, err := ctx.Store.GetFeedback(ctx.User)
		if err != nil {
			return fmt.Errorf("failed to get feedback: %w", err)
		}
		if len(snapshot) > 0 {
			sched = scheduler.NewWithWeights(feedback.FromSnapshot(snapshot))
		}
	}

	entries, err := sched.BuildSchedule(tasks, events, prefs)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		switch {
		case len(tasks) == 0:
			fmt.Println("Nothing to schedule: no tasks. Add one with 'flowplan task add'.")
		case len(events) == 0:
			fmt.Println("Nothing to schedule: no fixed events to anchor the day. Add one with 'flowplan event add'.")
		default:
			fmt.Println("No free slots available for your tasks.")
		}
		return nil
	}

	placed := 0
	for _, e := range entries {
		if !e.IsBreak() {
			placed++
		}
	}
	if placed < len(tasks) {
		fmt.Printf("Note: %d of %d tasks could not be placed.\n", len(tasks)-placed, len(tasks))
	}

	printSchedule(entries)
	fmt.Println()

	// Skip the write when the regenerated schedule is identical to the
	// stored one.
	previous, err := ctx.Store.GetSchedule()
	if err == nil {
		prevHash, prevErr := hashstructure.Hash(previous, hashstructure.FormatV2, nil)
		newHash, newErr := hashstructure.Hash(entries, hashstructure.FormatV2, nil)
		if prevErr == nil && newErr == nil && prevHash == newHash {
			fmt.Println("Schedule unchanged since last run.")
			return nil
		}
	}

	if err := ctx.Store.SaveSchedule(entries); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	logger.Info("schedule saved", "entries", len(entries), "placed", placed, "tasks", len(tasks))
	fmt.Println("Schedule saved.")
	return nil
}

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries, err := ctx.Store.GetSchedule()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No schedule saved. Run 'flowplan schedule' first.")
		return nil
	}

	printSchedule(entries)
	return nil
}
