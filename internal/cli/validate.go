package cli

import (
	"fmt"

	"flowplan/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}

	v := validation.New()
	conflicts := 0
	conflicts += report("Tasks", v.ValidateTasks(tasks))
	conflicts += report("Events", v.ValidateEvents(events))
	conflicts += report("Preferences", v.ValidatePreferences(prefs))

	if conflicts == 0 {
		fmt.Println("No conflicts found.")
		return nil
	}
	fmt.Printf("\n%d conflict(s) found. Schedules will still build, but double-booked time is lost.\n", conflicts)
	return nil
}

func report(label string, result validation.ValidationResult) int {
	if !result.HasConflicts() {
		fmt.Printf("✓ %s: OK\n", label)
		return 0
	}
	fmt.Printf("⚠ %s:\n", label)
	for _, c := range result.Conflicts {
		fmt.Printf("   [%s] %s\n", c.Type, c.Message)
	}
	return len(result.Conflicts)
}
