package cli

import (
	"fmt"
	"sort"
	"strings"

	"flowplan/internal/models"
	"flowplan/internal/validation"
)

type SettingsCmd struct {
	DayStart      *string  `help:"Working day start (HH:MM)."`
	DayEnd        *string  `help:"Working day end (HH:MM)."`
	BreakDuration *int     `help:"Break length in minutes."`
	MinWorkBlock  *int     `help:"Minimum uninterrupted work block in minutes before a break is inserted."`
	Prefer        []string `help:"Preferred start time per category, as category=HH:MM. Repeatable."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return err
	}

	changed := false
	if c.DayStart != nil {
		prefs.WorkDayStart = *c.DayStart
		changed = true
	}
	if c.DayEnd != nil {
		prefs.WorkDayEnd = *c.DayEnd
		changed = true
	}
	if c.BreakDuration != nil {
		prefs.BreakDuration = *c.BreakDuration
		changed = true
	}
	if c.MinWorkBlock != nil {
		prefs.MinWorkBlock = *c.MinWorkBlock
		changed = true
	}
	for _, p := range c.Prefer {
		category, clock, ok := strings.Cut(p, "=")
		if !ok || category == "" {
			return fmt.Errorf("invalid --prefer %q, expected category=HH:MM", p)
		}
		if _, _, err := validation.ParseClock(clock); err != nil {
			return fmt.Errorf("invalid --prefer %q: %w", p, err)
		}
		if prefs.PreferredTimes == nil {
			prefs.PreferredTimes = make(map[string]string)
		}
		prefs.PreferredTimes[category] = clock
		changed = true
	}

	if !changed {
		printPreferences(prefs)
		return nil
	}

	if result := validation.New().ValidatePreferences(prefs); result.HasConflicts() {
		for _, conflict := range result.Conflicts {
			fmt.Printf("invalid: %s\n", conflict.Message)
		}
		return fmt.Errorf("preferences not saved")
	}
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	fmt.Println("Preferences updated.")
	printPreferences(prefs)
	return nil
}

func printPreferences(prefs models.Preferences) {
	fmt.Printf("Working day:    %s - %s\n", prefs.WorkDayStart, prefs.WorkDayEnd)
	fmt.Printf("Break duration: %dm\n", prefs.BreakMinutes())
	fmt.Printf("Min work block: %dm\n", prefs.MinBlockMinutes())
	if len(prefs.PreferredTimes) == 0 {
		return
	}
	categories := make([]string, 0, len(prefs.PreferredTimes))
	for c := range prefs.PreferredTimes {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	fmt.Println("Preferred times:")
	for _, c := range categories {
		fmt.Printf("  %-10s %s\n", c, prefs.PreferredTimes[c])
	}
}
