package cli

import (
	"fmt"
	"time"

	"flowplan/internal/models"
	"flowplan/internal/validation"
)

type FeedbackCmd struct {
	Task         string `arg:"" help:"Task ID (or unique prefix) the feedback is for."`
	Completed    bool   `help:"Whether the task was completed in its slot."`
	Energy       int    `default:"3" help:"Energy level during the slot (1-5)."`
	Difficulty   int    `default:"3" help:"How hard the task felt (1-5)."`
	Satisfaction int    `default:"3" help:"How satisfying the slot was (1-5)."`
	Notes        string `help:"Free-form notes."`
	Start        string `help:"Scheduled start override (e.g. 2026-08-29T10:00). Defaults to the saved schedule entry."`
	End          string `help:"Scheduled end override."`
}

func (c *FeedbackCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	id, err := resolveTaskID(ctx, c.Task)
	if err != nil {
		return err
	}
	task, err := ctx.Store.GetTask(id)
	if err != nil {
		return err
	}

	fb := models.TaskFeedback{
		TaskID:       id,
		Completed:    c.Completed,
		EnergyLevel:  c.Energy,
		Difficulty:   c.Difficulty,
		Satisfaction: c.Satisfaction,
		Notes:        c.Notes,
	}

	fb.ScheduledStart, fb.ScheduledEnd, err = c.scheduledWindow(ctx, task)
	if err != nil {
		return err
	}

	if err := validation.New().ValidateFeedback(fb); err != nil {
		return err
	}
	if err := ctx.Store.SaveFeedback(ctx.User, fb); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	fmt.Printf("Recorded feedback for %q (%s at %s)\n",
		task.Title, completedLabel(fb.Completed), fb.ScheduledStart.Format("Mon 15:04"))
	return nil
}

// scheduledWindow resolves the slot the feedback refers to, preferring
// explicit flags over the saved schedule.
func (c *FeedbackCmd) scheduledWindow(ctx *Context, task models.Task) (time.Time, time.Time, error) {
	if c.Start != "" && c.End != "" {
		start, err := parseTimestamp(c.Start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
		}
		end, err := parseTimestamp(c.End)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
		}
		return start, end, nil
	}
	if c.Start != "" || c.End != "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--start and --end must be given together")
	}

	entries, err := ctx.Store.GetSchedule()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	for _, e := range entries {
		if !e.IsBreak() && e.Title == task.Title {
			return e.StartTime, e.EndTime, nil
		}
	}
	return time.Time{}, time.Time{}, fmt.Errorf(
		"task %q is not in the saved schedule; pass --start and --end", task.Title)
}

func completedLabel(done bool) string {
	if done {
		return "completed"
	}
	return "not completed"
}
