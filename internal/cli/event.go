package cli

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"flowplan/internal/models"
)

type EventCmd struct {
	Add    EventAddCmd    `cmd:"" help:"Add a fixed event."`
	List   EventListCmd   `cmd:"" help:"List fixed events."`
	Delete EventDeleteCmd `cmd:"" help:"Delete a fixed event."`
}

type EventAddCmd struct {
	Title    string `arg:"" help:"Event title."`
	Start    string `arg:"" help:"Start time (e.g. 2026-08-29T10:00)."`
	End      string `arg:"" help:"End time."`
	Category string `short:"c" default:"meeting" help:"Event category."`
}

func (c *EventAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	start, err := parseTimestamp(c.Start)
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	end, err := parseTimestamp(c.End)
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}
	if !end.After(start) {
		return fmt.Errorf("event end must be after start")
	}

	event := models.FixedEvent{
		ID:        uuid.New().String(),
		Title:     c.Title,
		Category:  c.Category,
		StartTime: start,
		EndTime:   end,
	}
	if err := ctx.Store.AddEvent(event); err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}

	fmt.Printf("Added event: %s (%s - %s)\n",
		event.Title,
		event.StartTime.Format("Mon Jan 2 15:04"),
		event.EndTime.Format("15:04"))
	return nil
}

type EventListCmd struct{}

func (c *EventListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No fixed events. Add one with 'flowplan event add'.")
		return nil
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	for _, e := range events {
		fmt.Printf("%s  %-30s %-10s %s - %s\n",
			e.ID[:8], e.Title, e.Category,
			e.StartTime.Format("Mon Jan 2 15:04"),
			e.EndTime.Format("15:04"))
	}
	return nil
}

type EventDeleteCmd struct {
	ID string `arg:"" help:"Event ID (or unique prefix)."`
}

func (c *EventDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return err
	}
	id, err := matchEventPrefix(events, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteEvent(id); err != nil {
		return err
	}
	fmt.Printf("Deleted event %s\n", id[:8])
	return nil
}

func matchEventPrefix(events []models.FixedEvent, prefix string) (string, error) {
	var match string
	for _, e := range events {
		if e.ID == prefix {
			return e.ID, nil
		}
		if len(prefix) >= 4 && len(e.ID) >= len(prefix) && e.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("event ID prefix %q is ambiguous", prefix)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no event found matching %q", prefix)
	}
	return match, nil
}
