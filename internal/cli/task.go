package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"flowplan/internal/models"
)

type TaskCmd struct {
	Add     TaskAddCmd     `cmd:"" help:"Add a task to the backlog."`
	List    TaskListCmd    `cmd:"" help:"List tasks."`
	Delete  TaskDeleteCmd  `cmd:"" help:"Delete a task."`
	Restore TaskRestoreCmd `cmd:"" help:"Restore a deleted task."`
}

type TaskAddCmd struct {
	Title     string `arg:"" help:"Task title."`
	Category  string `short:"c" default:"work" help:"Task category (work, personal, creative, ...)."`
	Estimate  int    `short:"e" default:"60" help:"Estimated duration in minutes."`
	Urgent    bool   `short:"u" help:"Mark the task urgent."`
	Important bool   `short:"i" help:"Mark the task important."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	task := models.Task{
		ID:               uuid.New().String(),
		Title:            c.Title,
		Category:         c.Category,
		EstimatedMinutes: c.Estimate,
		Urgent:           c.Urgent,
		Important:        c.Important,
		CreatedAt:        time.Now(),
	}
	if err := ctx.Store.AddTask(task); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Added task: %s (%s, %dm)\n", task.Title, task.Category, task.Minutes())
	return nil
}

type TaskListCmd struct {
	All bool `short:"a" help:"Include deleted tasks."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	if c.All {
		tasks = appendDeleted(ctx, tasks)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks. Add one with 'flowplan task add'.")
		return nil
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	for _, t := range tasks {
		flags := ""
		if t.Urgent {
			flags += " [urgent]"
		}
		if t.Important {
			flags += " [important]"
		}
		if t.DeletedAt != nil {
			flags += " (deleted)"
		}
		fmt.Printf("%s  %-30s %-10s %4dm%s\n", t.ID[:8], t.Title, t.Category, t.Minutes(), flags)
	}
	return nil
}

func appendDeleted(ctx *Context, active []models.Task) []models.Task {
	seen := make(map[string]bool, len(active))
	for _, t := range active {
		seen[t.ID] = true
	}
	all, err := ctx.Store.GetAllTasksIncludingDeleted()
	if err != nil {
		return active
	}
	for _, t := range all {
		if !seen[t.ID] {
			active = append(active, t)
		}
	}
	return active
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID (or unique prefix)."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	id, err := resolveTaskID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteTask(id); err != nil {
		return err
	}
	fmt.Printf("Deleted task %s\n", id[:8])
	return nil
}

type TaskRestoreCmd struct {
	ID string `arg:"" help:"Task ID (or unique prefix)."`
}

func (c *TaskRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	id, err := resolveDeletedTaskID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.RestoreTask(id); err != nil {
		return err
	}
	fmt.Printf("Restored task %s\n", id[:8])
	return nil
}

func resolveTaskID(ctx *Context, prefix string) (string, error) {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return "", err
	}
	return matchTaskPrefix(tasks, prefix)
}

func resolveDeletedTaskID(ctx *Context, prefix string) (string, error) {
	tasks, err := ctx.Store.GetAllTasksIncludingDeleted()
	if err != nil {
		return "", err
	}
	deleted := tasks[:0:0]
	for _, t := range tasks {
		if t.DeletedAt != nil {
			deleted = append(deleted, t)
		}
	}
	return matchTaskPrefix(deleted, prefix)
}

func matchTaskPrefix(tasks []models.Task, prefix string) (string, error) {
	var match string
	for _, t := range tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if len(prefix) >= 4 && len(t.ID) >= len(prefix) && t.ID[:len(prefix)] == prefix {
			if match != "" {
				return "", fmt.Errorf("task ID prefix %q is ambiguous", prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no task found matching %q", prefix)
	}
	return match, nil
}
