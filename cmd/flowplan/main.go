package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"flowplan/internal/cli"
	"flowplan/internal/logger"
	"flowplan/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. A .json extension selects the JSON store." type:"path" default:"~/.config/flowplan/flowplan.db"`
	User    string `help:"User id for feedback records." default:"default"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize flowplan storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Schedule cli.ScheduleCmd `cmd:"" help:"Build a schedule from tasks and fixed events."`
	Show     cli.ShowCmd     `cmd:"" help:"Show the last saved schedule."`
	Task     cli.TaskCmd     `cmd:"" help:"Manage tasks."`
	Event    cli.EventCmd    `cmd:"" help:"Manage fixed events."`
	Feedback cli.FeedbackCmd `cmd:"" help:"Record feedback on a scheduled slot."`
	Insights cli.InsightsCmd `cmd:"" help:"Show time slot statistics and recommendations."`
	Settings cli.SettingsCmd `cmd:"" help:"View or update scheduling preferences."`
	Validate cli.ValidateCmd `cmd:"" help:"Check tasks, events, and preferences for conflicts."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage store backups."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("flowplan"),
		kong.Description("Adaptive day scheduler: fits tasks around fixed events and learns from feedback"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
		User:  CLI.User,
	}

	err := ctx.Run(appCtx)
	if cerr := store.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
