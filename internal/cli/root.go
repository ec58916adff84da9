// Package cli is the studyd command line. With no subcommand it starts the
// terminal UI.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyd/internal/update"
)

const (
	groupTasks = "tasks"
	groupFocus = "focus"
	groupData  = "data"
)

// launchTUIFunc is swapped out in tests.
var launchTUIFunc = func(ctx context.Context, a *App) error {
	return update.Run(ctx, a.Planner, update.Options{Logger: a.Logger})
}

func NewRootCommand(a *App, version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyd",
		Short:         "Study planner for the terminal",
		Long:          "studyd keeps your study tasks, focus sessions, streaks and notes in one place.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations["skipOpen"] == "true" {
				return nil
			}
			return a.open(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), a)
		},
	}
	root.PersistentFlags().StringVar(&a.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/studyd/config.toml)")
	root.PersistentFlags().StringVar(&a.DBPath, "db", "", "database path, overrides the config file")
	root.PersistentFlags().BoolVar(&a.Ephemeral, "ephemeral", false, "keep all data in memory for this run")

	root.AddGroup(
		&cobra.Group{ID: groupTasks, Title: "Task Commands:"},
		&cobra.Group{ID: groupFocus, Title: "Focus Commands:"},
		&cobra.Group{ID: groupData, Title: "Data Commands:"},
	)
	for _, c := range []*cobra.Command{newAddCommand(a), newListCommand(a), newToggleCommand(a), newDeleteCommand(a), newDoCommand(a)} {
		c.GroupID = groupTasks
		root.AddCommand(c)
	}
	for _, c := range []*cobra.Command{newFocusCommand(a), newStatsCommand(a)} {
		c.GroupID = groupFocus
		root.AddCommand(c)
	}
	for _, c := range []*cobra.Command{newExportCommand(a), newResetCommand(a), newConfigCommand(a)} {
		c.GroupID = groupData
		root.AddCommand(c)
	}
	return root
}

// Execute runs the command line with args and releases the database and
// log file afterwards.
func Execute(ctx context.Context, version string, args []string) error {
	a := &App{}
	root := NewRootCommand(a, version)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}
