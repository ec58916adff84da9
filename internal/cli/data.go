package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/studyd/internal/config"
	"github.com/sandeepkv93/studyd/internal/planner"
)

func newStatsCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress, streak and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			d := a.Planner.Dashboard()
			ach := a.Planner.Achievements()
			_, _ = fmt.Fprintf(out, "Tasks:      %d total, %d done (%d%%)\n", d.Counts.Total, d.Counts.Completed, d.Percent)
			_, _ = fmt.Fprintf(out, "Streak:     %d day(s)\n", d.Streak)
			_, _ = fmt.Fprintf(out, "Focus:      %d minute(s)\n", d.TotalFocusMinutes)
			_, _ = fmt.Fprintf(out, "Badges:     first task %s, five tasks %s, three day streak %s\n",
				mark(ach.FirstTask), mark(ach.FiveTasks), mark(ach.ThreeDayStreak))
			if len(d.Upcoming) > 0 {
				_, _ = fmt.Fprintln(out, "Upcoming:")
				for _, t := range d.Upcoming {
					_, _ = fmt.Fprintf(out, "  %s  %s\n", t.Deadline, t.Text)
				}
			}
			_, _ = fmt.Fprintln(out, "Last 7 days:")
			for _, b := range a.Planner.Charts().Weekly {
				_, _ = fmt.Fprintf(out, "  %s %3d %s\n", b.Label, b.Minutes, strings.Repeat("#", min(b.Minutes/5, 40)))
			}
			return nil
		},
	}
}

func mark(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}

func newExportCommand(a *App) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every stored document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeSnapshot(cmd.OutOrStdout(), a.Planner.Snapshot(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or yaml")
	return cmd
}

func writeSnapshot(w io.Writer, snap planner.Snapshot, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q, want json or yaml", format)
	}
}

func newResetCommand(a *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:       "reset tasks|stats|all",
		Short:     "Delete stored data",
		Long:      "Delete every task, reset the streak and focus totals, or wipe everything including badges, history, notes and settings.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"tasks", "stats", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var action planner.Action
			switch args[0] {
			case "tasks":
				action = planner.ResetTasks{}
			case "stats":
				action = planner.ResetStats{}
			case "all":
				action = planner.ResetAll{}
			default:
				return fmt.Errorf("unknown reset scope %q", args[0])
			}
			if !yes {
				return errors.New("reset cannot be undone; pass --yes to confirm")
			}
			res, err := a.Planner.Dispatch(cmd.Context(), action)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			a.report(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

func newConfigCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:         "config",
		Short:       "Print the effective configuration as TOML",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipOpen": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.ConfigPath
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if a.DBPath != "" {
				cfg.DBPath = a.DBPath
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
			return nil
		},
	}
}
