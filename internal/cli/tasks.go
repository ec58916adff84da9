package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyd/internal/commands"
	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/planner"
	"github.com/sandeepkv93/studyd/internal/tasks"
)

func newAddCommand(a *App) *cobra.Command {
	var opts struct {
		Due      string
		Priority string
		Category string
	}
	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task",
		Example: `  studyd add Read chapter 4 --due 2026-03-01 --priority high
  studyd add Flashcards --category languages`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := model.ParseDate(opts.Due)
			if err != nil {
				return err
			}
			priority, err := model.ParsePriority(opts.Priority)
			if err != nil {
				return err
			}
			res, err := a.Planner.Dispatch(cmd.Context(), planner.AddTask{
				Text:     strings.Join(args, " "),
				Deadline: due,
				Priority: priority,
				Category: opts.Category,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added task %d\n", res.Task.ID)
			a.report(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Due, "due", "", "deadline as YYYY-MM-DD")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "medium", "high, medium or low")
	cmd.Flags().StringVar(&opts.Category, "category", "", "category (default general)")
	return cmd
}

func newListCommand(a *App) *cobra.Command {
	var opts struct {
		Filter string
		Sort   string
		JSON   bool
	}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks in the saved sort order.

Output is tab-separated with columns:
  ID, DONE, PRIORITY, DEADLINE, CATEGORY, TEXT`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Sort != "" {
				mode, err := model.ParseSortMode(opts.Sort)
				if err != nil {
					return err
				}
				if _, err := a.Planner.Dispatch(cmd.Context(), planner.SetSortMode{Mode: mode}); err != nil {
					return err
				}
			}
			items := a.Planner.Tasks(tasks.ParseFilter(opts.Filter))
			if opts.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tDONE\tPRIORITY\tDEADLINE\tCATEGORY\tTEXT")
			for _, t := range items {
				done := " "
				if t.Completed {
					done = "x"
				}
				deadline := "-"
				if !t.Deadline.IsZero() {
					deadline = t.Deadline.String()
				}
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, done, t.Priority, deadline, t.Category, t.Text)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "all", "all, today, high or completed")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "change the saved sort order: added, deadline or priority")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print JSON")
	return cmd
}

func newToggleCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			res, err := a.Planner.Dispatch(cmd.Context(), planner.ToggleTask{ID: id})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			a.report(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}
}

func newDeleteCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			res, err := a.Planner.Dispatch(cmd.Context(), planner.DeleteTask{ID: id})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			a.report(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}
}

// newDoCommand runs one line of the palette grammar, e.g. `studyd do edit 12
// priority high`. The reset commands need --yes, like `studyd reset`.
func newDoCommand(a *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "do <command>...",
		Short: "Run a palette command",
		Long:  "Run a palette command. reset-tasks, reset-stats and reset-all also need --yes.\n\nCommands:\n  " + strings.Join(commands.Usage, "\n  "),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := commands.Parse(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if isDestructive(parsed.Type) && !yes {
				return errors.New("reset cannot be undone; pass --yes to confirm")
			}
			res, err := a.Planner.Dispatch(cmd.Context(), parsed.Action)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			a.report(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm reset commands")
	return cmd
}

func isDestructive(t commands.Type) bool {
	switch t {
	case commands.TypeResetTasks, commands.TypeResetStats, commands.TypeResetAll:
		return true
	default:
		return false
	}
}

func parseTaskID(raw string) (model.TaskID, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &model.ValidationError{Field: "id", Message: fmt.Sprintf("invalid task id %q", raw)}
	}
	return model.TaskID(id), nil
}
