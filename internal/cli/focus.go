package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyd/internal/commands"
	"github.com/sandeepkv93/studyd/internal/planner"
	"github.com/sandeepkv93/studyd/internal/scheduler"
)

// focusTickInterval is one timer second; tests shrink it.
var focusTickInterval = time.Second

func newFocusCommand(a *App) *cobra.Command {
	var length string
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run a focus session in the terminal",
		Long: `Run one focus session without the full-screen UI.

The countdown uses the saved session length unless --length is given, which
also saves the new length. Interrupting the session pauses it; nothing is
credited for a session that does not finish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if length != "" {
				secs, err := commands.ParseSeconds(length)
				if err != nil {
					return err
				}
				if _, err := a.Planner.Dispatch(ctx, planner.SetTimerLength{Seconds: secs}); err != nil {
					return err
				}
			}
			return runFocus(ctx, a, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&length, "length", "l", "", "session length in seconds or as a duration such as 25m")
	return cmd
}

func runFocus(ctx context.Context, a *App, out, errOut io.Writer) error {
	res, err := a.Planner.Dispatch(ctx, planner.StartTimer{})
	if err != nil {
		return err
	}
	if !res.Arm {
		return fmt.Errorf("focus: %s", res.Message)
	}
	ticker, err := scheduler.NewTicker(focusTickInterval, res.Generation)
	if err != nil {
		return err
	}
	ticker.Start()
	defer ticker.Stop()

	_, _ = fmt.Fprintf(out, "Focus: %s\n", planner.FormatClock(a.Planner.Timer().Remaining))
	for {
		select {
		case <-ctx.Done():
			ticker.Stop()
			_, _ = a.Planner.Dispatch(context.WithoutCancel(ctx), planner.PauseTimer{})
			_, _ = fmt.Fprintf(out, "\nPaused at %s\n", planner.FormatClock(a.Planner.Timer().Remaining))
			return nil
		case tick, ok := <-ticker.C():
			if !ok {
				return nil
			}
			r := a.Planner.Tick(ctx, tick.Generation)
			if !r.Accepted {
				continue
			}
			if r.Completed {
				ticker.Stop()
				_, _ = fmt.Fprintln(out)
				a.report(out, errOut)
				return nil
			}
			_, _ = fmt.Fprintf(out, "\r%s", planner.FormatClock(r.Remaining))
		}
	}
}
