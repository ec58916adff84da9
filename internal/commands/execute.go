package commands

import (
	"context"

	"github.com/sandeepkv93/studyd/internal/planner"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, a planner.Action) (planner.Result, error)
}

// Execute parses input and hands the resulting action to d.
func Execute(ctx context.Context, d Dispatcher, input string) (Command, planner.Result, error) {
	cmd, err := Parse(input)
	if err != nil {
		return Command{}, planner.Result{}, err
	}
	if d == nil {
		return cmd, planner.Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "no dispatcher configured"}
	}
	res, err := d.Dispatch(ctx, cmd.Action)
	return cmd, res, err
}
