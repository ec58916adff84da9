package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/planner"
)

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, p *planner.Planner, opts Options) error {
	opts.Context = ctx
	prog := tea.NewProgram(NewModel(p, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
