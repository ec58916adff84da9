package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/focus"
	"github.com/sandeepkv93/studyd/internal/planner"
	"github.com/sandeepkv93/studyd/internal/views"
)

const lengthStep = 5 * 60

// focusTickCmd schedules one timer second. The tick carries the generation it
// was armed for so the planner can drop it after a pause or reset.
func focusTickCmd(generation uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return FocusTickMsg{Generation: generation}
	})
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter":
		if m.planner.Timer().State == focus.StateRunning {
			return m.dispatch(planner.PauseTimer{})
		}
		return m.dispatch(planner.StartTimer{})
	case "r":
		return m.dispatch(planner.ResetTimer{})
	case "+", "=":
		return m.dispatch(planner.SetTimerLength{Seconds: m.planner.Timer().Length + lengthStep})
	case "-":
		next := m.planner.Timer().Length - lengthStep
		if next < lengthStep {
			next = lengthStep
		}
		return m.dispatch(planner.SetTimerLength{Seconds: next})
	}
	return m, nil
}

func (m Model) onFocusTick(msg FocusTickMsg) (Model, tea.Cmd) {
	res := m.planner.Tick(m.ctx, msg.Generation)
	if !res.Accepted {
		return m, nil
	}
	m.absorbEvents()
	if res.Rearm {
		return m, focusTickCmd(res.Generation)
	}
	return m, nil
}

func (m Model) renderFocusView() string {
	timer := m.planner.Timer()
	charts := m.planner.Charts()
	recent := make([]views.BarData, 0, len(charts.Recent))
	for _, p := range charts.Recent {
		recent = append(recent, views.BarData{Label: p.Label, Value: p.Minutes})
	}
	return views.RenderFocusPanel(views.FocusPanelData{
		State:        string(timer.State),
		Timer:        planner.FormatClock(timer.Remaining),
		Length:       planner.FormatClock(timer.Length),
		ProgressView: m.focusProgress.ViewAs(timer.Progress),
		ProgressPct:  int(timer.Progress * 100),
		Quote:        m.planner.Quote(),
		Recent:       recent,
	})
}
