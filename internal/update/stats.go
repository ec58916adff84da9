package update

import (
	"fmt"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/views"
)

func (m Model) renderStatsView() string {
	dash := m.planner.Dashboard()
	charts := m.planner.Charts()
	earned := m.planner.Achievements()

	badges := []views.BadgeData{
		{Title: model.BadgeFirstTask.Title(), Earned: earned.FirstTask},
		{Title: model.BadgeFiveTasks.Title(), Earned: earned.FiveTasks},
		{Title: model.BadgeThreeDayStreak.Title(), Earned: earned.ThreeDayStreak},
	}
	upcoming := make([]string, 0, len(dash.Upcoming))
	for _, t := range dash.Upcoming {
		upcoming = append(upcoming, fmt.Sprintf("%s  %s", t.Deadline, t.Text))
	}
	weekly := make([]views.BarData, 0, len(charts.Weekly))
	for _, b := range charts.Weekly {
		weekly = append(weekly, views.BarData{Label: b.Label, Value: b.Minutes})
	}
	return views.RenderStatsPanel(views.StatsPanelData{
		Total:        dash.Counts.Total,
		Completed:    dash.Counts.Completed,
		Percent:      dash.Percent,
		ProgressView: m.taskProgress.ViewAs(float64(dash.Percent) / 100),
		Streak:       dash.Streak,
		FocusMinutes: dash.TotalFocusMinutes,
		Badges:       badges,
		Upcoming:     upcoming,
		Weekly:       weekly,
	})
}
