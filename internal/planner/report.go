package planner

import (
	"github.com/sandeepkv93/studyd/internal/focus"
	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/tasks"
)

const (
	upcomingLimit      = 5
	recentHistoryLimit = 8
)

type Dashboard struct {
	Counts            tasks.Counts `json:"counts" yaml:"counts"`
	Percent           int          `json:"percent" yaml:"percent"`
	Streak            int          `json:"streak" yaml:"streak"`
	TotalFocusMinutes int          `json:"totalFocusMinutes" yaml:"totalFocusMinutes"`
	Upcoming          []model.Task `json:"upcoming" yaml:"upcoming"`
}

func (p *Planner) Dashboard() Dashboard {
	counts := p.tasks.Counts()
	s := p.tracker.Stats()
	return Dashboard{
		Counts:            counts,
		Percent:           counts.Percent(),
		Streak:            s.CurrentStreak,
		TotalFocusMinutes: s.TotalFocusMinutes,
		Upcoming:          p.tasks.Upcoming(upcomingLimit),
	}
}

type HistoryPoint struct {
	Label   string `json:"label" yaml:"label"`
	Minutes int    `json:"minutes" yaml:"minutes"`
}

type Charts struct {
	Completed int               `json:"completed" yaml:"completed"`
	Remaining int               `json:"remaining" yaml:"remaining"`
	Weekly    []focus.DayBucket `json:"weekly" yaml:"weekly"`
	Recent    []HistoryPoint    `json:"recent" yaml:"recent"`
}

func (p *Planner) Charts() Charts {
	counts := p.tasks.Counts()
	now := p.now()
	recent := p.history.Recent(recentHistoryLimit)
	points := make([]HistoryPoint, 0, len(recent))
	for _, e := range recent {
		points = append(points, HistoryPoint{
			Label:   e.Timestamp.In(now.Location()).Format(model.DateLayout),
			Minutes: e.Minutes,
		})
	}
	return Charts{
		Completed: counts.Completed,
		Remaining: counts.Remaining,
		Weekly:    p.history.WeeklyBuckets(now),
		Recent:    points,
	}
}

// Snapshot is every persisted document, as written by export.
type Snapshot struct {
	Tasks        []model.Task       `json:"tasks" yaml:"tasks"`
	Settings     model.Settings     `json:"settings" yaml:"settings"`
	Notes        string             `json:"notes" yaml:"notes"`
	Moods        []model.MoodEntry  `json:"moods" yaml:"moods"`
	Stats        model.Stats        `json:"stats" yaml:"stats"`
	Achievements model.Achievements `json:"achievements" yaml:"achievements"`
	FocusHistory []model.FocusEntry `json:"focusHistory" yaml:"focusHistory"`
}

func (p *Planner) Snapshot() Snapshot {
	return Snapshot{
		Tasks:        p.tasks.All(),
		Settings:     p.settings,
		Notes:        p.notes,
		Moods:        p.Moods(),
		Stats:        p.tracker.Stats(),
		Achievements: p.badges.State(),
		FocusHistory: p.history.Entries(),
	}
}
