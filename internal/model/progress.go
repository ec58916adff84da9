package model

import "time"

type Stats struct {
	CurrentStreak     int  `json:"currentStreak" yaml:"currentStreak"`
	LastStudyDate     Date `json:"lastStudyDate" yaml:"lastStudyDate"`
	TotalFocusMinutes int  `json:"totalFocusMinutes" yaml:"totalFocusMinutes"`
}

type Achievements struct {
	FirstTask      bool `json:"firstTask" yaml:"firstTask"`
	FiveTasks      bool `json:"fiveTasks" yaml:"fiveTasks"`
	ThreeDayStreak bool `json:"threeDayStreak" yaml:"threeDayStreak"`
}

type Badge string

const (
	BadgeFirstTask      Badge = "first_task"
	BadgeFiveTasks      Badge = "five_tasks"
	BadgeThreeDayStreak Badge = "three_day_streak"
)

func (b Badge) Title() string {
	switch b {
	case BadgeFirstTask:
		return "First Task!"
	case BadgeFiveTasks:
		return "5 Tasks Created!"
	case BadgeThreeDayStreak:
		return "3 Day Streak!"
	default:
		return string(b)
	}
}

type FocusEntry struct {
	Minutes   int       `json:"minutes" yaml:"minutes"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

type MoodEntry struct {
	Mood      string    `json:"mood" yaml:"mood"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
