package tasks

import (
	"math"
	"sort"
	"strings"

	"github.com/sandeepkv93/studyd/internal/model"
)

type Filter string

const (
	FilterAll          Filter = "all"
	FilterToday        Filter = "today"
	FilterHighPriority Filter = "high priority"
	FilterCompleted    Filter = "completed"
)

// ParseFilter accepts the labels shown on the filter buttons. Anything it
// does not recognise behaves like FilterAll.
func ParseFilter(raw string) Filter {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "today":
		return FilterToday
	case "high priority", "high", "high-priority":
		return FilterHighPriority
	case "completed", "done":
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Next cycles through the filters in button order.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterToday
	case FilterToday:
		return FilterHighPriority
	case FilterHighPriority:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// List returns a sorted, filtered copy. today is the current local date used
// by FilterToday.
func (r *Repository) List(mode model.SortMode, filter Filter, today model.Date) []model.Task {
	out := Sort(r.items, mode)
	return Apply(out, filter, today)
}

// Sort returns a copy of in ordered by mode. Ties keep their input order.
func Sort(in []model.Task, mode model.SortMode) []model.Task {
	out := cloneTasks(in)
	switch mode {
	case model.SortDeadline:
		sort.SliceStable(out, func(i, j int) bool {
			return deadlineKey(out[i]) < deadlineKey(out[j])
		})
	case model.SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// deadlineKey sorts missing deadlines after every real date.
func deadlineKey(t model.Task) string {
	if t.Deadline.IsZero() {
		return "9999-12-31~"
	}
	return string(t.Deadline)
}

func Apply(in []model.Task, filter Filter, today model.Date) []model.Task {
	var keep func(model.Task) bool
	switch filter {
	case FilterToday:
		keep = func(t model.Task) bool { return !t.Deadline.IsZero() && t.Deadline == today }
	case FilterHighPriority:
		keep = func(t model.Task) bool { return t.Priority == model.PriorityHigh }
	case FilterCompleted:
		keep = func(t model.Task) bool { return t.Completed }
	default:
		return in
	}
	out := make([]model.Task, 0, len(in))
	for _, t := range in {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Upcoming returns up to n open tasks that have a deadline, soonest first.
func (r *Repository) Upcoming(n int) []model.Task {
	open := make([]model.Task, 0)
	for _, t := range r.items {
		if t.Completed || t.Deadline.IsZero() {
			continue
		}
		open = append(open, t)
	}
	open = Sort(open, model.SortDeadline)
	if n >= 0 && len(open) > n {
		open = open[:n]
	}
	return open
}

type Counts struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	Remaining int `json:"remaining" yaml:"remaining"`
}

// Percent is the rounded completion percentage, 0 for an empty list.
func (c Counts) Percent() int {
	if c.Total == 0 {
		return 0
	}
	return int(math.Round(float64(c.Completed) / float64(c.Total) * 100))
}

func (r *Repository) Counts() Counts {
	c := Counts{Total: len(r.items)}
	for _, t := range r.items {
		if t.Completed {
			c.Completed++
		}
	}
	c.Remaining = c.Total - c.Completed
	return c
}
