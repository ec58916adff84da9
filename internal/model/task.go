package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskID identifies a task. It is never a position in a list.
type TaskID int64

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Rank orders priorities high first; unknown values rank after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// ParsePriority reads user input. Empty means medium; anything outside
// high|medium|low is rejected. Stored documents are decoded without it, so a
// legacy value survives a load and sorts last.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if p == "" {
		return PriorityMedium, nil
	}
	if !p.IsValid() {
		return "", &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q, want high, medium or low", raw)}
	}
	return p, nil
}

const DefaultCategory = "general"

type Task struct {
	ID          TaskID     `json:"id" yaml:"id"`
	Text        string     `json:"text" yaml:"text"`
	Completed   bool       `json:"completed" yaml:"completed"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Deadline    Date       `json:"deadline" yaml:"deadline"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Category    string     `json:"category" yaml:"category"`
	Notes       string     `json:"notes" yaml:"notes"`
	Tags        []string   `json:"tags" yaml:"tags"`
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return &ValidationError{Field: "id", Message: "task id is required"}
	}
	if strings.TrimSpace(t.Text) == "" {
		return &ValidationError{Field: "text", Message: "task text is required"}
	}
	if t.CreatedAt.IsZero() {
		return &ValidationError{Field: "createdAt", Message: "task created_at is required"}
	}
	return nil
}

// ParseTags splits a comma separated tag list, dropping blanks.
func ParseTags(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
