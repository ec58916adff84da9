package model

import (
	"fmt"
	"strings"
)

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

func (f FontSize) IsValid() bool {
	switch f {
	case FontSmall, FontMedium, FontLarge:
		return true
	default:
		return false
	}
}

type SortMode string

const (
	SortAdded    SortMode = "added"
	SortDeadline SortMode = "deadline"
	SortPriority SortMode = "priority"
)

func (s SortMode) IsValid() bool {
	switch s {
	case SortAdded, SortDeadline, SortPriority:
		return true
	default:
		return false
	}
}

// Next cycles added -> deadline -> priority -> added.
func (s SortMode) Next() SortMode {
	switch s {
	case SortAdded:
		return SortDeadline
	case SortDeadline:
		return SortPriority
	default:
		return SortAdded
	}
}

func ParseSortMode(raw string) (SortMode, error) {
	s := SortMode(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", &ValidationError{Field: "sortMode", Message: fmt.Sprintf("unknown sort mode %q", raw)}
	}
	return s, nil
}

func ParseFontSize(raw string) (FontSize, error) {
	f := FontSize(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", &ValidationError{Field: "fontSize", Message: fmt.Sprintf("unknown font size %q", raw)}
	}
	return f, nil
}

const DefaultTimerLength = 1500

type Settings struct {
	FontSize       FontSize `json:"fontSize" yaml:"fontSize"`
	SortMode       SortMode `json:"sortMode" yaml:"sortMode"`
	ShowDeadlines  bool     `json:"showDeadlines" yaml:"showDeadlines"`
	ShowPriorities bool     `json:"showPriorities" yaml:"showPriorities"`
	TimerLength    int      `json:"timerLength" yaml:"timerLength"`
	Compact        bool     `json:"compact" yaml:"compact"`
}

func DefaultSettings() Settings {
	return Settings{
		FontSize:       FontMedium,
		SortMode:       SortAdded,
		ShowDeadlines:  true,
		ShowPriorities: true,
		TimerLength:    DefaultTimerLength,
		Compact:        false,
	}
}

// Normalize repairs values loaded from an older or hand edited document.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if !s.FontSize.IsValid() {
		s.FontSize = def.FontSize
	}
	if !s.SortMode.IsValid() {
		s.SortMode = def.SortMode
	}
	if s.TimerLength <= 0 {
		s.TimerLength = def.TimerLength
	}
	return s
}
