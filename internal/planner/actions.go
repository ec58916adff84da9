package planner

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/storage"
	"github.com/sandeepkv93/studyd/internal/tasks"
)

// Action is one command accepted by Dispatch.
type Action interface {
	Name() string
}

type AddTask struct {
	Text     string
	Deadline model.Date
	Priority model.Priority
	Category string
}

type ToggleTask struct{ ID model.TaskID }
type DeleteTask struct{ ID model.TaskID }

type EditTask struct {
	ID    model.TaskID
	Patch tasks.Patch
}

type SetSortMode struct{ Mode model.SortMode }
type SetFontSize struct{ Size model.FontSize }
type SetShowDeadlines struct{ Show bool }
type SetShowPriorities struct{ Show bool }
type SetCompact struct{ Compact bool }
type SetTimerLength struct{ Seconds int }
type StartTimer struct{}
type PauseTimer struct{}
type ResetTimer struct{}
type SaveNotes struct{ Text string }
type LogMood struct{ Mood string }
type PlaySound struct{ Sound string }
type ResetTasks struct{}
type ResetStats struct{}
type ResetAll struct{}

func (AddTask) Name() string           { return "add" }
func (ToggleTask) Name() string        { return "toggle" }
func (DeleteTask) Name() string        { return "delete" }
func (EditTask) Name() string          { return "edit" }
func (SetSortMode) Name() string       { return "sort" }
func (SetFontSize) Name() string       { return "font" }
func (SetShowDeadlines) Name() string  { return "deadlines" }
func (SetShowPriorities) Name() string { return "priorities" }
func (SetCompact) Name() string        { return "compact" }
func (SetTimerLength) Name() string    { return "timer" }
func (StartTimer) Name() string        { return "start" }
func (PauseTimer) Name() string        { return "pause" }
func (ResetTimer) Name() string        { return "reset" }
func (SaveNotes) Name() string         { return "notes" }
func (LogMood) Name() string           { return "mood" }
func (PlaySound) Name() string         { return "play" }
func (ResetTasks) Name() string        { return "reset-tasks" }
func (ResetStats) Name() string        { return "reset-stats" }
func (ResetAll) Name() string          { return "reset-all" }

type Result struct {
	Message string
	// Task is set by task actions that touched an existing or new task.
	Task *model.Task
	// Arm asks the caller to schedule a tick carrying Generation.
	Arm        bool
	Generation uint64
}

// Dispatch applies a. A validation error leaves the state untouched. Unknown
// task ids are ignored and reported in the message only. Storage failures are
// queued as warnings and never returned.
func (p *Planner) Dispatch(ctx context.Context, a Action) (Result, error) {
	p.log.Debug("dispatch", "action", a.Name())
	switch act := a.(type) {
	case AddTask:
		return p.addTask(ctx, act)
	case ToggleTask:
		task, ok, err := p.tasks.Toggle(ctx, act.ID)
		p.warn(err)
		if !ok {
			return Result{Message: fmt.Sprintf("no task %d", act.ID)}, nil
		}
		msg := "Task reopened"
		if task.Completed {
			msg = "Task completed"
		}
		return Result{Message: msg, Task: &task}, nil
	case DeleteTask:
		ok, err := p.tasks.Delete(ctx, act.ID)
		p.warn(err)
		if !ok {
			return Result{Message: fmt.Sprintf("no task %d", act.ID)}, nil
		}
		p.checkBadges(ctx)
		return Result{Message: "Task deleted"}, nil
	case EditTask:
		return p.editTask(ctx, act)
	case SetSortMode:
		if !act.Mode.IsValid() {
			return Result{}, &model.ValidationError{Field: "sortMode", Message: fmt.Sprintf("unknown sort mode %q", act.Mode)}
		}
		p.settings.SortMode = act.Mode
		p.saveSettings(ctx)
		return Result{Message: "Sorted by " + string(act.Mode)}, nil
	case SetFontSize:
		if !act.Size.IsValid() {
			return Result{}, &model.ValidationError{Field: "fontSize", Message: fmt.Sprintf("unknown font size %q", act.Size)}
		}
		p.settings.FontSize = act.Size
		p.saveSettings(ctx)
		return Result{Message: "Font size updated"}, nil
	case SetShowDeadlines:
		p.settings.ShowDeadlines = act.Show
		p.saveSettings(ctx)
		return Result{Message: "Deadlines " + onOff(act.Show)}, nil
	case SetShowPriorities:
		p.settings.ShowPriorities = act.Show
		p.saveSettings(ctx)
		return Result{Message: "Priorities " + onOff(act.Show)}, nil
	case SetCompact:
		p.settings.Compact = act.Compact
		p.saveSettings(ctx)
		return Result{Message: "Compact mode " + onOff(act.Compact)}, nil
	case SetTimerLength:
		if act.Seconds <= 0 {
			return Result{}, &model.ValidationError{Field: "timerLength", Message: "session length must be a positive number of seconds"}
		}
		p.settings.TimerLength = act.Seconds
		p.timer.SetLength(act.Seconds)
		p.saveSettings(ctx)
		return Result{Message: "Session length updated"}, nil
	case StartTimer:
		gen, armed := p.timer.Start()
		if !armed {
			return Result{Message: "Timer already running", Generation: gen}, nil
		}
		p.log.Info("focus started", "remaining", p.timer.Remaining())
		return Result{Message: "Focus started", Arm: true, Generation: gen}, nil
	case PauseTimer:
		if !p.timer.Pause() {
			return Result{Message: "Timer is not running"}, nil
		}
		return Result{Message: "Timer paused"}, nil
	case ResetTimer:
		p.timer.Reset()
		return Result{Message: "Timer reset"}, nil
	case SaveNotes:
		p.notes = act.Text
		p.warn(p.save(ctx, storage.KeyNotes, p.notes))
		return Result{Message: "Notes saved"}, nil
	case LogMood:
		return p.logMood(ctx, act)
	case PlaySound:
		if err := p.sound.Play(ctx, act.Sound); err != nil {
			p.warn(err)
			return Result{Message: "Could not play " + act.Sound}, nil
		}
		return Result{Message: "Playing " + act.Sound}, nil
	case ResetTasks:
		p.warn(p.tasks.Reset(ctx))
		return Result{Message: "All tasks removed"}, nil
	case ResetStats:
		p.warn(p.tracker.Reset(ctx))
		return Result{Message: "Stats reset"}, nil
	case ResetAll:
		return p.resetAll(ctx)
	default:
		return Result{}, fmt.Errorf("planner: unsupported action %T", a)
	}
}

func (p *Planner) addTask(ctx context.Context, act AddTask) (Result, error) {
	task, err := p.tasks.Add(ctx, tasks.Draft{
		Text:     act.Text,
		Deadline: act.Deadline,
		Priority: act.Priority,
		Category: act.Category,
	})
	if model.IsValidation(err) {
		return Result{}, err
	}
	p.warn(err)
	p.log.Info("task added", "id", int64(task.ID), "priority", string(task.Priority))
	p.checkBadges(ctx)
	return Result{Message: "Task added", Task: &task}, nil
}

func (p *Planner) editTask(ctx context.Context, act EditTask) (Result, error) {
	task, ok, err := p.tasks.Edit(ctx, act.ID, act.Patch)
	if model.IsValidation(err) {
		return Result{}, err
	}
	p.warn(err)
	if !ok {
		return Result{Message: fmt.Sprintf("no task %d", act.ID)}, nil
	}
	return Result{Message: "Task updated", Task: &task}, nil
}

func (p *Planner) logMood(ctx context.Context, act LogMood) (Result, error) {
	if act.Mood == "" {
		return Result{}, &model.ValidationError{Field: "mood", Message: "mood is required"}
	}
	p.moods = append(p.moods, model.MoodEntry{Mood: act.Mood, Timestamp: p.now()})
	p.warn(p.save(ctx, storage.KeyMoods, p.moods))
	return Result{Message: "Mood saved: " + act.Mood}, nil
}

// resetAll clears every document, badges included, and puts the settings back
// to their defaults.
func (p *Planner) resetAll(ctx context.Context) (Result, error) {
	p.timer.Reset()
	p.warn(p.tasks.Reset(ctx))
	p.warn(p.tracker.Reset(ctx))
	p.warn(p.badges.Reset(ctx))
	p.warn(p.history.Reset(ctx))
	p.notes = ""
	p.warn(p.save(ctx, storage.KeyNotes, p.notes))
	p.moods = make([]model.MoodEntry, 0)
	p.warn(p.save(ctx, storage.KeyMoods, p.moods))
	p.settings = model.DefaultSettings()
	p.timer.SetLength(p.settings.TimerLength)
	p.saveSettings(ctx)
	p.quote = ""
	p.log.Info("all data reset")
	return Result{Message: "Everything reset"}, nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
