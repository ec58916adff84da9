// Package commands parses the palette and command line grammar into planner
// actions.
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/planner"
	"github.com/sandeepkv93/studyd/internal/tasks"
)

type Type string

const (
	TypeAdd        Type = "add"
	TypeToggle     Type = "toggle"
	TypeDelete     Type = "delete"
	TypeEdit       Type = "edit"
	TypeSort       Type = "sort"
	TypeTimer      Type = "timer"
	TypeStart      Type = "start"
	TypePause      Type = "pause"
	TypeReset      Type = "reset"
	TypeFont       Type = "font"
	TypeCompact    Type = "compact"
	TypeDeadlines  Type = "deadlines"
	TypePriorities Type = "priorities"
	TypeMood       Type = "mood"
	TypePlay       Type = "play"
	TypeResetTasks Type = "reset-tasks"
	TypeResetStats Type = "reset-stats"
	TypeResetAll   Type = "reset-all"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type Command struct {
	Type   Type
	Raw    string
	Action planner.Action
}

// Usage lists the grammar, one line per command, for help screens.
var Usage = []string{
	"add <text> [due:YYYY-MM-DD] [p:high|medium|low] [cat:name]",
	"toggle <id>",
	"delete <id>",
	"edit <id> text|notes|tags|priority|deadline|category <value>",
	"sort added|deadline|priority",
	"timer <seconds|duration>",
	"start | pause | reset",
	"font small|medium|large",
	"compact|deadlines|priorities on|off",
	"mood <name>",
	"play <sound file>",
	"reset-tasks | reset-stats | reset-all",
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := Type(strings.ToLower(parts[0]))
	args := parts[1:]

	var (
		action planner.Action
		err    error
	)
	switch head {
	case TypeAdd:
		action, err = parseAdd(args)
	case TypeToggle:
		action, err = parseID(head, args, func(id model.TaskID) planner.Action { return planner.ToggleTask{ID: id} })
	case TypeDelete:
		action, err = parseID(head, args, func(id model.TaskID) planner.Action { return planner.DeleteTask{ID: id} })
	case TypeEdit:
		action, err = parseEdit(args)
	case TypeSort:
		action, err = parseSort(args)
	case TypeTimer:
		action, err = parseTimer(args)
	case TypeStart:
		action = planner.StartTimer{}
	case TypePause:
		action = planner.PauseTimer{}
	case TypeReset:
		action = planner.ResetTimer{}
	case TypeFont:
		action, err = parseFont(args)
	case TypeCompact:
		action, err = parseSwitch(head, args, func(on bool) planner.Action { return planner.SetCompact{Compact: on} })
	case TypeDeadlines:
		action, err = parseSwitch(head, args, func(on bool) planner.Action { return planner.SetShowDeadlines{Show: on} })
	case TypePriorities:
		action, err = parseSwitch(head, args, func(on bool) planner.Action { return planner.SetShowPriorities{Show: on} })
	case TypeMood:
		if len(args) == 0 {
			return Command{}, invalid("mood requires a name")
		}
		action = planner.LogMood{Mood: strings.Join(args, " ")}
	case TypePlay:
		if len(args) != 1 {
			return Command{}, invalid("play requires one sound file name")
		}
		action = planner.PlaySound{Sound: args[0]}
	case TypeResetTasks:
		action = planner.ResetTasks{}
	case TypeResetStats:
		action = planner.ResetStats{}
	case TypeResetAll:
		action = planner.ResetAll{}
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
	if err != nil {
		return Command{}, err
	}
	return Command{Type: head, Raw: input, Action: action}, nil
}

func invalid(msg string) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: msg}
}

// parseAdd treats due:, p: and cat: tokens as options anywhere in the line;
// every other word is part of the task text.
func parseAdd(args []string) (planner.Action, error) {
	act := planner.AddTask{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			d, err := model.ParseDate(arg[len("due:"):])
			if err != nil {
				return nil, invalid(err.Error())
			}
			act.Deadline = d
		case strings.HasPrefix(lower, "p:"):
			p, err := model.ParsePriority(arg[len("p:"):])
			if err != nil {
				return nil, invalid(err.Error())
			}
			act.Priority = p
		case strings.HasPrefix(lower, "cat:"):
			act.Category = strings.TrimSpace(arg[len("cat:"):])
		default:
			words = append(words, arg)
		}
	}
	act.Text = strings.TrimSpace(strings.Join(words, " "))
	if act.Text == "" {
		return nil, invalid("add requires a task text")
	}
	return act, nil
}

func parseTaskID(raw string) (model.TaskID, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid(fmt.Sprintf("invalid task id %q", raw))
	}
	return model.TaskID(id), nil
}

func parseID(head Type, args []string, build func(model.TaskID) planner.Action) (planner.Action, error) {
	if len(args) != 1 {
		return nil, invalid(fmt.Sprintf("%s requires a task id", head))
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return nil, err
	}
	return build(id), nil
}

func parseEdit(args []string) (planner.Action, error) {
	if len(args) < 2 {
		return nil, invalid("edit requires a task id and a field")
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return nil, err
	}
	value := strings.Join(args[2:], " ")
	var patch tasks.Patch
	switch field := strings.ToLower(args[1]); field {
	case "text":
		patch.Text = &value
	case "notes":
		patch.Notes = &value
	case "tags":
		tags := model.ParseTags(value)
		patch.Tags = &tags
	case "priority":
		p, err := model.ParsePriority(value)
		if err != nil {
			return nil, invalid(err.Error())
		}
		patch.Priority = &p
	case "deadline", "due":
		if value == "none" || value == "-" {
			value = ""
		}
		d, err := model.ParseDate(value)
		if err != nil {
			return nil, invalid(err.Error())
		}
		patch.Deadline = &d
	case "category", "cat":
		patch.Category = &value
	default:
		return nil, invalid(fmt.Sprintf("unknown field %q", field))
	}
	return planner.EditTask{ID: id, Patch: patch}, nil
}

func parseSort(args []string) (planner.Action, error) {
	if len(args) != 1 {
		return nil, invalid("sort requires added, deadline or priority")
	}
	mode, err := model.ParseSortMode(args[0])
	if err != nil {
		return nil, invalid(err.Error())
	}
	return planner.SetSortMode{Mode: mode}, nil
}

func parseFont(args []string) (planner.Action, error) {
	if len(args) != 1 {
		return nil, invalid("font requires small, medium or large")
	}
	size, err := model.ParseFontSize(args[0])
	if err != nil {
		return nil, invalid(err.Error())
	}
	return planner.SetFontSize{Size: size}, nil
}

// parseTimer accepts whole seconds ("1500") or a Go duration ("25m").
func parseTimer(args []string) (planner.Action, error) {
	if len(args) != 1 {
		return nil, invalid("timer requires a length")
	}
	secs, err := ParseSeconds(args[0])
	if err != nil {
		return nil, err
	}
	return planner.SetTimerLength{Seconds: secs}, nil
}

func ParseSeconds(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return 0, invalid("timer length must be positive")
		}
		return n, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < time.Second {
		return 0, invalid(fmt.Sprintf("invalid timer length %q", raw))
	}
	return int(d / time.Second), nil
}

func parseSwitch(head Type, args []string, build func(bool) planner.Action) (planner.Action, error) {
	if len(args) != 1 {
		return nil, invalid(fmt.Sprintf("%s requires on or off", head))
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes", "1":
		return build(true), nil
	case "off", "false", "no", "0":
		return build(false), nil
	default:
		return nil, invalid(fmt.Sprintf("%s requires on or off", head))
	}
}
