// Package update is the bubbletea front end. It reads state through the
// planner accessors and changes it only through planner actions.
package update

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/studyd/internal/logging"
	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/planner"
	"github.com/sandeepkv93/studyd/internal/tasks"
)

type View string

const (
	ViewTasks View = "Tasks"
	ViewFocus View = "Focus"
	ViewStats View = "Stats"
	ViewNotes View = "Notes"
)

var viewOrder = []View{ViewTasks, ViewFocus, ViewStats, ViewNotes}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks string
	Focus string
	Stats string
	Notes string
	Help  string
	Quit  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type TasksState struct {
	Filter    tasks.Filter
	Cursor    int
	Capturing bool
	Input     string
}

type NotesState struct {
	Editing bool
}

type Options struct {
	Context context.Context
	Logger  *slog.Logger
}

type Model struct {
	CurrentView    View
	SelectedTaskID model.TaskID
	Tasks          TasksState
	Notes          NotesState
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	planner *planner.Planner
	ctx     context.Context
	log     *slog.Logger

	// Bubble components
	taskTable     table.Model
	quickAddInput textinput.Model
	commandInput  textinput.Model
	notesArea     textarea.Model
	notesViewport viewport.Model
	focusProgress progress.Model
	taskProgress  progress.Model
	helpModel     help.Model
	notesSource   string
	notesRendered string
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// FocusTickMsg is one elapsed timer second, armed for Generation.
type FocusTickMsg struct {
	Generation uint64
}

func NewModel(p *planner.Planner, opts Options) Model {
	m := Model{
		CurrentView: ViewTasks,
		Tasks:       TasksState{Filter: tasks.FilterAll},
		Keys: GlobalKeyMap{
			Tasks: "1",
			Focus: "2",
			Stats: "3",
			Notes: "4",
			Help:  "?",
			Quit:  "q",
		},
		planner: p,
		ctx:     opts.Context,
		log:     opts.Logger,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.log == nil {
		m.log = logging.Discard()
	}
	m.initBubbleComponents()
	m.absorbEvents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskTable = table.New(table.WithFocused(true), table.WithHeight(12))

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.Placeholder = "Read chapter 3 due:2026-03-01 p:high"
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.notesArea = textarea.New()
	m.notesArea.ShowLineNumbers = false
	m.notesArea.Placeholder = "Session notes (markdown)"
	m.notesArea.CharLimit = 0

	m.notesViewport = viewport.New(56, 14)

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(30))
	m.taskProgress = progress.New(progress.WithSolidFill("#4caf50"), progress.WithoutPercentage(), progress.WithWidth(30))

	m.helpModel = help.New()
}

// densityDimensions maps the font size setting to pane width, table height
// and notes editor height.
func densityDimensions(size model.FontSize, compact bool) (paneWidth int, tableHeight int, notesHeight int) {
	switch size {
	case model.FontSmall:
		paneWidth, tableHeight, notesHeight = 50, 14, 10
	case model.FontLarge:
		paneWidth, tableHeight, notesHeight = 70, 10, 14
	default:
		paneWidth, tableHeight, notesHeight = 58, 12, 12
	}
	if compact {
		tableHeight -= 4
	}
	return paneWidth, tableHeight, notesHeight
}

func (m *Model) syncBubbleData() {
	settings := m.planner.Settings()
	width, tableHeight, notesHeight := densityDimensions(settings.FontSize, settings.Compact)
	m.taskTable.SetHeight(tableHeight)
	m.notesArea.SetWidth(width - 4)
	m.notesArea.SetHeight(notesHeight)
	m.notesViewport.Width = width - 2
	m.notesViewport.Height = notesHeight + 2

	items := m.planner.Tasks(m.Tasks.Filter)
	if m.Tasks.Cursor >= len(items) {
		m.Tasks.Cursor = len(items) - 1
	}
	if m.Tasks.Cursor < 0 {
		m.Tasks.Cursor = 0
	}
	m.SelectedTaskID = 0
	if len(items) > 0 {
		m.SelectedTaskID = items[m.Tasks.Cursor].ID
	}

	cols, rows := taskTableData(items, settings, width)
	m.taskTable.SetRows(nil)
	m.taskTable.SetColumns(cols)
	m.taskTable.SetRows(rows)
	if len(rows) > 0 {
		m.taskTable.SetCursor(m.Tasks.Cursor)
	}

	m.quickAddInput.SetValue(m.Tasks.Input)
	m.commandInput.SetValue(m.Palette.Input)

	if notes := m.planner.Notes(); notes != m.notesSource || m.notesRendered == "" {
		m.notesSource = notes
		m.notesRendered = renderNotes(notes, width-4)
	}
	m.notesViewport.SetContent(m.notesRendered)
}

func taskTableData(items []model.Task, s model.Settings, width int) ([]table.Column, []table.Row) {
	textWidth := width - 6
	cols := []table.Column{{Title: "", Width: 3}}
	if s.ShowPriorities {
		cols = append(cols, table.Column{Title: "Pri", Width: 6})
		textWidth -= 8
	}
	if s.ShowDeadlines {
		cols = append(cols, table.Column{Title: "Due", Width: 10})
		textWidth -= 12
	}
	if !s.Compact {
		cols = append(cols, table.Column{Title: "Category", Width: 10})
		textWidth -= 12
	}
	cols = append(cols, table.Column{Title: "Task", Width: max(textWidth, 10)})

	rows := make([]table.Row, 0, len(items))
	for _, t := range items {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		row := table.Row{mark}
		if s.ShowPriorities {
			row = append(row, string(t.Priority))
		}
		if s.ShowDeadlines {
			row = append(row, deadlineLabel(t.Deadline))
		}
		if !s.Compact {
			row = append(row, t.Category)
		}
		row = append(row, t.Text)
		rows = append(rows, row)
	}
	return cols, rows
}

func deadlineLabel(d model.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

func formatTaskID(id model.TaskID) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(int64(id), 10)
}

func (m *Model) notify(title, body, level string) {
	if body == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{Title: title, Body: body, Level: level, At: time.Now()})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

// absorbEvents turns queued planner events into status text and toasts.
func (m *Model) absorbEvents() {
	for _, e := range m.planner.DrainEvents() {
		switch e.Kind {
		case planner.EventSessionCompleted:
			m.Status = StatusBar{Text: e.Message}
			m.notify("Focus", fmt.Sprintf("%s (%d min)", e.Message, e.Minutes), "info")
		case planner.EventBadgeEarned:
			m.notify("Achievement", e.Message, "info")
		case planner.EventWarning:
			m.Status = StatusBar{Text: e.Message, IsError: true}
			m.notify("Warning", e.Message, "warn")
		}
	}
}
