package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TasksPanelData struct {
	Filter    string
	Sort      string
	TableView string
	AddView   string
	Capturing bool
	Empty     bool
}

type TaskDetailData struct {
	ID        string
	Text      string
	Priority  string
	Deadline  string
	Category  string
	Tags      []string
	Created   string
	Completed bool
	NotesView string
}

type FocusPanelData struct {
	State        string
	Timer        string
	Length       string
	ProgressView string
	ProgressPct  int
	Quote        string
	Recent       []BarData
}

type BarData struct {
	Label string
	Value int
}

type BadgeData struct {
	Title  string
	Earned bool
}

type StatsPanelData struct {
	Total        int
	Completed    int
	Percent      int
	ProgressView string
	Streak       int
	FocusMinutes int
	Badges       []BadgeData
	Upcoming     []string
	Weekly       []BarData
}

type NotesPanelData struct {
	Editing    bool
	EditorView string
	Preview    string
	Moods      []string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	Commands    []string
	HelpView    string
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	quoteStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("13"))
)

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tasks") + "\n")
	b.WriteString(fmt.Sprintf("filter: %s | sort: %s\n", data.Filter, data.Sort))
	if data.Capturing {
		b.WriteString(data.AddView + "\n")
		b.WriteString(dimStyle.Render("tokens: due:YYYY-MM-DD p:high|medium|low cat:name") + "\n")
	} else {
		b.WriteString(dimStyle.Render("actions: [a]add [space]toggle [d]delete [f]filter [s]sort") + "\n")
	}
	if data.Empty {
		b.WriteString("\n(no tasks)")
		return b.String()
	}
	b.WriteString(data.TableView)
	return strings.TrimRight(b.String(), "\n")
}

func RenderTaskDetail(data TaskDetailData) string {
	if data.ID == "" {
		return "details:\n(no selection)"
	}
	state := "open"
	if data.Completed {
		state = doneStyle.Render("done")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("details") + "\n")
	b.WriteString(fmt.Sprintf("id: %s\n", data.ID))
	b.WriteString(fmt.Sprintf("task: %s\n", data.Text))
	b.WriteString(fmt.Sprintf("state: %s\n", state))
	b.WriteString(fmt.Sprintf("priority: %s\n", data.Priority))
	b.WriteString(fmt.Sprintf("deadline: %s\n", orDash(data.Deadline)))
	b.WriteString(fmt.Sprintf("category: %s\n", orDash(data.Category)))
	b.WriteString(fmt.Sprintf("tags: %s\n", orDash(strings.Join(data.Tags, ", "))))
	b.WriteString(fmt.Sprintf("created: %s\n", data.Created))
	if data.NotesView != "" {
		b.WriteString("\n" + data.NotesView)
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("focus") + "\n")
	b.WriteString(fmt.Sprintf("state: %s\n", strings.ToUpper(data.State)))
	b.WriteString(fmt.Sprintf("timer: %s / %s\n", data.Timer, data.Length))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(dimStyle.Render("actions: [space]start/pause [r]reset [+/-]length 5m") + "\n")
	if data.Quote != "" {
		b.WriteString("\n" + quoteStyle.Render(fmt.Sprintf("%q", data.Quote)) + "\n")
	}
	b.WriteString("\nrecent sessions (min):\n")
	if len(data.Recent) == 0 {
		b.WriteString("  (none yet)")
		return b.String()
	}
	b.WriteString(RenderBars(data.Recent, 24))
	return strings.TrimRight(b.String(), "\n")
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("progress") + "\n")
	b.WriteString(fmt.Sprintf("tasks: %d | done: %d | remaining: %d\n", data.Total, data.Completed, data.Total-data.Completed))
	b.WriteString(fmt.Sprintf("%s %d%%\n", data.ProgressView, data.Percent))
	b.WriteString(fmt.Sprintf("streak: %d day(s) | focus: %d min\n", data.Streak, data.FocusMinutes))
	b.WriteString("\nbadges:\n")
	for _, badge := range data.Badges {
		mark := "[ ]"
		if badge.Earned {
			mark = doneStyle.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, badge.Title))
	}
	b.WriteString("\nupcoming deadlines:\n")
	if len(data.Upcoming) == 0 {
		b.WriteString("  No upcoming deadlines\n")
	}
	for _, u := range data.Upcoming {
		b.WriteString("  " + u + "\n")
	}
	b.WriteString("\nlast 7 days (min):\n")
	b.WriteString(RenderBars(data.Weekly, 24))
	return strings.TrimRight(b.String(), "\n")
}

func RenderNotesPanel(data NotesPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("notes") + "\n")
	if data.Editing {
		b.WriteString(dimStyle.Render("[ctrl+s]save [esc]cancel") + "\n")
		b.WriteString(data.EditorView)
		return b.String()
	}
	b.WriteString(dimStyle.Render("actions: [e]edit, /mood <name> to log a mood") + "\n")
	if strings.TrimSpace(data.Preview) == "" {
		b.WriteString("(empty)\n")
	} else {
		b.WriteString(data.Preview + "\n")
	}
	if len(data.Moods) > 0 {
		b.WriteString("\nrecent moods:\n")
		for _, m := range data.Moods {
			b.WriteString("  " + m + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderBars draws one horizontal bar per row scaled to the largest value.
func RenderBars(rows []BarData, width int) string {
	maxVal := 0
	labelWidth := 0
	for _, r := range rows {
		maxVal = max(maxVal, r.Value)
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}
	var b strings.Builder
	for _, r := range rows {
		n := 0
		if maxVal > 0 {
			n = r.Value * width / maxVal
		}
		if r.Value > 0 && n == 0 {
			n = 1
		}
		b.WriteString(fmt.Sprintf("  %-*s %s %d\n", labelWidth, r.Label, barStyle.Render(strings.Repeat("█", n)), r.Value))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("help (%s):\n", strings.ToLower(data.CurrentView)))
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if len(data.Commands) > 0 {
		b.WriteString("\n\ncommands:\n")
		for _, c := range data.Commands {
			b.WriteString("  /" + c + "\n")
		}
	}
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	return strings.TrimRight(b.String(), "\n")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
