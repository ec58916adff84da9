package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/commands"
	"github.com/sandeepkv93/studyd/internal/planner"
	"github.com/sandeepkv93/studyd/internal/views"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	items := m.planner.Tasks(m.Tasks.Filter)
	switch msg.String() {
	case "j", "down":
		if m.Tasks.Cursor < len(items)-1 {
			m.Tasks.Cursor++
		}
	case "k", "up":
		if m.Tasks.Cursor > 0 {
			m.Tasks.Cursor--
		}
	case "a", "n":
		m.Tasks.Capturing = true
		m.Tasks.Input = ""
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "new task"}
	case " ", "x", "enter":
		if m.SelectedTaskID != 0 {
			m, _ = m.dispatch(planner.ToggleTask{ID: m.SelectedTaskID})
		}
	case "d", "delete":
		if m.SelectedTaskID != 0 {
			m, _ = m.dispatch(planner.DeleteTask{ID: m.SelectedTaskID})
		}
	case "f":
		m.Tasks.Filter = m.Tasks.Filter.Next()
		m.Tasks.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", m.Tasks.Filter)}
	case "s":
		m, _ = m.dispatch(planner.SetSortMode{Mode: m.planner.Settings().SortMode.Next()})
	case "c":
		m, _ = m.dispatch(planner.SetCompact{Compact: !m.planner.Settings().Compact})
	}
	return m
}

// handleQuickAddKey edits the quick-add line. Enter submits it through the
// add command so due:, p: and cat: tokens work here too.
func (m Model) handleQuickAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Tasks.Capturing = false
		m.Tasks.Input = ""
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "add cancelled"}
	case "enter":
		_, res, err := commands.Execute(m.ctx, m.planner, "add "+m.Tasks.Input)
		m, _ = m.applyResult(res, err)
		if err == nil {
			m.Tasks.Capturing = false
			m.Tasks.Input = ""
			m.quickAddInput.Blur()
		}
	case "backspace":
		if r := []rune(m.Tasks.Input); len(r) > 0 {
			m.Tasks.Input = string(r[:len(r)-1])
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.Tasks.Input += string(msg.Runes)
		case tea.KeySpace:
			m.Tasks.Input += " "
		}
	}
	return m
}

func (m Model) renderTasksView() string {
	settings := m.planner.Settings()
	return views.RenderTasksPanel(views.TasksPanelData{
		Filter:    string(m.Tasks.Filter),
		Sort:      string(settings.SortMode),
		TableView: m.taskTable.View(),
		AddView:   m.quickAddInput.View(),
		Capturing: m.Tasks.Capturing,
		Empty:     len(m.taskTable.Rows()) == 0,
	})
}

func (m Model) renderTaskDetail() string {
	if m.SelectedTaskID == 0 {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	t, err := m.planner.Task(m.SelectedTaskID)
	if err != nil {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	return views.RenderTaskDetail(views.TaskDetailData{
		ID:        formatTaskID(t.ID),
		Text:      t.Text,
		Priority:  string(t.Priority),
		Deadline:  t.Deadline.String(),
		Category:  t.Category,
		Tags:      t.Tags,
		Created:   t.CreatedAt.Local().Format("2006-01-02 15:04"),
		Completed: t.Completed,
		NotesView: t.Notes,
	})
}
