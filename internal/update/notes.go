package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/planner"
	"github.com/sandeepkv93/studyd/internal/views"
)

const recentMoods = 5

func (m Model) handleNotesKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "e", "enter":
		m.Notes.Editing = true
		m.notesArea.SetValue(m.planner.Notes())
		m.notesArea.Focus()
		m.Status = StatusBar{Text: "editing notes"}
	case "j", "down":
		m.notesViewport.LineDown(1)
	case "k", "up":
		m.notesViewport.LineUp(1)
	}
	return m
}

func (m Model) handleNotesEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Notes.Editing = false
		m.notesArea.Blur()
		m.Status = StatusBar{Text: "edit cancelled"}
		return m, nil
	case "ctrl+s":
		text := m.notesArea.Value()
		m.Notes.Editing = false
		m.notesArea.Blur()
		return m.dispatch(planner.SaveNotes{Text: text})
	}
	var cmd tea.Cmd
	m.notesArea, cmd = m.notesArea.Update(msg)
	return m, cmd
}

func (m Model) renderNotesView() string {
	moods := m.planner.Moods()
	if len(moods) > recentMoods {
		moods = moods[len(moods)-recentMoods:]
	}
	lines := make([]string, 0, len(moods))
	for i := len(moods) - 1; i >= 0; i-- {
		lines = append(lines, fmt.Sprintf("%s  %s", moods[i].Timestamp.Local().Format("2006-01-02 15:04"), moods[i].Mood))
	}
	return views.RenderNotesPanel(views.NotesPanelData{
		Editing:    m.Notes.Editing,
		EditorView: m.notesArea.View(),
		Preview:    m.notesViewport.View(),
		Moods:      lines,
	})
}

func renderNotes(notes string, width int) string {
	if notes == "" {
		return ""
	}
	return views.RenderMarkdown(notes, width)
}
