package update

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/focus"
	"github.com/sandeepkv93/studyd/internal/model"
	"github.com/sandeepkv93/studyd/internal/planner"
	"github.com/sandeepkv93/studyd/internal/storage"
	"github.com/sandeepkv93/studyd/internal/tasks"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	p, err := planner.Open(context.Background(), storage.NewMemoryStore(), planner.Options{
		Intn: func(int) int { return 0 },
	})
	if err != nil {
		t.Fatalf("open planner: %v", err)
	}
	return NewModel(p, Options{})
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		if r == ' ' {
			m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m, _ = send(t, m, runes(string(r)))
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected default view %q, got %q", ViewTasks, m.CurrentView)
	}
	if m.Tasks.Filter != tasks.FilterAll {
		t.Fatalf("expected filter all, got %q", m.Tasks.Filter)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Init() != nil {
		t.Fatalf("expected no init command")
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("2"))
	if m.CurrentView != ViewFocus {
		t.Fatalf("expected focus view, got %q", m.CurrentView)
	}
	m, _ = send(t, m, runes("4"))
	if m.CurrentView != ViewNotes {
		t.Fatalf("expected notes view, got %q", m.CurrentView)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected tab to wrap to tasks, got %q", m.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, SwitchViewMsg{View: ViewStats})
	if m.CurrentView != ViewStats {
		t.Fatalf("expected stats view, got %q", m.CurrentView)
	}
	m, _ = send(t, m, SwitchViewMsg{View: View("Unknown")})
	if m.CurrentView != ViewStats {
		t.Fatalf("expected view unchanged for unknown view, got %q", m.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	m, _ = send(t, m, AppErrorMsg{Err: errors.New("boom")})
	if !m.Status.IsError || m.LastError == nil {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
	m, _ = send(t, m, ClearStatusMsg{})
	if m.Status.Text != "" {
		t.Fatalf("expected cleared status, got %+v", m.Status)
	}
}

func TestQuickAddCreatesTask(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("a"))
	if !m.Tasks.Capturing {
		t.Fatalf("expected capture mode")
	}
	m = typeText(t, m, "Read chapter 3 p:high q")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Tasks.Capturing {
		t.Fatalf("expected capture mode to end")
	}
	items := m.planner.Tasks(tasks.FilterAll)
	if len(items) != 1 {
		t.Fatalf("expected one task, got %d", len(items))
	}
	if items[0].Text != "Read chapter 3 q" || items[0].Priority != model.PriorityHigh {
		t.Fatalf("unexpected task: %+v", items[0])
	}
	if m.SelectedTaskID != items[0].ID {
		t.Fatalf("expected new task selected")
	}
}

func TestQuickAddRejectsEmptyText(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("a"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Tasks.Capturing || !m.Status.IsError {
		t.Fatalf("expected capture to stay open with an error, got %+v", m.Status)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Tasks.Capturing {
		t.Fatalf("expected esc to cancel capture")
	}
}

func TestToggleAndDeleteSelectedTask(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("/"))
	m = typeText(t, m, "add Flashcards")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	task, err := m.planner.Task(m.SelectedTaskID)
	if err != nil || !task.Completed {
		t.Fatalf("expected selected task completed, got %+v (%v)", task, err)
	}

	m, _ = send(t, m, runes("d"))
	if got := len(m.planner.Tasks(tasks.FilterAll)); got != 0 {
		t.Fatalf("expected task deleted, %d left", got)
	}
	if m.SelectedTaskID != 0 {
		t.Fatalf("expected selection cleared, got %d", m.SelectedTaskID)
	}
}

func TestFilterAndSortKeys(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("f"))
	if m.Tasks.Filter != tasks.FilterToday {
		t.Fatalf("expected today filter, got %q", m.Tasks.Filter)
	}
	before := m.planner.Settings().SortMode
	m, _ = send(t, m, runes("s"))
	if m.planner.Settings().SortMode == before {
		t.Fatalf("expected sort mode to change from %q", before)
	}
}

func TestPaletteSetsTimerAndSwitchesView(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("/"))
	if !m.Palette.Active {
		t.Fatalf("expected palette active")
	}
	m = typeText(t, m, "timer 90")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Palette.Active {
		t.Fatalf("expected palette closed")
	}
	if m.CurrentView != ViewFocus {
		t.Fatalf("expected focus view, got %q", m.CurrentView)
	}
	if got := m.planner.Timer().Length; got != 90 {
		t.Fatalf("expected 90s session, got %d", got)
	}
}

func TestPaletteReportsParseErrors(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("/"))
	m = typeText(t, m, "bogus")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "bogus") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}
}

func TestFocusSessionCompletesThroughTicks(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("/"))
	m = typeText(t, m, "timer 2")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if cmd == nil {
		t.Fatalf("expected start to arm a tick")
	}
	gen := m.planner.Timer().Generation

	m, cmd = send(t, m, FocusTickMsg{Generation: gen})
	if cmd == nil || m.planner.Timer().Remaining != 1 {
		t.Fatalf("expected rearm with 1s left, got %d", m.planner.Timer().Remaining)
	}
	m, cmd = send(t, m, FocusTickMsg{Generation: gen})
	if cmd != nil {
		t.Fatalf("expected no rearm after completion")
	}
	if m.planner.Timer().State != focus.StateIdle {
		t.Fatalf("expected idle timer, got %q", m.planner.Timer().State)
	}
	if got := len(m.planner.History()); got != 1 {
		t.Fatalf("expected one history entry, got %d", got)
	}
	if len(m.Notifications) == 0 {
		t.Fatalf("expected completion notification")
	}
}

func TestStaleTickAfterPauseIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("2"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	gen := m.planner.Timer().Generation
	remaining := m.planner.Timer().Remaining

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.planner.Timer().State != focus.StatePaused {
		t.Fatalf("expected paused, got %q", m.planner.Timer().State)
	}
	m, cmd := send(t, m, FocusTickMsg{Generation: gen})
	if cmd != nil || m.planner.Timer().Remaining != remaining {
		t.Fatalf("expected stale tick ignored")
	}
}

func TestFocusLengthKeys(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("2"))
	start := m.planner.Timer().Length
	m, _ = send(t, m, runes("+"))
	if got := m.planner.Timer().Length; got != start+lengthStep {
		t.Fatalf("expected %d, got %d", start+lengthStep, got)
	}
	m, _ = send(t, m, runes("r"))
	if m.planner.Timer().Remaining != m.planner.Timer().Length {
		t.Fatalf("expected reset to full length")
	}
}

func TestNotesEditAndSave(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, runes("4"))
	m, _ = send(t, m, runes("e"))
	if !m.Notes.Editing {
		t.Fatalf("expected editing mode")
	}
	m.notesArea.SetValue("# Plan\n\n- review")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.Notes.Editing {
		t.Fatalf("expected editing to end")
	}
	if got := m.planner.Notes(); got != "# Plan\n\n- review" {
		t.Fatalf("unexpected notes %q", got)
	}
	if !strings.Contains(m.View(), "Plan") {
		t.Fatalf("expected rendered notes in view")
	}
}

func TestViewShowsTabsAndHelp(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	for _, want := range []string{"studyd", "1 Tasks", "4 Notes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
	m, _ = send(t, m, runes("?"))
	if !m.HelpVisible || !strings.Contains(m.View(), "commands:") {
		t.Fatalf("expected help panel")
	}
	m, _ = send(t, m, runes("3"))
	if !strings.Contains(m.View(), "badges:") {
		t.Fatalf("expected stats panel")
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.Quitting || cmd == nil {
		t.Fatalf("expected quit")
	}
	if m.View() != "" {
		t.Fatalf("expected empty view after quit")
	}
}
