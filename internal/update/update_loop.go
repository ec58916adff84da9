package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/planner"
	"github.com/sandeepkv93/studyd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help && m.Palette.Input == "" {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		if m.Tasks.Capturing {
			return m.handleQuickAddKey(typed), nil
		}
		if m.Notes.Editing {
			return m.handleNotesEditKey(typed)
		}

		switch keyStr := typed.String(); keyStr {
		case "/", ":":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			return m, nil
		case m.Keys.Stats:
			m.CurrentView = ViewStats
			return m, nil
		case m.Keys.Notes:
			m.CurrentView = ViewNotes
			return m, nil
		case "tab":
			m.CurrentView = nextView(m.CurrentView)
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewFocus:
			return m.handleFocusKey(typed)
		case ViewNotes:
			return m.handleNotesKey(typed), nil
		}
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick(typed)
	}
	return m, nil
}

// dispatch runs a and folds the outcome into the status bar. The returned
// command arms the next focus tick when the action started the timer.
func (m Model) dispatch(a planner.Action) (Model, tea.Cmd) {
	res, err := m.planner.Dispatch(m.ctx, a)
	return m.applyResult(res, err)
}

func (m Model) applyResult(res planner.Result, err error) (Model, tea.Cmd) {
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.log.Debug("action rejected", "err", err)
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	m.absorbEvents()
	if res.Arm {
		return m, focusTickCmd(res.Generation)
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	settings := m.planner.Settings()
	width, _, _ := densityDimensions(settings.FontSize, settings.Compact)

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskDetail()
	case ViewFocus:
		leftPane = m.renderFocusView()
	case ViewStats:
		leftPane = m.renderStatsView()
	case ViewNotes:
		leftPane = m.renderNotesView()
	}
	extra := joinNonEmpty(m.renderCommandPalette(), m.renderHelpIfVisible())
	rightPane = joinNonEmpty(rightPane, extra)

	tabs := make([]string, 0, len(viewOrder))
	active := 0
	for i, v := range viewOrder {
		tabs = append(tabs, fmt.Sprintf("%d %s", i+1, v))
		if v == m.CurrentView {
			active = i
		}
	}
	timer := m.planner.Timer()
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("studyd | %s | timer %s (%s)", m.planner.Today(), planner.FormatClock(timer.Remaining), timer.State),
		Tabs:         tabs,
		ActiveTab:    active,
		LeftPane:     leftPane,
		RightPane:    rightPane,
		PaneWidth:    width,
		StatusLine:   m.Status.Text,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s-%s views | tab next | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Notes, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func isKnownView(v View) bool {
	for _, known := range viewOrder {
		if v == known {
			return true
		}
	}
	return false
}

func nextView(v View) View {
	for i, known := range viewOrder {
		if v == known {
			return viewOrder[(i+1)%len(viewOrder)]
		}
	}
	return ViewTasks
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
