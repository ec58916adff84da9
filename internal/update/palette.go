package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		return m.executePaletteCommand()
	case "backspace":
		if r := []rune(m.Palette.Input); len(r) > 0 {
			m.Palette.Input = string(r[:len(r)-1])
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.Palette.Input += string(msg.Runes)
		case tea.KeySpace:
			m.Palette.Input += " "
		}
	}
	return m, nil
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()
	cmd, res, err := commands.Execute(m.ctx, m.planner, raw)
	if err == nil {
		switch cmd.Type {
		case commands.TypeAdd, commands.TypeToggle, commands.TypeDelete, commands.TypeEdit, commands.TypeSort:
			m.CurrentView = ViewTasks
		case commands.TypeTimer, commands.TypeStart, commands.TypePause, commands.TypeReset:
			m.CurrentView = ViewFocus
		case commands.TypeMood:
			m.CurrentView = ViewNotes
		}
	}
	return m.applyResult(res, err)
}
