package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)
	case "home", "g":
		m.row, m.column = 0, 0
	case "end", "G":
		m.row, m.column = m.grid.RowCount()-1, m.grid.ColumnCount()-1
	case "enter", " ":
		if m.choose() {
			return m, tea.Quit
		}
	case "esc", "backspace":
		m.back()
	}

	return m, nil
}
