package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/colourgrid/internal/colour"
	"github.com/jmylchreest/colourgrid/internal/grid"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	summaryStyle = lipgloss.NewStyle().MarginTop(1)
	cursorStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).MarginTop(1)
)

const helpText = "arrows/hjkl move • enter choose • esc back • q quit"

// View renders the current state of the model.
func (m Model) View() string {
	if m.chosen {
		return ""
	}

	var sections []string

	title := titleStyle.Render(fmt.Sprintf("colourgrid • depth %d of %d", m.grid.Depth(), m.geometry.MaxDepth()))
	sections = append(sections, title, "")

	sections = append(sections, m.renderGrid())

	cell := m.Cursor()
	sections = append(sections, summaryStyle.Render(fmt.Sprintf("%s\n%s", describeCell(cell), m.grid.Summary())))
	sections = append(sections, helpStyle.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderGrid() string {
	lines := make([]string, 0, len(m.cells))
	for r, row := range m.cells {
		var b strings.Builder
		for c, cell := range row {
			b.WriteString(renderCell(cell, r == m.row && c == m.column))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func renderCell(cell grid.Cell, highlighted bool) string {
	middle := cell.Middle()
	style := lipgloss.NewStyle().Background(lipgloss.Color(middle.RGB().Hex()))
	if !highlighted {
		return style.Render("  ")
	}
	return cursorStyle.Inherit(style).
		Foreground(lipgloss.Color(colour.Readable(middle).Hex())).
		Render("[]")
}

func describeCell(cell grid.Cell) string {
	if cell.IsSingleColour() {
		return fmt.Sprintf("#%s (row %d, column %d)", cell.First().Hex(), cell.Row(), cell.Column())
	}
	return fmt.Sprintf("#%s-#%s (row %d, column %d)", cell.First().Hex(), cell.Last().Hex(), cell.Row(), cell.Column())
}
