// Package tui provides the interactive terminal colour picker.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/colourgrid/internal/colour"
	"github.com/jmylchreest/colourgrid/internal/grid"
)

// Model is the Bubbletea state of the picker. The user starts on the first
// grid and descends one grid per choice until a single colour is picked.
type Model struct {
	geometry *grid.Geometry
	grid     *grid.Grid
	cells    [][]grid.Cell
	history  []*grid.Grid
	row      int
	column   int

	selected  colour.Colour
	chosen    bool
	cancelled bool
	err       error
}

// NewModel constructs a picker positioned on the first grid of geometry.
func NewModel(geometry *grid.Geometry) Model {
	m := Model{geometry: geometry}
	m.show(geometry.First())
	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the picked colour, if the user picked one.
func (m Model) Selected() (colour.Colour, bool) {
	return m.selected, m.chosen
}

// Cancelled reports whether the user quit without picking.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Err returns the error that stopped the picker, if any.
func (m Model) Err() error {
	return m.err
}

// Grid returns the grid being shown.
func (m Model) Grid() *grid.Grid {
	return m.grid
}

// Cursor returns the highlighted cell.
func (m Model) Cursor() grid.Cell {
	return m.cells[m.row][m.column]
}

// show replaces the grid being displayed and puts the cursor top-left.
func (m *Model) show(g *grid.Grid) {
	m.grid = g
	m.cells = make([][]grid.Cell, g.RowCount())
	for cell := range g.Cells() {
		m.cells[cell.Row()] = append(m.cells[cell.Row()], cell)
	}
	m.row, m.column = 0, 0
}

func (m *Model) move(dRow, dColumn int) {
	m.row = min(max(m.row+dRow, 0), m.grid.RowCount()-1)
	m.column = min(max(m.column+dColumn, 0), m.grid.ColumnCount()-1)
}

// choose descends into the highlighted cell, or picks it on a leaf grid.
// It reports whether the picker is finished.
func (m *Model) choose() bool {
	cell := m.Cursor()
	if !m.grid.HasSubgrids() {
		m.selected = cell.First()
		m.chosen = true
		return true
	}

	sub, err := m.grid.Subgrid(cell.First())
	if err != nil {
		m.err = err
		return true
	}
	m.history = append(m.history, m.grid)
	m.show(sub)
	return false
}

// back returns to the parent grid with the cursor on the cell the current
// grid was opened from.
func (m *Model) back() {
	if len(m.history) == 0 {
		return
	}
	child := m.grid
	parent := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]

	m.show(parent)
	if cell, ok := parent.Locate(child.FirstColour()); ok {
		m.row, m.column = cell.Row(), cell.Column()
	}
}
