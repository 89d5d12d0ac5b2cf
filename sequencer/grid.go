package sequencer

import (
	"fmt"
	"strings"
)

const (
	Rows       = 16 // one per instrument
	Steps      = 16 // sixteenth-note beats per loop
	Resolution = 4  // ticks per quarter note
)

// Grid is the on/off state of every cell, indexed [row][step].
// It is a value type: copying it takes a snapshot.
type Grid [Rows][Steps]bool

// GridSource is anything that can hand out a grid snapshot
type GridSource interface {
	Snapshot() Grid
}

// NewGrid validates a dynamically sized cell matrix and copies it into a Grid
func NewGrid(cells [][]bool) (Grid, error) {
	var g Grid
	if len(cells) != Rows {
		return g, invalidArgument(fmt.Sprintf("grid has %d rows, want %d", len(cells), Rows))
	}
	for i, row := range cells {
		if len(row) != Steps {
			return g, invalidArgument(fmt.Sprintf("grid row %d has %d steps, want %d", i, len(row), Steps))
		}
		copy(g[i][:], row)
	}
	return g, nil
}

// ParseRows builds a grid from 16 strings of 16 characters, 'x' for an
// active cell and '.' for an inactive one.
func ParseRows(rows []string) (Grid, error) {
	var g Grid
	if len(rows) != Rows {
		return g, invalidArgument(fmt.Sprintf("pattern has %d rows, want %d", len(rows), Rows))
	}
	for i, row := range rows {
		if len(row) != Steps {
			return g, invalidArgument(fmt.Sprintf("pattern row %d has %d steps, want %d", i, len(row), Steps))
		}
		for j := 0; j < Steps; j++ {
			switch row[j] {
			case 'x', 'X':
				g[i][j] = true
			case '.', '-':
			default:
				return g, invalidArgument(fmt.Sprintf("pattern row %d step %d: unexpected %q", i, j, row[j]))
			}
		}
	}
	return g, nil
}

// Rows returns the grid in the ParseRows text form
func (g Grid) Rows() []string {
	rows := make([]string, Rows)
	for i := range g {
		var b strings.Builder
		for _, on := range g[i] {
			if on {
				b.WriteByte('x')
			} else {
				b.WriteByte('.')
			}
		}
		rows[i] = b.String()
	}
	return rows
}

// Snapshot returns a copy of the grid
func (g Grid) Snapshot() Grid {
	return g
}

// Active reports whether cell (row, step) is on
func (g Grid) Active(row, step int) bool {
	if !inBounds(row, step) {
		return false
	}
	return g[row][step]
}

// Count returns the number of active cells
func (g Grid) Count() int {
	n := 0
	for i := range g {
		for _, on := range g[i] {
			if on {
				n++
			}
		}
	}
	return n
}

// Set turns a cell on or off; out of range cells are ignored
func (g *Grid) Set(row, step int, on bool) {
	if inBounds(row, step) {
		g[row][step] = on
	}
}

// Toggle flips a cell and returns its new state
func (g *Grid) Toggle(row, step int) bool {
	if !inBounds(row, step) {
		return false
	}
	g[row][step] = !g[row][step]
	return g[row][step]
}

// Clear turns every cell off
func (g *Grid) Clear() {
	*g = Grid{}
}

func inBounds(row, step int) bool {
	return row >= 0 && row < Rows && step >= 0 && step < Steps
}
