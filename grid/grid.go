// Package grid holds rectangular arrays of hour-hand positions
//
// Each cell is the target of one clock's hour hand, expressed in clock hours
// (0 up to 12, fractional). Zero doubles as the blank cell.
package grid

import "github.com/lixenwraith/clockgrid/vmath"

// Grid is a row-major array of hour values
type Grid [][]float64

// New allocates a zeroed grid
func New(rows, cols int) Grid {
	g := make(Grid, rows)
	cells := make([]float64, rows*cols)
	for i := range g {
		g[i], cells = cells[:cols:cols], cells[cols:]
	}
	return g
}

// Rows returns the number of rows
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the width of the first row, 0 for an empty grid
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the cell at (row, col), 0 when out of range
func (g Grid) At(row, col int) float64 {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return 0
	}
	return g[row][col]
}

// Clone returns a deep copy
func (g Grid) Clone() Grid {
	c := New(g.Rows(), g.Cols())
	for i, row := range g {
		copy(c[i], row)
	}
	return c
}

// Equal reports whether both grids have identical shape and cells
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(other[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Draw stamps source into target with its top-left corner at (row, col)
// Target cells are overwritten; source cells landing outside target are dropped
func Draw(target, source Grid, row, col int) {
	for i, sourceRow := range source {
		r := row + i
		if r < 0 || r >= len(target) {
			continue
		}
		for j, cell := range sourceRow {
			c := col + j
			if c < 0 || c >= len(target[r]) {
				continue
			}
			target[r][c] = cell
		}
	}
}

// Interpolate blends two equally shaped grids cell by cell along the short
// arc of each dial; the result is a new grid
func Interpolate(from, to Grid, t float64) Grid {
	out := make(Grid, len(from))
	for i, row := range from {
		out[i] = make([]float64, len(row))
		for j, cell := range row {
			out[i][j] = vmath.InterpolateHours(cell, to[i][j], t)
		}
	}
	return out
}
