package render

import "math"

const brailleBase = 0x2800

// brailleBits maps a dot at (x, y) within a 2x4 cell to its braille bit
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a dot bitmap backed by terminal braille cells, 2x4 dots per cell
type Canvas struct {
	cols, rows int
	cells      []rune
}

// NewCanvas creates a canvas of cols x rows terminal cells
func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{
		cols:  cols,
		rows:  rows,
		cells: make([]rune, cols*rows),
	}
}

// Size returns the dot dimensions
func (c *Canvas) Size() (int, int) {
	return c.cols * 2, c.rows * 4
}

// Clear removes all dots
func (c *Canvas) Clear() {
	clear(c.cells)
}

// Set turns on the dot at (x, y); dots off the canvas are ignored
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return
	}
	c.cells[(y/4)*c.cols+x/2] |= brailleBits[y%4][x%2]
}

// Get reports whether the dot at (x, y) is on
func (c *Canvas) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return false
	}
	return c.cells[(y/4)*c.cols+x/2]&brailleBits[y%4][x%2] != 0
}

// Cell returns the braille rune for a terminal cell, or 0 when it has no dots
func (c *Canvas) Cell(col, row int) rune {
	bits := c.cells[row*c.cols+col]
	if bits == 0 {
		return 0
	}
	return brailleBase + bits
}

// Line draws from (x0, y0) to (x1, y1), endpoints rounded to the dot grid
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	ax, ay := int(math.Round(x0)), int(math.Round(y0))
	bx, by := int(math.Round(x1)), int(math.Round(y1))

	dx := abs(bx - ax)
	dy := -abs(by - ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}

	err := dx + dy
	for {
		c.Set(ax, ay)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ax += sx
		}
		if e2 <= dx {
			err += dx
			ay += sy
		}
	}
}

// Circle draws a ring of radius r around (cx, cy)
func (c *Canvas) Circle(cx, cy, r float64) {
	steps := max(int(2*math.Pi*r*2), 8)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(int(math.Round(cx+r*math.Cos(a))), int(math.Round(cy+r*math.Sin(a))))
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
