// Package glyph turns the clock font's pixel bitmaps into grids of hour-hand
// positions
//
// A bitmap of R rows and C columns compiles to an (R+1)x(C+1) grid: one clock
// per pixel corner. The hand at each corner points along whichever edge of the
// glyph passes through it, so a field of clocks draws the outline of the digit.
package glyph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/clockgrid/grid"
)

var (
	ErrEmptyGlyph  = errors.New("glyph has no pixels")
	ErrRaggedGlyph = errors.New("glyph rows differ in length")
	ErrBadPixel    = errors.New("glyph pixel must be 0 or 1")
)

// Pixels is a row-major binary bitmap; 1 is ink, 0 is paper
type Pixels [][]uint8

// At returns the pixel at (i, j); anything off the bitmap reads as paper
func (p Pixels) At(i, j int) uint8 {
	if i < 0 || i >= len(p) || j < 0 || j >= len(p[i]) {
		return 0
	}
	return p[i][j]
}

// Parse reads a bitmap written as rows of '0'/'1' separated by newlines or '/'
// Surrounding whitespace on each row is ignored
func Parse(s string) (Pixels, error) {
	lines := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '/'
	})

	var pixels Pixels
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]uint8, 0, len(line))
		for _, r := range line {
			switch r {
			case '0':
				row = append(row, 0)
			case '1':
				row = append(row, 1)
			default:
				return nil, fmt.Errorf("%w: %q in row %d", ErrBadPixel, r, len(pixels))
			}
		}
		if len(pixels) > 0 && len(row) != len(pixels[0]) {
			return nil, fmt.Errorf("%w: row %d has %d pixels, expected %d",
				ErrRaggedGlyph, len(pixels), len(row), len(pixels[0]))
		}
		pixels = append(pixels, row)
	}

	if len(pixels) == 0 {
		return nil, ErrEmptyGlyph
	}
	return pixels, nil
}

// MustParse is Parse for built-in glyphs; a malformed glyph is a programming error
func MustParse(s string) Pixels {
	p, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("glyph: %v", err))
	}
	return p
}

// Orientations classifies every corner of the bitmap
func Orientations(pixels Pixels) [][]Orientation {
	rows := len(pixels)
	cols := 0
	if rows > 0 {
		cols = len(pixels[0])
	}

	out := make([][]Orientation, rows+1)
	for i := 0; i <= rows; i++ {
		out[i] = make([]Orientation, cols+1)
		for j := 0; j <= cols; j++ {
			out[i][j] = Classify(
				pixels.At(i-1, j-1), pixels.At(i-1, j),
				pixels.At(i, j-1), pixels.At(i, j),
			)
		}
	}
	return out
}

// Compile converts a bitmap to its corner grid of hour-hand positions
func Compile(pixels Pixels) grid.Grid {
	orientations := Orientations(pixels)

	g := make(grid.Grid, len(orientations))
	for i, row := range orientations {
		g[i] = make([]float64, len(row))
		for j, o := range row {
			g[i][j] = o.Hours()
		}
	}
	return g
}
