package glyph

import (
	"fmt"

	"github.com/lixenwraith/clockgrid/grid"
)

// Font bitmaps, 3 pixels wide; digits are 5 rows, the separator 3
var digitBitmaps = [10]string{
	"111/101/101/101/111",
	"001/001/001/001/001",
	"111/001/111/100/111",
	"111/001/111/001/111",
	"101/101/111/001/001",
	"111/100/111/001/111",
	"111/100/111/101/111",
	"111/001/001/001/001",
	"111/101/111/101/111",
	"111/101/111/001/111",
}

const separatorBitmap = "1/0/1"

// Compiled once at startup, read-only afterward
var (
	digitGrids    [10]grid.Grid
	separatorGrid grid.Grid
)

func init() {
	for i, s := range digitBitmaps {
		digitGrids[i] = Compile(MustParse(s))
	}
	separatorGrid = Compile(MustParse(separatorBitmap))
}

// Digit returns the compiled grid for a decimal digit
// The grid is shared and must not be modified
func Digit(n int) grid.Grid {
	if n < 0 || n > 9 {
		panic(fmt.Sprintf("glyph: digit %d out of range", n))
	}
	return digitGrids[n]
}

// Separator returns the compiled hour/minute separator grid
// The grid is shared and must not be modified
func Separator() grid.Grid {
	return separatorGrid
}
