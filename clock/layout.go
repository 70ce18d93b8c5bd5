package clock

import (
	"time"

	"github.com/lixenwraith/clockgrid/grid"
)

// Frame dimensions, in clocks
const (
	Rows = 8
	Cols = 20
)

// DigitRow is the row offset shared by all four digit slots
const DigitRow = 1

// SeparatorRow and SeparatorCol place the separator between hours and minutes
const (
	SeparatorRow = 2
	SeparatorCol = 9
)

// Slot is one digit position of the HH:MM display
type Slot struct {
	Column int
	Digit  func(t time.Time) int
}

// Slots in display order: hour tens, hour units, minute tens, minute units
var Slots = [4]Slot{
	{Column: 1, Digit: func(t time.Time) int { return t.Hour() / 10 }},
	{Column: 5, Digit: func(t time.Time) int { return t.Hour() % 10 }},
	{Column: 11, Digit: func(t time.Time) int { return t.Minute() / 10 }},
	{Column: 15, Digit: func(t time.Time) int { return t.Minute() % 10 }},
}

// Ticks is the seconds track around the frame border, starting just right of
// the separator and running clockwise back to its left side
// Each second of the minute owns one position; the remaining seconds of the
// minute are spent morphing the digits
var Ticks = [...][2]int{
	{1, 10},
	{0, 10}, {0, 11}, {0, 12}, {0, 13}, {0, 14}, {0, 15}, {0, 16}, {0, 17}, {0, 18}, {0, 19},
	{1, 19}, {2, 19}, {3, 19}, {4, 19}, {5, 19}, {6, 19}, {7, 19},
	{7, 18}, {7, 17}, {7, 16}, {7, 15}, {7, 14}, {7, 13}, {7, 12}, {7, 11}, {7, 10},
	{6, 10}, {6, 9},
	{7, 9}, {7, 8}, {7, 7}, {7, 6}, {7, 5}, {7, 4}, {7, 3}, {7, 2}, {7, 1}, {7, 0},
	{6, 0}, {5, 0}, {4, 0}, {3, 0}, {2, 0}, {1, 0},
	{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}, {0, 6}, {0, 7}, {0, 8}, {0, 9},
	{1, 9},
}

// TransitionStart is the second of the minute at which digits begin to morph
const TransitionStart = len(Ticks)

// TransitionSeconds is how long the morph lasts before the minute turns over
const TransitionSeconds = 60 - TransitionStart

// NewFrame allocates a blank full-size frame
func NewFrame() grid.Grid {
	return grid.New(Rows, Cols)
}
