// Package clock composes full display frames for an instant in time
//
// A frame is an 8x20 grid of hour-hand positions: four digits and a separator
// drawn from the compiled glyph font, a sweeping seconds track along the border,
// and a global fade applied near startup and shutdown.
package clock

import (
	"math"
	"time"

	"github.com/lixenwraith/clockgrid/glyph"
	"github.com/lixenwraith/clockgrid/grid"
	"github.com/lixenwraith/clockgrid/vmath"
)

// Composer builds frames; the zero value composes without any fade
type Composer struct {
	// FadeSeconds is the length of the fade-in after start and the fade-out
	// before stop
	FadeSeconds float64
}

// NewComposer creates a composer with the given fade duration
func NewComposer(fadeSeconds float64) *Composer {
	return &Composer{FadeSeconds: fadeSeconds}
}

// Progress returns how far the digits have morphed toward the next minute
func Progress(date time.Time) float64 {
	seconds := float64(date.UnixMilli()%60000) / 1000
	if seconds < 0 {
		seconds += 60
	}
	return vmath.Clamp((seconds - float64(TransitionStart)) / float64(TransitionSeconds))
}

// Compose draws the unfaded frame for date
func Compose(date time.Time) grid.Grid {
	progress := Progress(date)
	next := date.Add(time.Minute)

	frame := NewFrame()
	grid.Draw(frame, glyph.Separator(), SeparatorRow, SeparatorCol)

	for _, slot := range Slots {
		from := glyph.Digit(slot.Digit(date))
		to := glyph.Digit(slot.Digit(next))
		grid.Draw(frame, grid.Interpolate(from, to, progress), DigitRow, slot.Column)
	}

	drawTicks(frame, date)
	return frame
}

// drawTicks sets every seconds-track hand to the time it last passed
// Positions ahead of the current second still show the previous minute, so
// the newest hand marks the second and the track reads as a trailing sweep
func drawTicks(frame grid.Grid, date time.Time) {
	hours := float64(date.Hour())
	second := date.Second()

	for delay, pos := range Ticks {
		minutes := float64(date.Minute()) + float64(delay)/60
		if delay >= second {
			minutes--
		}
		frame[pos[0]][pos[1]] = hours + minutes/60
	}
}

// GridForTime returns the frame for date
//
// elapsed is the signed time from the logical start: positive values within
// the fade window fade in from blank, negative values within it fade out to
// blank, and an elapsed of exactly zero is fully blank.
func (c *Composer) GridForTime(date time.Time, elapsed time.Duration) grid.Grid {
	frame := Compose(date)

	fade := c.FadeSeconds * 1000
	ms := float64(elapsed) / float64(time.Millisecond)
	if math.Abs(ms) >= fade {
		return frame
	}

	// Blending onto blank can land a hand on 12 rather than 0
	if ms == 0 {
		return NewFrame()
	}
	if ms > 0 {
		return grid.Interpolate(NewFrame(), frame, ms/fade)
	}
	return grid.Interpolate(frame, NewFrame(), 1+ms/fade)
}
