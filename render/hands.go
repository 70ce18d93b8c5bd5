// Package render draws frames of hour values as fields of analog clocks
//
// Every cell value encodes both hands: the whole value is the hour hand's
// position on a 12-hour dial and its fractional part is the minute hand's
// position within the hour. Digit cells hold whole-ish glyph angles, so only
// their hour hand carries meaning; seconds-track cells hold hour+minute/60 and
// read as a real time of day.
package render

import "math"

// HandAngles converts a cell value into clockwise rotations from 12 o'clock,
// in degrees within [0, 360)
func HandAngles(value float64) (hourDeg, minuteDeg float64) {
	hours := math.Mod(value, 12)
	if hours < 0 {
		hours += 12
	}
	fraction := value - math.Floor(value)
	return hours / 12 * 360, fraction * 360
}

// handTip returns the end of a hand of length l pointing at deg, for a
// y-down coordinate system centered on (cx, cy)
func handTip(cx, cy, l, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return cx + l*math.Sin(rad), cy - l*math.Cos(rad)
}
