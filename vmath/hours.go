package vmath

import "math"

// Clock-face constants for hour values
const (
	HoursPerTurn = 12.0
	HalfTurn     = HoursPerTurn / 2
)

// ShortestArc reduces both hour values into one turn and lifts one of them
// by a full turn when the direct path would be longer than half a turn
// The sign of the inputs is kept by the reduction, matching math.Mod
func ShortestArc(from, to float64) (float64, float64) {
	from = math.Mod(from, HoursPerTurn)
	to = math.Mod(to, HoursPerTurn)

	if from < to {
		if to-from > HalfTurn {
			from += HoursPerTurn
		}
	} else if from-to > HalfTurn {
		to += HoursPerTurn
	}
	return from, to
}

// InterpolateHours moves an hour hand from one position to another along the
// shorter arc of the dial
//
// Hands with short distances to travel start late and move slowly; hands with
// long distances start immediately. All hands land together at t=1:
//
//	speedup = sqrt(6 / |to-from|)
//	t'      = clamp(t*speedup - (speedup-1))
//	result  = from + easeCubic(t') * (to-from)
func InterpolateHours(from, to, t float64) float64 {
	from, to = ShortestArc(from, to)
	if from == to {
		return from
	}

	speedup := math.Sqrt(HalfTurn / math.Abs(to-from))
	delay := speedup - 1
	t = Clamp(t*speedup - delay)

	return from + EaseCubic(t)*(to-from)
}
