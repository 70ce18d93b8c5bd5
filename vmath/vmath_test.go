package vmath

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{3.5, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEaseCubic(t *testing.T) {
	if EaseCubic(0) != 0 {
		t.Errorf("EaseCubic(0) = %v, want 0", EaseCubic(0))
	}
	if EaseCubic(1) != 1 {
		t.Errorf("EaseCubic(1) = %v, want 1", EaseCubic(1))
	}
	if !approxEqual(EaseCubic(0.5), 0.5) {
		t.Errorf("EaseCubic(0.5) = %v, want 0.5", EaseCubic(0.5))
	}
	if !approxEqual(EaseCubic(0.25), 0.0625) {
		t.Errorf("EaseCubic(0.25) = %v, want 0.0625", EaseCubic(0.25))
	}

	// Symmetric around the midpoint
	for i := 0; i <= 20; i++ {
		x := float64(i) / 20
		if !approxEqual(EaseCubic(x)+EaseCubic(1-x), 1) {
			t.Errorf("EaseCubic not symmetric at %v", x)
		}
	}

	// Monotonic
	prev := -1.0
	for i := 0; i <= 100; i++ {
		v := EaseCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("EaseCubic decreased at step %d: %v < %v", i, v, prev)
		}
		prev = v
	}
}

func TestShortestArc(t *testing.T) {
	tests := []struct {
		name             string
		from, to         float64
		wantFrom, wantTo float64
	}{
		{"direct forward", 1, 3, 1, 3},
		{"direct backward", 9, 6, 9, 6},
		{"wrap forward", 11, 1, 11, 13},
		{"wrap backward", 1, 11, 13, 11},
		{"exact half turn", 0, 6, 0, 6},
		{"reduces input", 14, 15, 2, 3},
		{"blank to horizontal", 0, 9.25, 12, 9.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, to := ShortestArc(tt.from, tt.to)
			if !approxEqual(f, tt.wantFrom) || !approxEqual(to, tt.wantTo) {
				t.Errorf("ShortestArc(%v, %v) = (%v, %v), want (%v, %v)",
					tt.from, tt.to, f, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestShortestArcNeverExceedsHalfTurn(t *testing.T) {
	for a := 0.0; a < HoursPerTurn; a += 0.25 {
		for b := 0.0; b < HoursPerTurn; b += 0.25 {
			f, to := ShortestArc(a, b)
			if math.Abs(to-f) > HalfTurn {
				t.Fatalf("ShortestArc(%v, %v) travels %v hours", a, b, math.Abs(to-f))
			}
		}
	}
}

func TestInterpolateHoursFixedPoint(t *testing.T) {
	for _, x := range []float64{0, 3, 5.75, 6.25, 9.25, 11.99} {
		for _, tm := range []float64{-1, 0, 0.3, 0.5, 1, 2} {
			if got := InterpolateHours(x, x, tm); got != x {
				t.Errorf("InterpolateHours(%v, %v, %v) = %v, want %v", x, x, tm, got, x)
			}
		}
	}
}

func TestInterpolateHoursEndpoints(t *testing.T) {
	for a := 0.0; a < HoursPerTurn; a += 0.75 {
		for b := 0.0; b < HoursPerTurn; b += 0.75 {
			start := InterpolateHours(a, b, 0)
			if !approxEqual(math.Mod(start, HoursPerTurn), a) {
				t.Errorf("InterpolateHours(%v, %v, 0) = %v, want %v", a, b, start, a)
			}
			end := InterpolateHours(a, b, 1)
			if !approxEqual(math.Mod(end, HoursPerTurn), b) {
				t.Errorf("InterpolateHours(%v, %v, 1) = %v, want %v", a, b, end, b)
			}
		}
	}
}

func TestInterpolateHoursStaggeredStart(t *testing.T) {
	// A quarter-turn move has speedup sqrt(2) and waits until t = 1 - 1/sqrt(2)
	wait := 1 - 1/math.Sqrt2
	if got := InterpolateHours(0, 3, wait-0.01); got != 0 {
		t.Errorf("short move started early: %v", got)
	}
	if got := InterpolateHours(0, 3, wait+0.05); got <= 0 {
		t.Errorf("short move did not start after its delay: %v", got)
	}

	// A half-turn move starts at once
	if got := InterpolateHours(0, 6, 0.05); got <= 0 {
		t.Errorf("half-turn move did not start immediately: %v", got)
	}
}

func TestInterpolateHoursStaysOnArc(t *testing.T) {
	// 11 -> 1 crosses twelve rather than sweeping backward through six
	for i := 0; i <= 10; i++ {
		v := InterpolateHours(11, 1, float64(i)/10)
		if v < 11-epsilon || v > 13+epsilon {
			t.Fatalf("step %d left the short arc: %v", i, v)
		}
	}
}
