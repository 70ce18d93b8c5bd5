package vmath

// Clamp restricts a normalized time to [0, 1]
func Clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseCubic is the symmetric cubic ease-in-out curve
// Slow start, fast middle, slow landing; EaseCubic(0)=0, EaseCubic(1)=1
func EaseCubic(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Lerp blends a toward b by t without clamping
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
