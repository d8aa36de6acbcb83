// Package intensity holds the simplified fluorescence signal plotted in the
// quantum beats scene. The formula is kept exactly as drawn on screen:
// I(t) = exp(-0.5 t) * (1 + cos(2 t)) with t wrapped into one period.
package intensity

import "math"

const (
	// Period is the length of the looped time window, in seconds.
	Period = 10.0
	// Decay is the exponential damping rate (gamma).
	Decay = 0.5
	// Omega is the beat angular frequency (Delta E / hbar), in rad/s.
	Omega = 2.0
)

// Wrap maps t onto [0, Period).
func Wrap(t float64) float64 {
	w := math.Mod(t, Period)
	if w < 0 {
		w += Period
	}
	return w
}

// Raw evaluates the curve without wrapping. It is what the plotted graph uses
// across the axis range.
func Raw(t float64) float64 {
	return math.Exp(-Decay*t) * (1 + math.Cos(Omega*t))
}

// At returns I(t) for any t, wrapped into a single period.
func At(t float64) float64 {
	return Raw(Wrap(t))
}

// Sample returns n+1 evenly spaced points over [from, to], both ends included.
func Sample(from, to float64, n int) (xs, ys []float64) {
	if n < 1 {
		n = 1
	}
	xs = make([]float64, n+1)
	ys = make([]float64, n+1)
	step := (to - from) / float64(n)
	for i := 0; i <= n; i++ {
		x := from + step*float64(i)
		if i == n {
			x = to
		}
		xs[i] = x
		ys[i] = Raw(x)
	}
	return xs, ys
}
