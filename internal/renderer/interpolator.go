package renderer

import (
	"math"

	"github.com/manasp21/Simulations/internal/scene"
)

// reveal splits write progress over n glyphs into the number of fully drawn
// glyphs and the opacity of the glyph being written.
func reveal(progress float64, n int) (full int, partial float64) {
	if progress >= 1 {
		return n, 0
	}
	if progress <= 0 || n == 0 {
		return 0, 0
	}
	shown := progress * float64(n)
	full = int(math.Floor(shown))
	return full, shown - float64(full)
}

// grow returns the point a fraction t of the way from a to b.
func grow(a, b scene.Vec, t float64) scene.Vec {
	return a.Lerp(b, clamp01(t))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
