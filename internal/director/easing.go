package director

import (
	"fmt"
	"math"
)

// RateFunc maps linear animation progress in [0, 1] onto eased progress.
type RateFunc func(t float64) float64

// Linear leaves progress untouched.
func Linear(t float64) float64 {
	return clamp01(t)
}

// Smooth is a logistic ease-in-out normalised to hit 0 and 1 exactly.
func Smooth(t float64) float64 {
	const inflection = 10.0
	t = clamp01(t)
	err := sigmoid(-inflection / 2)
	return clamp01((sigmoid(inflection*(t-0.5)) - err) / (1 - 2*err))
}

// EaseInOutCubic applies smooth cubic easing
func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Rate function names accepted in scripts
const (
	RateLinear = "linear"
	RateSmooth = "smooth"
	RateCubic  = "cubic"
)

// rateFor resolves an animation's rate function. Without a name, Write
// reveals at a constant pace and everything else eases.
func rateFor(anim Animation) (RateFunc, error) {
	switch anim.Rate {
	case "":
		if anim.Kind == Write {
			return Linear, nil
		}
		return Smooth, nil
	case RateLinear:
		return Linear, nil
	case RateSmooth:
		return Smooth, nil
	case RateCubic:
		return EaseInOutCubic, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRate, anim.Rate)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
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

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
