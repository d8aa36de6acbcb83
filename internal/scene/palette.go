package scene

import (
	"fmt"
	"image/color"
	"strings"
)

// Colour names used by the scene. Values follow the classic 3Blue1Brown palette.
var palette = map[string]color.NRGBA{
	"white":  {0xFF, 0xFF, 0xFF, 0xFF},
	"black":  {0x00, 0x00, 0x00, 0xFF},
	"blue":   {0x58, 0xC4, 0xDD, 0xFF},
	"red":    {0xFC, 0x62, 0x55, 0xFF},
	"yellow": {0xFF, 0xFF, 0x00, 0xFF},
	"green":  {0x83, 0xC1, 0x67, 0xFF},
	"purple": {0x9A, 0x72, 0xAC, 0xFF},
	"gray":   {0x88, 0x88, 0x88, 0xFF},
}

// Color resolves a palette name or a #RRGGBB string.
func Color(name string) (color.NRGBA, error) {
	if c, ok := palette[strings.ToLower(name)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(name, "#")
	var r, g, b uint8
	if len(hex) == 6 {
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err == nil {
			return color.NRGBA{r, g, b, 0xFF}, nil
		}
	}
	return color.NRGBA{}, fmt.Errorf("unknown colour %q", name)
}

// MustColor is Color for names known at compile time.
func MustColor(name string) color.NRGBA {
	c, err := Color(name)
	if err != nil {
		panic(err)
	}
	return c
}

// WithOpacity scales the alpha of c by o in [0, 1].
func WithOpacity(c color.NRGBA, o float64) color.NRGBA {
	if o <= 0 {
		c.A = 0
		return c
	}
	if o < 1 {
		c.A = uint8(float64(c.A)*o + 0.5)
	}
	return c
}
