package renderer

import (
	"image"
	"image/draw"
	"math"
	"unicode"

	"golang.org/x/image/math/fixed"

	"github.com/manasp21/Simulations/internal/director"
	"github.com/manasp21/Simulations/internal/scene"
	"github.com/manasp21/Simulations/internal/typeset"
)

// drawText lays the runs out along the baseline. While a text is being
// written, glyphs appear left to right and the current one fades in.
func (r *Renderer) drawText(dst *image.RGBA, t *scene.Text, st director.State) error {
	full, partial := reveal(st.Progress, t.Glyphs())

	penX := (t.Origin.X - r.frame.Min.X) * r.scale
	drawn := 0
	for _, run := range t.Runs {
		em := t.Em * run.Factor() * r.scale
		face, err := r.faces.Face(em)
		if err != nil {
			return err
		}
		baseline := (r.frame.Max.Y - t.Origin.Y - run.Rise*t.Em) * r.scale

		for _, g := range typeset.Glyphs(face, run.Text) {
			penX += fixedToFloat(g.Kern())
			visible := !unicode.IsSpace(g.Rune())

			opacity := 0.0
			if visible {
				switch {
				case drawn < full:
					opacity = 1
				case drawn == full:
					opacity = partial
				}
				drawn++
			}

			if opacity > 0 {
				dot := fixed.Point26_6{X: floatToFixed(penX), Y: floatToFixed(baseline)}
				dr, mask, maskp, _, ok := face.Glyph(dot, g.Rune())
				if ok {
					c := scene.WithOpacity(t.Color, opacity*st.Opacity)
					draw.DrawMask(dst, dr, image.NewUniform(c), image.Point{}, mask, maskp, draw.Over)
				}
			}
			penX += fixedToFloat(g.Advance())
		}
	}
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
