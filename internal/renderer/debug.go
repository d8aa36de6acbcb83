package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/manasp21/Simulations/internal/director"
)

// drawDebug prints the scene clock and the active step in the top-left corner.
func (r *Renderer) drawDebug(dst *image.RGBA, f director.Frame) {
	label := fmt.Sprintf("t=%06.3f", f.Time)
	for _, s := range r.timeline.Steps {
		if f.Time >= s.Start && f.Time < s.End {
			label = fmt.Sprintf("%s step %d %s", label, s.Index+1, s.Note)
			break
		}
	}

	face := basicfont.Face7x13
	width := font.MeasureString(face, label).Ceil()
	box := image.Rect(4, 4, 4+width+8, 4+face.Height+6)
	draw.Draw(dst, box, image.NewUniform(color.NRGBA{A: 0xB0}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(box.Min.X+4, box.Min.Y+3+face.Ascent),
	}
	d.DrawString(label)
}
