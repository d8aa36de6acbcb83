package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/manasp21/Simulations/internal/scene"
)

// path collects polygons for one fill. Every polygon is normalised to the
// same winding so overlapping pieces (segment quads, round joins) merge
// instead of cancelling out.
type path struct {
	r *Renderer
}

func (r *Renderer) beginPath() path {
	r.raster.Reset(r.width, r.height)
	return path{r: r}
}

// fill draws the accumulated shape in c.
func (p path) fill(dst *image.RGBA, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	p.r.raster.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// polygon adds a closed polygon given in scene units.
func (p path) polygon(pts []scene.Vec) {
	if len(pts) < 3 {
		return
	}
	px := make([][2]float32, len(pts))
	area := 0.0
	for i, v := range pts {
		x, y := p.r.toPixel(v)
		px[i] = [2]float32{x, y}
	}
	for i := range px {
		j := (i + 1) % len(px)
		area += float64(px[i][0]*px[j][1] - px[j][0]*px[i][1])
	}
	if area < 0 {
		for i, j := 0, len(px)-1; i < j; i, j = i+1, j-1 {
			px[i], px[j] = px[j], px[i]
		}
	}
	p.r.raster.MoveTo(px[0][0], px[0][1])
	for _, q := range px[1:] {
		p.r.raster.LineTo(q[0], q[1])
	}
	p.r.raster.ClosePath()
}

// disc adds a filled circle.
func (p path) disc(c scene.Vec, radius float64) {
	n := int(math.Ceil(radius * p.r.scale * 2))
	if n < 12 {
		n = 12
	}
	if n > 64 {
		n = 64
	}
	pts := make([]scene.Vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = scene.Vec{X: c.X + radius*math.Cos(a), Y: c.Y + radius*math.Sin(a)}
	}
	p.polygon(pts)
}

// segment adds a quad of the given width between a and b.
func (p path) segment(a, b scene.Vec, width float64) {
	n := b.Sub(a).Unit().Perp().Mul(width / 2)
	if n == (scene.Vec{}) {
		return
	}
	p.polygon([]scene.Vec{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
}

// stroke adds a polyline with round joins and caps.
func (p path) stroke(pts []scene.Vec, width float64) {
	if len(pts) == 0 {
		return
	}
	for i := 1; i < len(pts); i++ {
		p.segment(pts[i-1], pts[i], width)
	}
	for _, v := range pts {
		p.disc(v, width/2)
	}
}

// tip adds a triangular arrow head whose point sits at end.
func (p path) tip(end, dir scene.Vec, length float64) {
	if length <= 0 {
		return
	}
	dir = dir.Unit()
	base := end.Sub(dir.Mul(length))
	half := dir.Perp().Mul(length / 2)
	p.polygon([]scene.Vec{end, base.Add(half), base.Sub(half)})
}
