package scene

import (
	"image/color"
	"math"
)

// Range is an axis interval with its tick step.
type Range struct {
	Min, Max, Step float64
}

// Ticks lists the tick values from Min to Max inclusive.
func (r Range) Ticks() []float64 {
	if r.Step <= 0 {
		return nil
	}
	n := int(math.Floor((r.Max-r.Min)/r.Step + 1e-9))
	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, r.Min+float64(i)*r.Step)
	}
	return ticks
}

func (r Range) span() float64 { return r.Max - r.Min }

// Axes is a pair of perpendicular number lines. C2P maps data coordinates to
// scene coordinates.
type Axes struct {
	Name             string
	X, Y             Range
	XLength, YLength float64
	Center           Vec
	Color            color.NRGBA
	Width            float64
	TipLength        float64
}

// NewAxes builds axes centred on the origin. Lengths default to two units
// less than the frame in each direction.
func NewAxes(id string, x, y Range, frame Box, c color.NRGBA) *Axes {
	return &Axes{
		Name:      id,
		X:         x,
		Y:         y,
		XLength:   math.Round(frame.Width()) - 2,
		YLength:   math.Round(frame.Height()) - 2,
		Color:     c,
		Width:     AxisWidth,
		TipLength: 0.2,
	}
}

func (a *Axes) ID() string { return a.Name }
func (a *Axes) Kind() Kind { return KindAxes }

func (a *Axes) Bounds() Box {
	return BoxAround(a.Center, a.XLength+a.TipLength, a.YLength+a.TipLength)
}

func (a *Axes) Shift(d Vec) { a.Center = a.Center.Add(d) }

// C2P converts a data coordinate into a scene point.
func (a *Axes) C2P(x, y float64) Vec {
	left := a.Center.X - a.XLength/2
	bottom := a.Center.Y - a.YLength/2
	return Vec{
		X: left + (x-a.X.Min)/a.X.span()*a.XLength,
		Y: bottom + (y-a.Y.Min)/a.Y.span()*a.YLength,
	}
}

// XAxis returns the endpoints of the horizontal axis line, drawn at y = 0
// when zero is in range and at the bottom otherwise.
func (a *Axes) XAxis() (Vec, Vec) {
	y := clamp(0, a.Y.Min, a.Y.Max)
	return a.C2P(a.X.Min, y), a.C2P(a.X.Max, y)
}

// YAxis returns the endpoints of the vertical axis line.
func (a *Axes) YAxis() (Vec, Vec) {
	x := clamp(0, a.X.Min, a.X.Max)
	return a.C2P(x, a.Y.Min), a.C2P(x, a.Y.Max)
}

// Plot samples f across the x range and returns the curve in scene coordinates.
func (a *Axes) Plot(id string, f func(float64) float64, c color.NRGBA, samples int) *Graph {
	if samples < 2 {
		samples = 2
	}
	pts := make([]Vec, 0, samples+1)
	for i := 0; i <= samples; i++ {
		x := a.X.Min + a.X.span()*float64(i)/float64(samples)
		pts = append(pts, a.C2P(x, f(x)))
	}
	return &Graph{Name: id, Points: pts, Color: c, Width: GraphWidth}
}

// Graph is a sampled curve.
type Graph struct {
	Name   string
	Points []Vec
	Color  color.NRGBA
	Width  float64
}

func (g *Graph) ID() string { return g.Name }
func (g *Graph) Kind() Kind { return KindGraph }

func (g *Graph) Bounds() Box {
	if len(g.Points) == 0 {
		return Box{}
	}
	b := Box{Min: g.Points[0], Max: g.Points[0]}
	for _, p := range g.Points[1:] {
		b = b.Union(Box{Min: p, Max: p})
	}
	return b
}

func (g *Graph) Shift(d Vec) {
	for i := range g.Points {
		g.Points[i] = g.Points[i].Add(d)
	}
}

// Partial returns the prefix of pts covering fraction t of the polyline,
// measured along its length.
func Partial(pts []Vec, t float64) []Vec {
	if t >= 1 || len(pts) < 2 {
		return pts
	}
	if t <= 0 {
		return nil
	}
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Len()
	}
	target := total * t
	out := []Vec{pts[0]}
	for i := 1; i < len(pts); i++ {
		seg := pts[i].Sub(pts[i-1]).Len()
		if seg >= target {
			if seg > 0 {
				out = append(out, pts[i-1].Lerp(pts[i], target/seg))
			}
			return out
		}
		target -= seg
		out = append(out, pts[i])
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
