// Package renderer rasterizes director frames into RGBA images using
// x/image/vector for shapes and x/image/font for text.
package renderer

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/manasp21/Simulations/internal/director"
	"github.com/manasp21/Simulations/internal/scene"
	"github.com/manasp21/Simulations/internal/typeset"
)

// Options configure a Renderer.
type Options struct {
	Width, Height int
	Badge         image.Image // optional QR badge, see NewBadge
	Debug         bool        // draw the clock and active step in the corner
}

// Renderer draws frames of one scene. It keeps per-instance font faces and a
// rasterizer, so each goroutine needs its own Renderer.
type Renderer struct {
	width, height int
	frame         scene.Box
	scale         float64 // pixels per scene unit
	faces         *typeset.FaceCache
	raster        *vector.Rasterizer
	badge         image.Image
	debug         bool
	timeline      *director.Timeline
}

// New creates a renderer for the timeline's scene.
func New(tl *director.Timeline, fonts *typeset.Fonts, opts Options) *Renderer {
	frame := tl.Scene().Frame
	return &Renderer{
		width:    opts.Width,
		height:   opts.Height,
		frame:    frame,
		scale:    float64(opts.Height) / frame.Height(),
		faces:    fonts.NewFaceCache(),
		raster:   vector.NewRasterizer(opts.Width, opts.Height),
		badge:    opts.Badge,
		debug:    opts.Debug,
		timeline: tl,
	}
}

// Close releases cached font faces.
func (r *Renderer) Close() error {
	return r.faces.Close()
}

// Bounds is the output rectangle.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// RenderAt draws the scene at time t into dst.
func (r *Renderer) RenderAt(dst *image.RGBA, t float64) error {
	return r.Render(dst, r.timeline.FrameAt(t))
}

// Render draws one frame into dst, which must match Bounds.
func (r *Renderer) Render(dst *image.RGBA, f director.Frame) error {
	if dst.Bounds() != r.Bounds() {
		return fmt.Errorf("destination %v does not match output %v", dst.Bounds(), r.Bounds())
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(f.Background), image.Point{}, draw.Src)

	for _, v := range f.Visuals {
		if err := r.drawVisual(dst, v); err != nil {
			return fmt.Errorf("draw %s: %w", v.Element.ID(), err)
		}
	}

	r.drawBadge(dst)
	if r.debug {
		r.drawDebug(dst, f)
	}
	return nil
}

func (r *Renderer) drawVisual(dst *image.RGBA, v director.Visual) error {
	switch e := v.Element.(type) {
	case *scene.Text:
		return r.drawText(dst, e, v.State)
	case *scene.Line:
		p := r.beginPath()
		p.stroke([]scene.Vec{e.Start, grow(e.Start, e.End, v.Progress)}, e.Width)
		p.fill(dst, scene.WithOpacity(e.Color, v.Opacity))
	case *scene.Arrow:
		r.drawArrow(dst, e, v.State)
	case *scene.Axes:
		r.drawAxes(dst, e, v.State)
	case *scene.Graph:
		p := r.beginPath()
		p.stroke(scene.Partial(e.Points, v.Progress), e.Width)
		p.fill(dst, scene.WithOpacity(e.Color, v.Opacity))
	case *scene.Dot:
		center := e.Center
		if v.Center != nil {
			center = *v.Center
		}
		p := r.beginPath()
		p.disc(center, e.Radius*clamp01(v.Progress))
		p.fill(dst, scene.WithOpacity(e.Color, v.Opacity))
	default:
		return fmt.Errorf("unsupported element kind %s", v.Element.Kind())
	}
	return nil
}

// drawArrow grows the arrow from its start: the tip travels with the end.
func (r *Renderer) drawArrow(dst *image.RGBA, a *scene.Arrow, st director.State) {
	if st.Progress <= 0 {
		return
	}
	dir := a.End.Sub(a.Start)
	end := grow(a.Start, a.End, st.Progress)
	tip := a.TipLength * st.Progress
	shaftEnd := end.Sub(dir.Unit().Mul(tip * 0.9))

	p := r.beginPath()
	p.segment(a.Start, shaftEnd, a.Width)
	p.tip(end, dir, tip)
	p.fill(dst, scene.WithOpacity(a.Color, st.Opacity))
}

// drawAxes draws both axis lines up to st.Progress, the ticks already passed
// and a tip on each line.
func (r *Renderer) drawAxes(dst *image.RGBA, a *scene.Axes, st director.State) {
	if st.Progress <= 0 {
		return
	}
	p := r.beginPath()

	x0, x1 := a.XAxis()
	xEnd := grow(x0, x1, st.Progress)
	p.segment(x0, xEnd, a.Width)
	p.tip(xEnd.Add(scene.Right.Mul(a.TipLength*st.Progress)), scene.Right, a.TipLength*st.Progress)

	y0, y1 := a.YAxis()
	yEnd := grow(y0, y1, st.Progress)
	p.segment(y0, yEnd, a.Width)
	p.tip(yEnd.Add(scene.Up.Mul(a.TipLength*st.Progress)), scene.Up, a.TipLength*st.Progress)

	for _, x := range a.X.Ticks() {
		if (x-a.X.Min)/(a.X.Max-a.X.Min) > st.Progress {
			break
		}
		c := a.C2P(x, x0YValue(a))
		p.segment(c.Add(scene.Down.Mul(scene.TickSize)), c.Add(scene.Up.Mul(scene.TickSize)), a.Width)
	}
	for _, y := range a.Y.Ticks() {
		if (y-a.Y.Min)/(a.Y.Max-a.Y.Min) > st.Progress {
			break
		}
		c := a.C2P(y0XValue(a), y)
		p.segment(c.Add(scene.Left.Mul(scene.TickSize)), c.Add(scene.Right.Mul(scene.TickSize)), a.Width)
	}

	p.fill(dst, scene.WithOpacity(a.Color, st.Opacity))
}

// x0YValue is the data y at which the x axis is drawn.
func x0YValue(a *scene.Axes) float64 {
	return clampTo(0, a.Y.Min, a.Y.Max)
}

// y0XValue is the data x at which the y axis is drawn.
func y0XValue(a *scene.Axes) float64 {
	return clampTo(0, a.X.Min, a.X.Max)
}

func clampTo(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toPixel maps a scene point to output pixel coordinates (y down).
func (r *Renderer) toPixel(v scene.Vec) (float32, float32) {
	x := (v.X - r.frame.Min.X) * r.scale
	y := (r.frame.Max.Y - v.Y) * r.scale
	return float32(x), float32(y)
}
