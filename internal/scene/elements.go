// Package scene describes the drawables of an animation in scene units and
// the layout helpers that place them. It does not draw anything itself.
package scene

import (
	"image/color"

	"github.com/manasp21/Simulations/internal/typeset"
)

// Kind identifies the concrete element type.
type Kind string

const (
	KindText  Kind = "text"
	KindMath  Kind = "math"
	KindLine  Kind = "line"
	KindArrow Kind = "arrow"
	KindAxes  Kind = "axes"
	KindGraph Kind = "graph"
	KindDot   Kind = "dot"
)

// Style defaults, in scene units.
const (
	// UnitsPerPoint converts a font size into the em size in scene units.
	UnitsPerPoint = 0.0145
	// DefaultFontSize matches the usual 48pt title size.
	DefaultFontSize = 48.0

	LineWidth      = 0.04
	ArrowWidth     = 0.06
	AxisWidth      = 0.02
	GraphWidth     = 0.04
	ArrowBuff      = 0.25
	MaxTipLength   = 0.35
	TipLengthRatio = 0.25
	DotRadius      = 0.08
	TickSize       = 0.1
)

// Element is anything placed in a scene.
type Element interface {
	ID() string
	Kind() Kind
	Bounds() Box
	Shift(d Vec)
}

// Text is a single line of text or a typeset math expression. Origin is the
// left end of the baseline.
type Text struct {
	Name    string
	Runs    []typeset.Run
	Em      float64
	Color   color.NRGBA
	Metrics typeset.Metrics
	Origin  Vec
	IsMath  bool
}

// NewText builds a text label centred on the origin.
func NewText(fonts *typeset.Fonts, id, s string, fontSize float64, c color.NRGBA) *Text {
	return newText(fonts, id, typeset.Plain(s), fontSize, c, false)
}

// NewMath typesets a TeX expression at the default size, centred on the origin.
func NewMath(fonts *typeset.Fonts, id, tex string, c color.NRGBA) *Text {
	return newText(fonts, id, typeset.ParseTeX(tex), DefaultFontSize, c, true)
}

func newText(fonts *typeset.Fonts, id string, runs []typeset.Run, fontSize float64, c color.NRGBA, isMath bool) *Text {
	for i := range runs {
		runs[i].Text = fonts.Sanitize(runs[i].Text)
	}
	t := &Text{
		Name:    id,
		Runs:    runs,
		Em:      fontSize * UnitsPerPoint,
		Color:   c,
		Metrics: fonts.Measure(runs),
		IsMath:  isMath,
	}
	t.centerOn(Origin)
	return t
}

func (t *Text) ID() string { return t.Name }

func (t *Text) Kind() Kind {
	if t.IsMath {
		return KindMath
	}
	return KindText
}

func (t *Text) Bounds() Box {
	return Box{
		Min: Vec{t.Origin.X, t.Origin.Y - t.Metrics.Descent*t.Em},
		Max: Vec{t.Origin.X + t.Metrics.Advance*t.Em, t.Origin.Y + t.Metrics.Ascent*t.Em},
	}
}

func (t *Text) Shift(d Vec) { t.Origin = t.Origin.Add(d) }

// Scale resizes the text about its centre.
func (t *Text) Scale(k float64) {
	c := t.Bounds().Center()
	t.Em *= k
	t.centerOn(c)
}

// Glyphs is the number of visible glyphs, used to time Write animations.
func (t *Text) Glyphs() int { return typeset.GlyphCount(t.Runs) }

func (t *Text) centerOn(c Vec) {
	t.Origin = Vec{
		X: c.X - t.Metrics.Advance*t.Em/2,
		Y: c.Y - (t.Metrics.Ascent-t.Metrics.Descent)*t.Em/2,
	}
}

// Line is a straight stroke.
type Line struct {
	Name       string
	Start, End Vec
	Color      color.NRGBA
	Width      float64
}

// NewLine builds a line of the default stroke width.
func NewLine(id string, start, end Vec, c color.NRGBA) *Line {
	return &Line{Name: id, Start: start, End: end, Color: c, Width: LineWidth}
}

func (l *Line) ID() string { return l.Name }
func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Bounds() Box {
	return Box{Min: l.Start, Max: l.Start}.Union(Box{Min: l.End, Max: l.End})
}

func (l *Line) Shift(d Vec) {
	l.Start = l.Start.Add(d)
	l.End = l.End.Add(d)
}

// Arrow is a line with a triangular tip at End. Both ends are pulled in by
// ArrowBuff when built with NewArrow.
type Arrow struct {
	Name       string
	Start, End Vec
	Color      color.NRGBA
	Width      float64
	TipLength  float64
}

// NewArrow builds an arrow from start to end, shortened by ArrowBuff at both ends.
func NewArrow(id string, start, end Vec, c color.NRGBA) *Arrow {
	dir := end.Sub(start).Unit()
	start = start.Add(dir.Mul(ArrowBuff))
	end = end.Sub(dir.Mul(ArrowBuff))

	tip := end.Sub(start).Len() * TipLengthRatio
	if tip > MaxTipLength {
		tip = MaxTipLength
	}
	return &Arrow{Name: id, Start: start, End: end, Color: c, Width: ArrowWidth, TipLength: tip}
}

func (a *Arrow) ID() string { return a.Name }
func (a *Arrow) Kind() Kind { return KindArrow }
func (a *Arrow) Bounds() Box {
	pad := a.TipLength / 2
	b := Box{Min: a.Start, Max: a.Start}.Union(Box{Min: a.End, Max: a.End})
	return Box{Min: b.Min.Sub(Vec{pad, 0}), Max: b.Max.Add(Vec{pad, 0})}
}
func (a *Arrow) Shift(d Vec) {
	a.Start = a.Start.Add(d)
	a.End = a.End.Add(d)
}

// Dot is a filled disc.
type Dot struct {
	Name   string
	Center Vec
	Radius float64
	Color  color.NRGBA
}

// NewDot builds a dot of the default radius.
func NewDot(id string, center Vec, c color.NRGBA) *Dot {
	return &Dot{Name: id, Center: center, Radius: DotRadius, Color: c}
}

func (d *Dot) ID() string  { return d.Name }
func (d *Dot) Kind() Kind  { return KindDot }
func (d *Dot) Bounds() Box { return BoxAround(d.Center, 2*d.Radius, 2*d.Radius) }
func (d *Dot) Shift(v Vec) { d.Center = d.Center.Add(v) }
