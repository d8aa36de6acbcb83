package scene

import "math"

// Vec is a point or direction in scene units. The frame is 8 units tall,
// the origin sits at its centre and y grows upwards.
type Vec struct {
	X, Y float64
}

// Directions used by the layout helpers.
var (
	Origin = Vec{0, 0}
	Up     = Vec{0, 1}
	Down   = Vec{0, -1}
	Left   = Vec{-1, 0}
	Right  = Vec{1, 0}
)

func (v Vec) Add(o Vec) Vec     { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec     { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Mul(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64      { return math.Hypot(v.X, v.Y) }
func (v Vec) Perp() Vec         { return Vec{-v.Y, v.X} }
func (v Vec) Lerp(o Vec, t float64) Vec {
	return Vec{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Unit returns v scaled to length one, or the zero vector.
func (v Vec) Unit() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec
}

// BoxAround builds the box of the given centre and size.
func BoxAround(center Vec, w, h float64) Box {
	return Box{
		Min: Vec{center.X - w/2, center.Y - h/2},
		Max: Vec{center.X + w/2, center.Y + h/2},
	}
}

func (b Box) Width() float64  { return b.Max.X - b.Min.X }
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }
func (b Box) Center() Vec {
	return Vec{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Union returns the smallest box containing both.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Vec{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Vec{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Shift translates the box.
func (b Box) Shift(d Vec) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Edge returns the point of the box in direction dir: the centre of the
// matching side, or a corner for diagonal directions.
func (b Box) Edge(dir Vec) Vec {
	c := b.Center()
	switch {
	case dir.X > 0:
		c.X = b.Max.X
	case dir.X < 0:
		c.X = b.Min.X
	}
	switch {
	case dir.Y > 0:
		c.Y = b.Max.Y
	case dir.Y < 0:
		c.Y = b.Min.Y
	}
	return c
}

// FrameBox returns the visible frame for the given aspect ratio.
func FrameBox(aspect float64) Box {
	return BoxAround(Origin, FrameHeight*aspect, FrameHeight)
}

// FrameHeight is the height of the visible frame in scene units.
const FrameHeight = 8.0
