package scene

// Layout buffers, in scene units.
const (
	DefaultBuff = 0.25
	EdgeBuff    = 0.5
)

// Movable is anything with bounds that can be translated: an element or a group.
type Movable interface {
	Bounds() Box
	Shift(d Vec)
}

// Group moves and measures several elements together. It is a layout aid
// only; the scene stores the members individually.
type Group []Movable

func (g Group) Bounds() Box {
	if len(g) == 0 {
		return Box{}
	}
	b := g[0].Bounds()
	for _, m := range g[1:] {
		b = b.Union(m.Bounds())
	}
	return b
}

func (g Group) Shift(d Vec) {
	for _, m := range g {
		m.Shift(d)
	}
}

// ToEdge pushes m against the frame edge in direction dir, leaving buff
// between them. Only the coordinate along dir changes.
func ToEdge(m Movable, frame Box, dir Vec, buff float64) {
	b := m.Bounds()
	var d Vec
	switch {
	case dir.Y > 0:
		d.Y = frame.Max.Y - buff - b.Max.Y
	case dir.Y < 0:
		d.Y = frame.Min.Y + buff - b.Min.Y
	}
	switch {
	case dir.X > 0:
		d.X = frame.Max.X - buff - b.Max.X
	case dir.X < 0:
		d.X = frame.Min.X + buff - b.Min.X
	}
	m.Shift(d)
}

// NextTo places m beside target in direction dir with buff between them,
// centred on target along the other axis.
func NextTo(m Movable, target Box, dir Vec, buff float64) {
	b := m.Bounds()
	anchor := target.Edge(dir).Add(dir.Unit().Mul(buff))
	own := b.Edge(Vec{-dir.X, -dir.Y})
	m.Shift(anchor.Sub(own))
}
