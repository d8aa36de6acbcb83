// Package typeset turns label strings and small TeX expressions into runs of
// glyphs and measures them. Faces are created per renderer because
// font.Face implementations are not safe for concurrent use.
package typeset

import (
	"fmt"
	"math"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// referenceSize is the pixel size used for layout measurement. Metrics are
// reported per em so layout does not depend on the output resolution.
const referenceSize = 256

// Fonts wraps one parsed font shared by every worker.
type Fonts struct {
	font *opentype.Font

	mu      sync.Mutex
	buf     sfnt.Buffer
	measure font.Face
}

// Load parses the font at path, or the bundled Go Regular when path is empty.
func Load(path string) (*Fonts, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := newFace(f, referenceSize)
	if err != nil {
		return nil, err
	}

	return &Fonts{font: f, measure: face}, nil
}

func newFace(f *opentype.Font, px float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face %.1fpx: %w", px, err)
	}
	return face, nil
}

// HasGlyph reports whether the font maps r to a real glyph.
func (f *Fonts) HasGlyph(r rune) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, err := f.font.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}

// Sanitize replaces runes the font cannot draw with ASCII stand-ins.
func (f *Fonts) Sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ' ' || f.HasGlyph(r) {
			out = append(out, r)
			continue
		}
		if alt, ok := fallback[r]; ok {
			out = append(out, []rune(alt)...)
			continue
		}
		out = append(out, '?')
	}
	return string(out)
}

var fallback = map[rune]string{
	'⟩': ">",
	'⟨': "<",
	'₀': "0",
	'₁': "1",
	'₂': "2",
	'₃': "3",
	'ħ': "h",
	'−': "-",
	'·': ".",
	'…': "...",
}

// Metrics are expressed in ems: multiply by the em size to get scene units.
type Metrics struct {
	Advance float64 // pen advance, left to right
	Ascent  float64 // ink extent above the baseline
	Descent float64 // ink extent below the baseline
}

// Height is the tight ink height.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Measure lays out runs and returns their combined ink metrics.
func (f *Fonts) Measure(runs []Run) Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()

	var m Metrics
	pen := 0.0
	for _, run := range runs {
		scale := run.Factor()
		for _, g := range glyphsOf(f.measure, run.Text) {
			b, _, ok := f.measure.GlyphBounds(g.r)
			if ok {
				top := -fixedToFloat(b.Min.Y)/referenceSize*scale + run.Rise
				bottom := fixedToFloat(b.Max.Y)/referenceSize*scale - run.Rise
				m.Ascent = math.Max(m.Ascent, top)
				m.Descent = math.Max(m.Descent, bottom)
			}
			pen += fixedToFloat(g.kern+g.advance) / referenceSize * scale
		}
	}
	m.Advance = pen
	return m
}

// Glyph is one positioned rune of a run, in 26.6 pixels of the face it was
// measured with.
type Glyph struct {
	r       rune
	kern    fixed.Int26_6
	advance fixed.Int26_6
}

// Rune returns the glyph's character.
func (g Glyph) Rune() rune { return g.r }

// Kern returns the kerning applied before the glyph.
func (g Glyph) Kern() fixed.Int26_6 { return g.kern }

// Advance returns the pen advance after the glyph.
func (g Glyph) Advance() fixed.Int26_6 { return g.advance }

// Glyphs splits s into glyphs positioned with face.
func Glyphs(face font.Face, s string) []Glyph {
	return glyphsOf(face, s)
}

func glyphsOf(face font.Face, s string) []Glyph {
	glyphs := make([]Glyph, 0, len(s))
	prev := rune(-1)
	for _, r := range s {
		g := Glyph{r: r}
		if prev >= 0 {
			g.kern = face.Kern(prev, r)
		}
		if adv, ok := face.GlyphAdvance(r); ok {
			g.advance = adv
		}
		glyphs = append(glyphs, g)
		prev = r
	}
	return glyphs
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// FaceCache hands out faces by pixel size. It belongs to a single goroutine.
type FaceCache struct {
	fonts *Fonts
	faces map[int]font.Face
}

// NewFaceCache creates an empty cache over fonts.
func (f *Fonts) NewFaceCache() *FaceCache {
	return &FaceCache{fonts: f, faces: make(map[int]font.Face)}
}

// Face returns a face of roughly px pixels, quantized to quarter pixels.
func (c *FaceCache) Face(px float64) (font.Face, error) {
	key := int(math.Round(px * 4))
	if key < 4 {
		key = 4
	}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	face, err := newFace(c.fonts.font, float64(key)/4)
	if err != nil {
		return nil, err
	}
	c.faces[key] = face
	return face, nil
}

// Close releases every cached face.
func (c *FaceCache) Close() error {
	for k, face := range c.faces {
		face.Close()
		delete(c.faces, k)
	}
	return nil
}
