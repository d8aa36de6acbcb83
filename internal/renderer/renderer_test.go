package renderer

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/manasp21/Simulations/internal/director"
	"github.com/manasp21/Simulations/internal/scene"
	"github.com/manasp21/Simulations/internal/typeset"
)

const (
	testWidth  = 640
	testHeight = 360
)

func newTestRenderer(t *testing.T, opts Options) (*Renderer, *director.Timeline) {
	t.Helper()
	fonts, err := typeset.Load("")
	if err != nil {
		t.Fatalf("load fonts: %v", err)
	}
	d, err := director.QuantumBeats(fonts, float64(testWidth)/float64(testHeight))
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	tl, err := d.Compile(director.DefaultScript())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	opts.Width, opts.Height = testWidth, testHeight
	r := New(tl, fonts, opts)
	t.Cleanup(func() { r.Close() })
	return r, tl
}

func countLit(img *image.RGBA) int {
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 16 || img.Pix[i+1] > 16 || img.Pix[i+2] > 16 {
			n++
		}
	}
	return n
}

func TestRenderEmptyFrames(t *testing.T) {
	r, tl := newTestRenderer(t, Options{})

	for _, at := range []float64{0, tl.Duration} {
		img := image.NewRGBA(r.Bounds())
		if err := r.RenderAt(img, at); err != nil {
			t.Fatalf("render t=%.1f: %v", at, err)
		}
		if n := countLit(img); n != 0 {
			t.Errorf("t=%.1f: expected a blank frame, %d pixels lit", at, n)
		}
	}
}

func TestRenderDrawsContent(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})

	prev := 0
	for _, at := range []float64{1, 2, 8, 16} {
		img := image.NewRGBA(r.Bounds())
		if err := r.RenderAt(img, at); err != nil {
			t.Fatalf("render t=%.1f: %v", at, err)
		}
		n := countLit(img)
		t.Logf("t=%.1f: %d pixels lit", at, n)
		if n <= prev {
			t.Errorf("t=%.1f: expected more ink than before (%d <= %d)", at, n, prev)
		}
		prev = n
	}
}

func TestRenderMarker(t *testing.T) {
	r, tl := newTestRenderer(t, Options{})

	for _, at := range []float64{16, 18.5} {
		pos, ok := tl.PositionAt("dot", at)
		if !ok {
			t.Fatalf("t=%.2f: marker not running", at)
		}
		img := image.NewRGBA(r.Bounds())
		if err := r.RenderAt(img, at); err != nil {
			t.Fatalf("render: %v", err)
		}
		x, y := r.toPixel(pos)
		p := image.Pt(int(x), int(y))
		if !p.In(img.Bounds()) {
			t.Fatalf("t=%.2f: marker at %v is off the frame", at, p)
		}
		c := img.RGBAAt(p.X, p.Y)
		if c.R < 200 || c.G < 200 || c.B < 200 {
			t.Errorf("t=%.2f: expected white marker at (%.1f, %.1f), got %v", at, x, y, c)
		}
	}
}

// Near the bottom of each period the curve runs below the frame, and so
// does the marker. Nothing of it may leak into the image.
func TestRenderMarkerOffFrame(t *testing.T) {
	r, tl := newTestRenderer(t, Options{})

	var frames [][]byte
	for _, at := range []float64{21.75, 23.25} {
		pos, _ := tl.PositionAt("dot", at)
		_, y := r.toPixel(pos)
		if top := float64(y) - scene.DotRadius*r.scale; top <= testHeight {
			t.Fatalf("t=%.2f: marker top at %.1f px is inside the frame", at, top)
		}
		img := image.NewRGBA(r.Bounds())
		if err := r.RenderAt(img, at); err != nil {
			t.Fatalf("render t=%.2f: %v", at, err)
		}
		frames = append(frames, img.Pix)
	}
	if !bytes.Equal(frames[0], frames[1]) {
		t.Error("frames with the marker off the frame should be identical")
	}
}

func TestRenderDeterministic(t *testing.T) {
	a, _ := newTestRenderer(t, Options{})
	b, _ := newTestRenderer(t, Options{})

	imgA := image.NewRGBA(a.Bounds())
	imgB := image.NewRGBA(b.Bounds())
	// b renders another frame first so any leftover state would show.
	if err := b.RenderAt(imgB, 5); err != nil {
		t.Fatal(err)
	}
	if err := a.RenderAt(imgA, 19.7); err != nil {
		t.Fatal(err)
	}
	if err := b.RenderAt(imgB, 19.7); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(imgA.Pix, imgB.Pix) {
		t.Error("same time rendered twice produced different frames")
	}
}

func TestRenderSizeMismatch(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	if err := r.RenderAt(image.NewRGBA(image.Rect(0, 0, 10, 10)), 1); err == nil {
		t.Error("expected error for a destination of the wrong size")
	}
}

func TestRenderBadge(t *testing.T) {
	badge, err := NewBadge("https://example.com/quantum-beats", 96)
	if err != nil {
		t.Fatalf("badge: %v", err)
	}
	if got := badge.Bounds().Dx(); got != 96 {
		t.Errorf("expected badge width 96, got %d", got)
	}

	r, _ := newTestRenderer(t, Options{Badge: badge})
	img := image.NewRGBA(r.Bounds())
	if err := r.RenderAt(img, 0); err != nil {
		t.Fatal(err)
	}
	if countLit(img) == 0 {
		t.Error("expected the badge to be drawn on an otherwise blank frame")
	}
}

func TestRenderDebugOverlay(t *testing.T) {
	r, _ := newTestRenderer(t, Options{Debug: true})
	img := image.NewRGBA(r.Bounds())
	if err := r.RenderAt(img, 0); err != nil {
		t.Fatal(err)
	}
	if countLit(img) == 0 {
		t.Error("expected the clock overlay on an otherwise blank frame")
	}
}

func TestReveal(t *testing.T) {
	tests := []struct {
		progress float64
		n        int
		full     int
		partial  float64
	}{
		{0, 10, 0, 0},
		{1, 10, 10, 0},
		{0.5, 10, 5, 0},
		{0.25, 10, 2, 0.5},
		{0.5, 0, 0, 0},
		{1.5, 4, 4, 0},
	}
	for _, tt := range tests {
		full, partial := reveal(tt.progress, tt.n)
		if full != tt.full || partial < tt.partial-1e-9 || partial > tt.partial+1e-9 {
			t.Errorf("reveal(%v, %d) = %d, %v; want %d, %v", tt.progress, tt.n, full, partial, tt.full, tt.partial)
		}
	}
}

func TestGenerateDebugFilter(t *testing.T) {
	filter := GenerateDebugFilter(1920, 1080)
	if !strings.Contains(filter, "drawtext") {
		t.Errorf("expected drawtext filter, got %q", filter)
	}
	if !strings.Contains(filter, "pts") {
		t.Errorf("expected a timestamp expression, got %q", filter)
	}
}
