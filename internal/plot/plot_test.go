package plot

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wcharczuk/go-chart/v2"
)

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, 640, 360); err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 360 {
		t.Errorf("expected 640x360, got %v", b)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intensity.png")
	if err := SavePNG(path, 320, 200); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("expected a non-empty file: %v", err)
	}
}

func TestChartSeries(t *testing.T) {
	c := Chart(640, 360)
	if len(c.Series) != 1 {
		t.Fatalf("expected one series, got %d", len(c.Series))
	}
	s := c.Series[0].(chart.ContinuousSeries)
	if s.YValues[0] != 2 {
		t.Errorf("I(0) should be 2, got %v", s.YValues[0])
	}
	if len(c.XAxis.Ticks) != 11 {
		t.Errorf("expected ticks 0..10, got %d", len(c.XAxis.Ticks))
	}
}

func TestPreview(t *testing.T) {
	out := Preview(60, 10)
	t.Logf("\n%s", out)
	if !strings.Contains(out, "I(t)") {
		t.Error("expected the caption in the preview")
	}
	if lines := strings.Count(out, "\n"); lines < 10 {
		t.Errorf("expected at least 10 rows, got %d", lines)
	}
	if !strings.Contains(out, "2.00") {
		t.Error("expected the peak value 2.00 on the axis")
	}
}
