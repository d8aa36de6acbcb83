// Package plot exports I(t) outside the animation: a PNG chart and a
// terminal preview.
package plot

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/manasp21/Simulations/internal/intensity"
)

// samples across one period for the PNG chart.
const chartSamples = 400

var purple = drawing.Color{R: 0x9A, G: 0x72, B: 0xAC, A: 255}

// Chart builds a go-chart line chart of one period of I(t).
func Chart(width, height int) chart.Chart {
	xs, ys := intensity.Sample(0, intensity.Period, chartSamples)

	ticks := make([]chart.Tick, 0, int(intensity.Period)+1)
	for i := 0; i <= int(intensity.Period); i++ {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}

	return chart.Chart{
		Title:  "Fluorescence Intensity I(t)",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "t (s)",
			Style: chart.Style{FontSize: 10.0},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  "I(t)",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: 2},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "exp(-t/2)(1+cos 2t)",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: purple, StrokeWidth: 3.0},
			},
		},
	}
}

// WritePNG renders the chart to w.
func WritePNG(w io.Writer, width, height int) error {
	graph := Chart(width, height)
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// SavePNG writes the chart to path.
func SavePNG(path string, width, height int) error {
	buf := bytes.NewBuffer([]byte{})
	if err := WritePNG(buf, width, height); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Preview draws I(t) over one period as ASCII art.
func Preview(width, height int) string {
	_, ys := intensity.Sample(0, intensity.Period, width)
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption("I(t) = exp(-t/2)(1 + cos 2t), t in [0, 10]"),
	)
}
