package analyzer

import (
	"image"
	"image/color"
	"math"
)

// ContrastDetector finds regions with the Sobel operator, then merges
// nearby edges by dilation.
type ContrastDetector struct {
	MinBlockArea  int     // pixels²
	EdgeThreshold float64 // gradient magnitude
}

func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  16,
		EdgeThreshold: 30.0,
	}
}

func (d *ContrastDetector) Detect(img *image.RGBA) ([]Block, error) {
	gray := toGrayscale(img)
	edges := sobelEdgeDetection(gray, d.EdgeThreshold)
	return blocksFrom(dilate(edges, 3, 2), d.MinBlockArea), nil
}

// InkDetector marks every pixel that differs from the background.
type InkDetector struct {
	Background   color.NRGBA
	Threshold    uint8 // largest per-channel difference still counted as background
	MinBlockArea int
	Gap          int // pixels bridged between neighbouring glyphs
}

func NewInkDetector(background color.NRGBA) *InkDetector {
	return &InkDetector{Background: background, Threshold: 24, MinBlockArea: 4, Gap: 2}
}

func (d *InkDetector) Detect(img *image.RGBA) ([]Block, error) {
	bounds := img.Bounds()
	mask := image.NewGray(bounds)
	bg := [3]uint8{d.Background.R, d.Background.G, d.Background.B}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, y):]
		for x := 0; x < bounds.Dx(); x++ {
			px := row[4*x : 4*x+3]
			for c := 0; c < 3; c++ {
				if absDiff(px[c], bg[c]) > d.Threshold {
					mask.Pix[mask.PixOffset(bounds.Min.X+x, y)] = 255
					break
				}
			}
		}
	}
	if d.Gap > 0 {
		mask = dilate(mask, 2*d.Gap+1, 1)
	}
	return blocksFrom(mask, d.MinBlockArea), nil
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func toGrayscale(img *image.RGBA) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.SetGray(x, y, color.GrayModel.Convert(img.RGBAAt(x, y)).(color.Gray))
		}
	}
	return gray
}

var (
	sobelX = [3][3]int{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]int{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func sobelEdgeDetection(gray *image.Gray, threshold float64) *image.Gray {
	bounds := gray.Bounds()
	edges := image.NewGray(bounds)

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			var sumX, sumY float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					pixel := float64(gray.GrayAt(x+kx, y+ky).Y)
					sumX += pixel * float64(sobelX[ky+1][kx+1])
					sumY += pixel * float64(sobelY[ky+1][kx+1])
				}
			}
			if math.Hypot(sumX, sumY) > threshold {
				edges.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return edges
}

// dilate grows white regions by kernelSize/2 pixels per iteration. Unlike a
// plain kernel scan it also reaches the border rows, so content touching
// the edge stays touching it.
func dilate(img *image.Gray, kernelSize, iterations int) *image.Gray {
	bounds := img.Bounds()
	half := kernelSize / 2
	result := img
	for iter := 0; iter < iterations; iter++ {
		temp := image.NewGray(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if result.GrayAt(x, y).Y == 0 {
					continue
				}
				for ky := max(y-half, bounds.Min.Y); ky <= min(y+half, bounds.Max.Y-1); ky++ {
					for kx := max(x-half, bounds.Min.X); kx <= min(x+half, bounds.Max.X-1); kx++ {
						temp.Pix[temp.PixOffset(kx, ky)] = 255
					}
				}
			}
		}
		result = temp
	}
	return result
}

// findContours returns the bounding rectangles of connected white regions.
func findContours(img *image.Gray) []image.Rectangle {
	bounds := img.Bounds()
	visited := make([]bool, bounds.Dx()*bounds.Dy())
	idx := func(x, y int) int { return (y-bounds.Min.Y)*bounds.Dx() + x - bounds.Min.X }

	var contours []image.Rectangle
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y > 128 && !visited[idx(x, y)] {
				contours = append(contours, floodFill(img, visited, idx, x, y))
			}
		}
	}
	return contours
}

func floodFill(img *image.Gray, visited []bool, idx func(x, y int) int, startX, startY int) image.Rectangle {
	bounds := img.Bounds()
	r := image.Rect(startX, startY, startX+1, startY+1)

	stack := []image.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !p.In(bounds) || visited[idx(p.X, p.Y)] || img.GrayAt(p.X, p.Y).Y <= 128 {
			continue
		}
		visited[idx(p.X, p.Y)] = true
		r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return r
}
