package engine

import (
	"fmt"
	"image"

	"github.com/manasp21/Simulations/internal/analyzer"
	"github.com/manasp21/Simulations/internal/renderer"
)

// CheckLayout renders the scene at time t and returns the regions the
// detector finds. Regions marked clipped run off the frame.
func (p *VideoProject) CheckLayout(t float64, variant string) ([]analyzer.Block, error) {
	tl, err := p.Prepare()
	if err != nil {
		return nil, err
	}
	det, err := analyzer.NewDetector(variant, tl.Scene().Background)
	if err != nil {
		return nil, err
	}

	r := renderer.New(tl, p.Fonts, renderer.Options{Width: p.Config.Width, Height: p.Config.Height})
	defer r.Close()

	img := image.NewRGBA(r.Bounds())
	if err := r.RenderAt(img, t); err != nil {
		return nil, fmt.Errorf("render t=%.2f: %w", t, err)
	}
	return det.Detect(img)
}
