package analyzer

import (
	"fmt"
	"image/color"
)

// NewDetector creates a detector by name. Ink detection compares pixels to
// the background; contrast detection looks for edges.
func NewDetector(variant string, background color.NRGBA) (Detector, error) {
	switch variant {
	case "ink", "":
		return NewInkDetector(background), nil
	case "contrast":
		return NewContrastDetector(), nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
