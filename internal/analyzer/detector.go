// Package analyzer finds drawn regions in rendered frames. It is used to
// check the layout: a region touching the frame border is likely clipped.
package analyzer

import (
	"fmt"
	"image"
)

// Block is a connected region of ink in a frame.
type Block struct {
	Rect    image.Rectangle
	Clipped bool // touches the frame border
}

func (b Block) String() string {
	if b.Clipped {
		return fmt.Sprintf("%v (clipped)", b.Rect)
	}
	return b.Rect.String()
}

// Detector finds blocks in a frame.
type Detector interface {
	Detect(img *image.RGBA) ([]Block, error)
}

// Clipped returns the blocks that touch the border.
func Clipped(blocks []Block) []Block {
	var out []Block
	for _, b := range blocks {
		if b.Clipped {
			out = append(out, b)
		}
	}
	return out
}

// blocksFrom turns a mask into blocks, dropping the ones below minArea.
func blocksFrom(mask *image.Gray, minArea int) []Block {
	bounds := mask.Bounds()
	var blocks []Block
	for _, rect := range findContours(mask) {
		if rect.Dx()*rect.Dy() < minArea {
			continue
		}
		clipped := rect.Min.X <= bounds.Min.X || rect.Min.Y <= bounds.Min.Y ||
			rect.Max.X >= bounds.Max.X || rect.Max.Y >= bounds.Max.Y
		blocks = append(blocks, Block{Rect: rect, Clipped: clipped})
	}
	return blocks
}
