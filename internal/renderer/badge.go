package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/skip2/go-qrcode"
)

// badgeMargin is the gap between the badge and the frame corner, in pixels.
const badgeMargin = 16

// NewBadge encodes content as a QR code of size x size pixels.
func NewBadge(content string, size int) (image.Image, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return q.Image(size), nil
}

// drawBadge stamps the badge into the bottom-right corner.
func (r *Renderer) drawBadge(dst *image.RGBA) {
	if r.badge == nil {
		return
	}
	b := r.badge.Bounds()
	at := image.Pt(r.width-b.Dx()-badgeMargin, r.height-b.Dy()-badgeMargin)
	rect := image.Rectangle{Min: at, Max: at.Add(b.Size())}
	draw.DrawMask(dst, rect, r.badge, b.Min, image.NewUniform(color.Alpha{A: 0xD9}), image.Point{}, draw.Over)
}
