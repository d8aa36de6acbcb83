package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// MJPEGEncoder writes an AVI of JPEG frames without any external tools.
type MJPEGEncoder struct{}

type mjpegSink struct {
	aw      mjpeg.AviWriter
	buf     bytes.Buffer
	options *jpeg.Options
}

func (e *MJPEGEncoder) Open(_ context.Context, path string, p Params) (Sink, error) {
	aw, err := mjpeg.New(path, int32(p.Width), int32(p.Height), int32(p.FPS))
	if err != nil {
		return nil, fmt.Errorf("create mjpeg writer: %w", err)
	}
	return &mjpegSink{aw: aw, options: &jpeg.Options{Quality: jpegQuality(p.Quality)}}, nil
}

// jpegQuality maps the shared quality knob onto JPEG's 1..100 scale; values
// outside it fall back to 90.
func jpegQuality(q int) int {
	if q < 1 || q > 100 {
		return 90
	}
	return q
}

func (s *mjpegSink) WriteFrame(img *image.RGBA) error {
	s.buf.Reset()
	if err := jpeg.Encode(&s.buf, img, s.options); err != nil {
		return fmt.Errorf("jpeg encode: %w", err)
	}
	return s.aw.AddFrame(s.buf.Bytes())
}

func (s *mjpegSink) Close() error {
	return s.aw.Close()
}
