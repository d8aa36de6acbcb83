package video

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// PNGEncoder writes every frame as its own file. The output path names a
// directory, or a pattern with a %d verb such as frames/qb_%05d.png.
type PNGEncoder struct{}

type pngSink struct {
	pattern string
	index   int
	enc     png.Encoder
}

func (e *PNGEncoder) Open(_ context.Context, path string, _ Params) (Sink, error) {
	pattern := path
	if !strings.Contains(path, "%") {
		pattern = filepath.Join(strings.TrimSuffix(path, filepath.Ext(path)), "frame_%05d.png")
	}
	if err := os.MkdirAll(filepath.Dir(pattern), 0755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	return &pngSink{pattern: pattern, enc: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
}

func (s *pngSink) WriteFrame(img *image.RGBA) error {
	name := fmt.Sprintf(s.pattern, s.index)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := s.enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	s.index++
	return f.Close()
}

func (s *pngSink) Close() error { return nil }
