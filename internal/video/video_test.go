package video

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildFFmpegArgs(t *testing.T) {
	e := &FFmpegEncoder{}
	base := Params{Width: 1920, Height: 1080, FPS: 30, Duration: 27, Quality: 23}

	tests := []struct {
		name     string
		params   func(Params) Params
		contains []string
		absent   []string
	}{
		{
			name:     "default encoder",
			params:   func(p Params) Params { return p },
			contains: []string{"-video_size 1920x1080", "-framerate 30", "-c:v libx264", "-crf 23", "-t 27.000000"},
			absent:   []string{"-stream_loop", "-vf"},
		},
		{
			name:     "nvenc",
			params:   func(p Params) Params { p.Encoder = "h264_nvenc"; return p },
			contains: []string{"-c:v h264_nvenc", "-cq 23"},
			absent:   []string{"-crf"},
		},
		{
			name:     "videotoolbox",
			params:   func(p Params) Params { p.Encoder = "h264_videotoolbox"; p.Quality = 75; return p },
			contains: []string{"-b:v 7500k"},
		},
		{
			name:     "short soundtrack loops",
			params:   func(p Params) Params { p.AudioPath = "a.mp3"; p.AudioDuration = 5; return p },
			contains: []string{"-stream_loop -1 -i a.mp3", "-map 1:a", "-shortest"},
		},
		{
			name:     "long soundtrack",
			params:   func(p Params) Params { p.AudioPath = "a.mp3"; p.AudioDuration = 60; return p },
			contains: []string{"-i a.mp3", "-shortest"},
			absent:   []string{"-stream_loop"},
		},
		{
			name:     "filter",
			params:   func(p Params) Params { p.Filter = "drawtext=text='x'"; return p },
			contains: []string{"-vf drawtext=text='x'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := e.buildFFmpegArgs("out.mp4", tt.params(base))
			joined := strings.Join(args, " ")
			if args[len(args)-1] != "out.mp4" {
				t.Errorf("output path must come last: %s", joined)
			}
			for _, want := range tt.contains {
				if !strings.Contains(joined, want) {
					t.Errorf("expected %q in %s", want, joined)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(joined, bad) {
					t.Errorf("unexpected %q in %s", bad, joined)
				}
			}
		})
	}
}

func TestWriteRawRGBA(t *testing.T) {
	parent := image.NewRGBA(image.Rect(0, 0, 4, 4))
	parent.Set(1, 1, color.RGBA{R: 255, A: 255})
	sub := parent.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)

	var buf bytes.Buffer
	var scratch *image.RGBA
	if err := writeRawRGBA(&buf, sub, &scratch); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 2*2*4 {
		t.Fatalf("expected 16 bytes, got %d", buf.Len())
	}
	if buf.Bytes()[0] != 255 {
		t.Errorf("expected the red pixel first, got %v", buf.Bytes()[:4])
	}
}

func testFrames(n int) []*image.RGBA {
	frames := make([]*image.RGBA, n)
	for i := range frames {
		img := image.NewRGBA(image.Rect(0, 0, 32, 18))
		img.Set(i, i, color.White)
		frames[i] = img
	}
	return frames
}

func TestMJPEGSink(t *testing.T) {
	enc, err := NewEncoder(FormatAVI)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "qb.avi")
	sink, err := enc.Open(context.Background(), path, Params{Width: 32, Height: 18, FPS: 10, Quality: 80})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, f := range testFrames(5) {
		if err := sink.WriteFrame(f); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Contains(data[:16], []byte("AVI")) {
		t.Errorf("expected an AVI container, got header %q", data[:16])
	}
}

func TestPNGSink(t *testing.T) {
	enc, err := NewEncoder(FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "frames")
	sink, err := enc.Open(context.Background(), dir, Params{Width: 32, Height: 18, FPS: 10})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, f := range testFrames(3) {
		if err := sink.WriteFrame(f); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"frame_00000.png", "frame_00001.png", "frame_00002.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestNewEncoderUnknown(t *testing.T) {
	if _, err := NewEncoder("gif"); err == nil {
		t.Error("expected error for unknown format")
	}
}
