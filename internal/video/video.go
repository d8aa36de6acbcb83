// Package video writes rendered frames to an output file: an ffmpeg encoded
// MP4, an MJPEG AVI or a numbered PNG sequence.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strings"
)

// Format selects the sink implementation.
type Format string

const (
	FormatMP4 Format = "mp4"
	FormatAVI Format = "avi"
	FormatPNG Format = "png"
)

// Params describe the stream handed to an encoder.
type Params struct {
	Width, Height int
	FPS           int
	Duration      float64 // seconds of video, used to trim the soundtrack
	Encoder       string  // ffmpeg codec, e.g. libx264
	Quality       int     // crf / cq for ffmpeg, 1..100 for JPEG
	Filter        string  // optional ffmpeg -vf chain
	AudioPath     string
	AudioDuration float64 // 0 when unknown; shorter tracks are looped
}

// Sink receives frames strictly in presentation order.
type Sink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// Encoder opens a sink writing to path.
type Encoder interface {
	Open(ctx context.Context, path string, p Params) (Sink, error)
}

// NewEncoder returns the encoder for a format.
func NewEncoder(f Format) (Encoder, error) {
	switch f {
	case FormatMP4:
		return &FFmpegEncoder{}, nil
	case FormatAVI:
		return &MJPEGEncoder{}, nil
	case FormatPNG:
		return &PNGEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", f)
	}
}

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process.
type FFmpegEncoder struct{}

type ffmpegSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *bytes.Buffer
	frame  *image.RGBA // scratch for frames with padding
	done   bool
	err    error
}

func (e *FFmpegEncoder) Open(ctx context.Context, path string, p Params) (Sink, error) {
	args := e.buildFFmpegArgs(path, p)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return &ffmpegSink{cmd: cmd, stdin: stdin, stderr: stderr}, nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(path string, p Params) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", fmt.Sprintf("%d", p.FPS),
		"-i", "-",
	}

	if p.AudioPath != "" {
		if p.AudioDuration > 0 && p.AudioDuration < p.Duration {
			args = append(args, "-stream_loop", "-1")
		}
		args = append(args, "-i", p.AudioPath, "-map", "0:v", "-map", "1:a", "-c:a", "aac", "-shortest")
	}

	if p.Filter != "" {
		args = append(args, "-vf", p.Filter)
	}
	if p.Duration > 0 {
		args = append(args, "-t", fmt.Sprintf("%f", p.Duration))
	}

	encoder := p.Encoder
	if encoder == "" {
		encoder = "libx264"
	}
	args = append(args, "-r", fmt.Sprintf("%d", p.FPS), "-pix_fmt", "yuv420p", "-c:v", encoder)

	// Quality depends on the encoder
	switch encoder {
	case "h264_videotoolbox":
		bitrate := p.Quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", p.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", p.Quality), "-preset", "medium")
	}

	return append(args, path)
}

func (s *ffmpegSink) WriteFrame(img *image.RGBA) error {
	if s.done {
		return s.err
	}
	if err := writeRawRGBA(s.stdin, img, &s.frame); err != nil {
		// ffmpeg most likely exited; its stderr says why
		if waitErr := s.Close(); waitErr != nil {
			return waitErr
		}
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

func (s *ffmpegSink) Close() error {
	if s.done {
		return s.err
	}
	s.done = true
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		s.err = fmt.Errorf("ffmpeg wait error: %w, output: %s", err, lastLine(s.stderr.String()))
	}
	return s.err
}

// writeRawRGBA writes tightly packed RGBA rows, copying through scratch when
// img has padding or a non-zero origin.
func writeRawRGBA(w io.Writer, img *image.RGBA, scratch **image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		if *scratch == nil || (*scratch).Bounds().Size() != bounds.Size() {
			*scratch = image.NewRGBA(image.Rectangle{Max: bounds.Size()})
		}
		draw.Draw(*scratch, (*scratch).Bounds(), img, bounds.Min, draw.Src)
		img = *scratch
	}
	_, err := w.Write(img.Pix)
	return err
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
