package engine

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/manasp21/Simulations/internal/config"
	"github.com/manasp21/Simulations/internal/director"
	"github.com/manasp21/Simulations/internal/logging"
	"github.com/manasp21/Simulations/internal/typeset"
	"github.com/manasp21/Simulations/internal/video"
)

// recordingEncoder keeps a checksum of every frame it receives.
type recordingEncoder struct {
	mu      sync.Mutex
	frames  []uint64
	closed  bool
	failAt  int // fail on this frame when > 0
	params  video.Params
	written int
}

func (e *recordingEncoder) Open(_ context.Context, _ string, p video.Params) (video.Sink, error) {
	e.params = p
	return e, nil
}

func (e *recordingEncoder) WriteFrame(img *image.RGBA) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.written++
	if e.failAt > 0 && e.written == e.failAt {
		return errors.New("disk full")
	}
	var sum uint64
	for i, b := range img.Pix {
		sum += uint64(b) * uint64(i%251+1)
	}
	e.frames = append(e.frames, sum)
	return nil
}

func (e *recordingEncoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

func testProject(t *testing.T, cfg *config.Config, enc video.Encoder) *VideoProject {
	t.Helper()
	fonts, err := typeset.Load("")
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	return NewVideoProject(cfg, fonts, director.DefaultScript(), enc, logging.NewNop())
}

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height = 96, 54
	cfg.FPS = 2
	cfg.Workers = 3
	cfg.OutputPath = "unused"
	return cfg
}

func TestFramePlan(t *testing.T) {
	tests := []struct {
		name         string
		duration     float64
		fps          int
		from, to     float64
		first, count int
	}{
		{"whole scene", 27, 30, 0, 0, 0, 810},
		{"oscillation slice", 27, 30, 16, 26, 480, 300},
		{"to past end", 27, 30, 20, 40, 600, 210},
		{"from past end", 27, 30, 30, 0, 810, 0},
		{"fractional", 2.5, 10, 0.05, 0, 0, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, count := FramePlan(tt.duration, tt.fps, tt.from, tt.to)
			if first != tt.first || count != tt.count {
				t.Errorf("FramePlan = (%d, %d), want (%d, %d)", first, count, tt.first, tt.count)
			}
		})
	}
}

func TestVideoParamsFilter(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		debug     bool
		timestamp bool
	}{
		{"plain", "mp4", false, false},
		{"debug only", "mp4", true, false},
		{"debug and timestamp", "mp4", true, true},
		{"timestamp on avi", "avi", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			cfg.Format = tt.format
			cfg.Debug = tt.debug
			cfg.Timestamp = tt.timestamp
			p := testProject(t, cfg, &recordingEncoder{})
			if f := p.videoParams(context.Background(), 10).Filter; f != "" {
				t.Errorf("expected no ffmpeg filter, got %q", f)
			}
		})
	}
}

func TestRunWritesFramesInOrder(t *testing.T) {
	cfg := smallConfig()
	enc := &recordingEncoder{}
	stats, err := testProject(t, cfg, enc).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Frames != 54 || len(enc.frames) != 54 {
		t.Fatalf("expected 54 frames, stats %d, sink %d", stats.Frames, len(enc.frames))
	}
	if !enc.closed {
		t.Error("sink was not closed")
	}
	if enc.params.Duration != 27 {
		t.Errorf("expected 27s of video, got %v", enc.params.Duration)
	}

	// the same frames rendered by a single worker must match exactly
	serial := smallConfig()
	serial.Workers = 1
	ref := &recordingEncoder{}
	if _, err := testProject(t, serial, ref).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	for i := range ref.frames {
		if ref.frames[i] != enc.frames[i] {
			t.Fatalf("frame %d differs between parallel and serial renders", i)
		}
	}
	t.Logf("%s", stats.Report())
}

func TestRunSlice(t *testing.T) {
	cfg := smallConfig()
	cfg.From, cfg.To = 16, 20
	enc := &recordingEncoder{}
	stats, err := testProject(t, cfg, enc).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Frames != 8 {
		t.Errorf("expected 8 frames, got %d", stats.Frames)
	}
}

func TestRunEmptySlice(t *testing.T) {
	cfg := smallConfig()
	cfg.From = 40
	_, err := testProject(t, cfg, &recordingEncoder{}).Run(context.Background())
	if !errors.Is(err, config.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestRunSinkError(t *testing.T) {
	enc := &recordingEncoder{failAt: 5}
	_, err := testProject(t, smallConfig(), enc).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected the sink error, got %v", err)
	}
	if !enc.closed {
		t.Error("sink should be closed after a failure")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testProject(t, smallConfig(), &recordingEncoder{}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunBadScript(t *testing.T) {
	p := testProject(t, smallConfig(), &recordingEncoder{})
	p.Script = &director.Script{Steps: []director.Step{{Play: []director.Animation{{Kind: director.Write, Targets: []string{"nope"}}}}}}
	if _, err := p.Run(context.Background()); !errors.Is(err, director.ErrUnknownTarget) {
		t.Errorf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestRunMJPEG(t *testing.T) {
	cfg := smallConfig()
	cfg.Format = "avi"
	cfg.OutputPath = filepath.Join(t.TempDir(), "qb.avi")
	enc, err := video.NewEncoder(video.FormatAVI)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := testProject(t, cfg, enc).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if fi, err := os.Stat(cfg.OutputPath); err != nil || fi.Size() == 0 {
		t.Errorf("expected an AVI file: %v", err)
	}
}

func TestStats(t *testing.T) {
	s := &Stats{Build: "test", Output: "out/qb.mp4", Frames: 100, Workers: 4, Total: 2 * time.Second, RenderCPU: 6 * time.Second}
	if s.EffectiveFPS() != 50 {
		t.Errorf("EffectiveFPS = %v", s.EffectiveFPS())
	}
	if s.Speedup() != 3 {
		t.Errorf("Speedup = %v", s.Speedup())
	}

	path := filepath.Join(t.TempDir(), "benchmark.log")
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if err := s.AppendBenchmark(path, now); err != nil {
			t.Fatal(err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "qb.mp4"); n != 2 {
		t.Errorf("expected two entries, got %d:\n%s", n, data)
	}
}

func TestDumpScript(t *testing.T) {
	dir := t.TempDir()
	p := testProject(t, smallConfig(), &recordingEncoder{})

	path, err := p.DumpScript(dir)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "script_") {
		t.Errorf("unexpected generated path %s", path)
	}
	latest, err := director.FindLatestScript(dir)
	if err != nil || latest != path {
		t.Errorf("FindLatestScript = %q, %v", latest, err)
	}

	back, err := director.ReadScript(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Steps) != len(p.Script.Steps) {
		t.Errorf("expected %d steps, got %d", len(p.Script.Steps), len(back.Steps))
	}

	explicit := filepath.Join(dir, "nested", "qb.yaml")
	if got, err := p.DumpScript(explicit); err != nil || got != explicit {
		t.Errorf("DumpScript(%s) = %q, %v", explicit, got, err)
	}
}

func TestCheckLayout(t *testing.T) {
	cfg := smallConfig()
	cfg.Width, cfg.Height = 320, 180
	p := testProject(t, cfg, &recordingEncoder{})

	blank, err := p.CheckLayout(0, "ink")
	if err != nil {
		t.Fatal(err)
	}
	if len(blank) != 0 {
		t.Errorf("expected nothing drawn at t=0, got %v", blank)
	}

	blocks, err := p.CheckLayout(20, "ink")
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) == 0 {
		t.Fatal("expected drawn regions during the oscillation")
	}
	for _, b := range blocks {
		t.Logf("region %v", b)
	}

	if _, err := p.CheckLayout(20, "ocr"); err == nil {
		t.Error("expected error for unknown detector")
	}
}
