// Package engine renders a compiled timeline frame by frame and streams the
// frames, in order, to a video sink.
package engine

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/manasp21/Simulations/internal/config"
	"github.com/manasp21/Simulations/internal/director"
	"github.com/manasp21/Simulations/internal/logging"
	"github.com/manasp21/Simulations/internal/renderer"
	"github.com/manasp21/Simulations/internal/system"
	"github.com/manasp21/Simulations/internal/typeset"
	"github.com/manasp21/Simulations/internal/video"
)

type VideoProject struct {
	Config  *config.Config
	Fonts   *typeset.Fonts
	Script  *director.Script
	Encoder video.Encoder
	Log     *logging.Logger

	timeline *director.Timeline
}

func NewVideoProject(cfg *config.Config, fonts *typeset.Fonts, script *director.Script, enc video.Encoder, log *logging.Logger) *VideoProject {
	return &VideoProject{
		Config:  cfg,
		Fonts:   fonts,
		Script:  script,
		Encoder: enc,
		Log:     log,
	}
}

// Prepare builds the scene for the configured aspect ratio and compiles the
// script against it. Run calls it when needed.
func (p *VideoProject) Prepare() (*director.Timeline, error) {
	if p.timeline != nil {
		return p.timeline, nil
	}
	d, err := director.QuantumBeats(p.Fonts, float64(p.Config.Width)/float64(p.Config.Height))
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	tl, err := d.Compile(p.Script)
	if err != nil {
		return nil, fmt.Errorf("compile script: %w", err)
	}
	p.timeline = tl
	return tl, nil
}

// FramePlan returns the first frame index and the number of frames to
// render. Frame k shows the scene at k/fps seconds.
func FramePlan(duration float64, fps int, from, to float64) (first, count int) {
	total := int(math.Ceil(duration*float64(fps) - 1e-9))
	end := total
	if to > 0 {
		end = int(math.Ceil(to*float64(fps) - 1e-9))
		if end > total {
			end = total
		}
	}
	first = int(math.Floor(from*float64(fps) + 1e-9))
	if first > end {
		first = end
	}
	return first, end - first
}

type rendered struct {
	index int
	img   *image.RGBA
}

// Run renders every planned frame with a pool of workers and writes the
// results to the sink in presentation order.
func (p *VideoProject) Run(ctx context.Context) (*Stats, error) {
	startTime := time.Now()
	cfg := p.Config

	tl, err := p.Prepare()
	if err != nil {
		return nil, err
	}
	first, count := FramePlan(tl.Duration, cfg.FPS, cfg.From, cfg.To)
	if count == 0 {
		return nil, fmt.Errorf("%w: nothing to render in [%g, %g) of %.2fs", config.ErrInvalidRange, cfg.From, cfg.To, tl.Duration)
	}
	end := first + count

	host := system.GetHostInfo(ctx)
	workers := cfg.Workers
	if workers <= 0 {
		workers = system.SuggestWorkers(host, cfg.Width*cfg.Height*4)
	}
	if workers > count {
		workers = count
	}

	var badge image.Image
	if cfg.QRContent != "" {
		badge, err = renderer.NewBadge(cfg.QRContent, cfg.Height/6)
		if err != nil {
			return nil, err
		}
	}

	p.Log.Info("--- [PROJECT: QUANTUM BEATS] ---")
	p.Log.Infof("[*] Scene: %s | %.2fs | frames %d..%d", tl.Scene().Name, tl.Duration, first, end-1)
	p.Log.Infof("[*] Resolution: %dx%d @ %d FPS | workers: %d", cfg.Width, cfg.Height, cfg.FPS, workers)
	p.Log.Debugf("[*] Host: %s", host)

	g, gctx := errgroup.WithContext(ctx)

	sink, err := p.Encoder.Open(gctx, cfg.OutputPath, p.videoParams(gctx, count))
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}

	jobs := make(chan int)
	results := make(chan rendered, workers)
	// tokens bound the frames in flight so a slow frame cannot make the
	// reorder buffer grow without limit
	tokens := make(chan struct{}, 2*workers)
	var renderNanos atomic.Int64

	// 1. Feeder
	g.Go(func() error {
		defer close(jobs)
		for k := first; k < end; k++ {
			select {
			case tokens <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			select {
			case jobs <- k:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// 2. Render pool, one renderer per worker
	var wgRender sync.WaitGroup
	for w := 0; w < workers; w++ {
		wgRender.Add(1)
		g.Go(func() error {
			defer wgRender.Done()
			r := renderer.New(tl, p.Fonts, renderer.Options{
				Width:  cfg.Width,
				Height: cfg.Height,
				Badge:  badge,
				Debug:  cfg.Debug,
			})
			defer r.Close()

			for k := range jobs {
				t0 := time.Now()
				img := system.GetImage(r.Bounds())
				if err := r.RenderAt(img, float64(k)/float64(cfg.FPS)); err != nil {
					return fmt.Errorf("frame %d: %w", k, err)
				}
				renderNanos.Add(int64(time.Since(t0)))

				select {
				case results <- rendered{index: k, img: img}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wgRender.Wait()
		close(results)
	}()

	// 3. Ordered writer
	var written int
	g.Go(func() error {
		pending := make(map[int]*image.RGBA, 2*workers)
		next := first
		for res := range results {
			if gctx.Err() != nil {
				sink.Close()
				return gctx.Err()
			}
			pending[res.index] = res.img
			for {
				img, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := sink.WriteFrame(img); err != nil {
					sink.Close()
					return fmt.Errorf("write frame %d: %w", next, err)
				}
				system.PutImage(img)
				<-tokens
				next++
				written++
				if written%cfg.FPS == 0 || next == end {
					p.Log.Debugf("[>] Ready: %d/%d", written, count)
				}
			}
		}
		if next != end {
			sink.Close()
			if err := gctx.Err(); err != nil {
				return err
			}
			return fmt.Errorf("render stopped at frame %d of %d", next, end)
		}
		// close here: the group context is cancelled as soon as Wait returns
		if err := sink.Close(); err != nil {
			return fmt.Errorf("finalize output: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		Build:      cfg.BuildVersion,
		Output:     cfg.OutputPath,
		Frames:     written,
		Workers:    workers,
		Total:      time.Since(startTime),
		RenderCPU:  time.Duration(renderNanos.Load()),
		VideoSpan:  float64(count) / float64(cfg.FPS),
		Host:       host,
		Resolution: fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		Process:    system.SelfUsage(ctx, int32(os.Getpid())),
	}
	return stats, nil
}

func (p *VideoProject) videoParams(ctx context.Context, count int) video.Params {
	cfg := p.Config
	params := video.Params{
		Width:         cfg.Width,
		Height:        cfg.Height,
		FPS:           cfg.FPS,
		Duration:      float64(count) / float64(cfg.FPS),
		Encoder:       cfg.VideoEncoder,
		Quality:       cfg.Quality,
		AudioPath:     cfg.AudioPath,
		AudioDuration: cfg.AudioDuration,
	}
	// the debug overlay already draws the clock
	if cfg.Timestamp && !cfg.Debug && cfg.Format == string(video.FormatMP4) && system.CheckFilterSupport(ctx, "drawtext") {
		params.Filter = renderer.GenerateDebugFilter(cfg.Width, cfg.Height)
	}
	return params
}

// DumpScript validates the active script and writes it as YAML. When path
// is an existing directory a timestamped name inside it is used.
func (p *VideoProject) DumpScript(path string) (string, error) {
	if _, err := p.Prepare(); err != nil {
		return "", err
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = director.GenerateScriptPath(path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := director.WriteScript(p.Script, path); err != nil {
		return "", err
	}
	return path, nil
}
