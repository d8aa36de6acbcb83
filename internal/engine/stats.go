package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/manasp21/Simulations/internal/system"
)

// Stats describe one finished render.
type Stats struct {
	Build      string
	Output     string
	Resolution string
	Frames     int
	Workers    int
	VideoSpan  float64       // seconds of video produced
	Total      time.Duration // wall clock
	RenderCPU  time.Duration // summed over workers
	Host       system.HostInfo
	Process    system.ProcessUsage
}

// EffectiveFPS is frames produced per wall clock second.
func (s *Stats) EffectiveFPS() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Total.Seconds()
}

// Speedup compares summed render time to wall time.
func (s *Stats) Speedup() float64 {
	if s.Total <= 0 {
		return 0
	}
	return s.RenderCPU.Seconds() / s.Total.Seconds()
}

// Report formats the stats for the terminal.
func (s *Stats) Report() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Host: %s\n"+
			"Frames: %d (%.2fs of video) at %s\n"+
			"Workers: %d\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs (x%.1f parallel)\n"+
			"Peak RSS: %.1f MiB | CPU: %.0f%%\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		s.Build, s.Host, s.Frames, s.VideoSpan, s.Resolution, s.Workers,
		s.Total.Seconds(), s.RenderCPU.Seconds(), s.Speedup(),
		float64(s.Process.RSS)/(1<<20), s.Process.CPUPercent,
		s.EffectiveFPS(),
	)
}

// AppendBenchmark adds a one-line summary to the log file at path.
func (s *Stats) AppendBenchmark(path string, now time.Time) error {
	entry := fmt.Sprintf("[%s] Build: %s | Output: %s | Frames: %d | %s | Workers: %d | Total: %.2fs | Render: %.2fs | FPS: %.2f\n",
		now.Format("2006-01-02 15:04:05"),
		s.Build,
		filepath.Base(s.Output),
		s.Frames,
		s.Resolution,
		s.Workers,
		s.Total.Seconds(),
		s.RenderCPU.Seconds(),
		s.EffectiveFPS(),
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
