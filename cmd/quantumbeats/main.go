package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/manasp21/Simulations/internal/analyzer"
	"github.com/manasp21/Simulations/internal/config"
	"github.com/manasp21/Simulations/internal/director"
	"github.com/manasp21/Simulations/internal/engine"
	"github.com/manasp21/Simulations/internal/logging"
	"github.com/manasp21/Simulations/internal/plot"
	"github.com/manasp21/Simulations/internal/system"
	"github.com/manasp21/Simulations/internal/typeset"
	"github.com/manasp21/Simulations/internal/video"
)

// BuildVersion is set with -ldflags "-X main.BuildVersion=..."
var BuildVersion = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	cfg.BuildVersion = BuildVersion
	// .env and QB_* variables become the flag defaults
	if err := cfg.LoadEnv(".env"); err != nil {
		return err
	}

	outputPtr := flag.String("output", "", "Output path (default: timestamped file in the output directory)")
	formatPtr := flag.String("format", cfg.Format, "Output format: mp4 (ffmpeg), avi (MJPEG, no ffmpeg needed), png (frame sequence)")
	widthPtr := flag.Int("width", cfg.Width, "Width")
	heightPtr := flag.Int("height", cfg.Height, "Height")
	fpsPtr := flag.Int("fps", cfg.FPS, "FPS")
	presetPtr := flag.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram), 1080p")
	workersPtr := flag.Int("workers", cfg.Workers, "Render workers (0 = from CPU count and free memory)")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 = auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s, avi: JPEG 1-100)")
	audioPtr := flag.String("audio", "", "Soundtrack file, or a directory to take the newest audio file from")
	scriptPtr := flag.String("script", "", "YAML timeline replacing the built-in one, or a directory to take the newest script from")
	dumpPtr := flag.String("dump-script", "", "Write the active timeline as YAML to this file or directory and exit")
	plotPtr := flag.String("plot", "", "Also write a PNG chart of I(t) to this path")
	previewPtr := flag.Bool("preview", false, "Print an ASCII plot of I(t) and exit")
	qrPtr := flag.String("qr", "", "Stamp a QR code with this content in the corner of every frame")
	fromPtr := flag.Float64("from", 0, "Start of the rendered slice in seconds")
	toPtr := flag.Float64("to", 0, "End of the rendered slice in seconds (0 = end of scene)")
	statsPtr := flag.Bool("stats", false, "Print a performance report and append it to benchmark.log")
	debugPtr := flag.Bool("debug", false, "Debug logging and a clock overlay on every frame")
	timestampPtr := flag.Bool("timestamp", false, "Burn a timestamp into mp4 output with ffmpeg drawtext (ignored with -debug)")
	logFilePtr := flag.String("log-file", "", "Also write logs to this file")
	checkPtr := flag.Float64("check", -1, "Render the frame at this time, report drawn regions that run off the frame and exit")
	detectorPtr := flag.String("detector", "ink", "Region detector for -check: ink, contrast")

	flag.Parse()

	log, err := logging.NewLogger(logging.Options{Debug: *debugPtr, Level: cfg.LogLevel, LogFile: *logFilePtr})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	cfg.Preview = *previewPtr
	if cfg.Preview {
		fmt.Println(plot.Preview(70, 12))
		return nil
	}

	cfg.Format = *formatPtr
	cfg.Width, cfg.Height = *widthPtr, *heightPtr
	cfg.FPS = *fpsPtr
	cfg.Workers = *workersPtr
	cfg.From, cfg.To = *fromPtr, *toPtr
	cfg.ShowStats = *statsPtr
	cfg.Debug = *debugPtr
	cfg.Timestamp = *timestampPtr
	cfg.LogFile = *logFilePtr
	cfg.QRContent = *qrPtr
	cfg.ScriptPath = *scriptPtr
	cfg.DumpScript = *dumpPtr
	cfg.PlotPath = *plotPtr
	if err := cfg.ApplyPreset(*presetPtr); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Timestamp && cfg.Debug {
		log.Warnf("[!] -timestamp is ignored with -debug, the frame overlay already shows the clock")
	}
	if cfg.Preset != "" {
		log.Infof("[*] Preset %s: %dx%d", cfg.Preset, cfg.Width, cfg.Height)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	system.InitResourceLimits(log)

	fonts, err := typeset.Load(cfg.FontPath)
	if err != nil {
		return err
	}

	script, err := loadScript(cfg.ScriptPath)
	if err != nil {
		return err
	}
	if cfg.ScriptPath != "" {
		log.Infof("[*] Using script: %s", cfg.ScriptPath)
	}

	if cfg.PlotPath != "" {
		if err := plot.SavePNG(cfg.PlotPath, cfg.Width, cfg.Height); err != nil {
			return err
		}
		log.Infof("[*] Intensity chart: %s", cfg.PlotPath)
	}

	if cfg.DumpScript != "" {
		project := engine.NewVideoProject(cfg, fonts, script, nil, log)
		path, err := project.DumpScript(cfg.DumpScript)
		if err != nil {
			return err
		}
		log.Infof("[+++] Success! Script saved: %s", path)
		return nil
	}

	if *checkPtr >= 0 {
		return checkLayout(cfg, fonts, script, *checkPtr, *detectorPtr, log)
	}

	if err := resolveOutput(ctx, cfg, *outputPtr, *audioPtr, *qualityPtr, log); err != nil {
		return err
	}

	enc, err := video.NewEncoder(video.Format(cfg.Format))
	if err != nil {
		return err
	}

	project := engine.NewVideoProject(cfg, fonts, script, enc, log)
	stats, err := project.Run(ctx)
	if err != nil {
		return fmt.Errorf("project error: %w", err)
	}

	if cfg.ShowStats {
		fmt.Print(stats.Report())
		if err := stats.AppendBenchmark("benchmark.log", time.Now()); err != nil {
			log.Warnf("[!] could not write benchmark.log: %v", err)
		}
	}

	log.Infof("[+++] Success! Result: %s", cfg.OutputPath)
	return nil
}

// checkLayout logs every region drawn at time t and fails when any of
// them touches the frame border.
func checkLayout(cfg *config.Config, fonts *typeset.Fonts, script *director.Script, t float64, detector string, log *logging.Logger) error {
	project := engine.NewVideoProject(cfg, fonts, script, nil, log)
	blocks, err := project.CheckLayout(t, detector)
	if err != nil {
		return err
	}
	for _, b := range blocks {
		log.Infof("[*] region %v", b)
	}
	if clipped := analyzer.Clipped(blocks); len(clipped) > 0 {
		return fmt.Errorf("%d of %d regions run off the %dx%d frame at t=%.2fs", len(clipped), len(blocks), cfg.Width, cfg.Height, t)
	}
	log.Infof("[+++] %d regions, all inside the frame", len(blocks))
	return nil
}

// loadScript reads the timeline override, or returns the built-in script.
func loadScript(path string) (*director.Script, error) {
	if path == "" {
		return director.DefaultScript(), nil
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		latest, err := director.FindLatestScript(path)
		if err != nil {
			return nil, err
		}
		path = latest
	}
	return director.ReadScript(path)
}

// resolveOutput fills in the output path, the soundtrack and the encoder
// settings for the chosen format.
func resolveOutput(ctx context.Context, cfg *config.Config, output, audio string, quality int, log *logging.Logger) error {
	cfg.OutputPath = output
	if cfg.OutputPath == "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return err
		}
		cfg.OutputPath = cfg.OutputName(time.Now())
	} else if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch video.Format(cfg.Format) {
	case video.FormatMP4:
		if !system.HasFFmpeg() {
			return fmt.Errorf("ffmpeg not found in PATH; use -format avi or -format png")
		}
		cfg.VideoEncoder = system.GetBestH264Encoder(ctx)
		if cfg.VideoEncoder != "libx264" {
			log.Infof("[*] Hardware acceleration detected: %s", cfg.VideoEncoder)
		}
	case video.FormatAVI:
		cfg.VideoEncoder = "mjpeg"
	}

	cfg.Quality = quality
	if cfg.Quality == 0 {
		cfg.Quality = config.DefaultQuality(cfg.VideoEncoder)
	}

	if audio != "" {
		if cfg.Format != string(video.FormatMP4) {
			log.Warnf("[!] soundtrack ignored for %s output", cfg.Format)
			return nil
		}
		path, err := system.ResolveAudio(audio)
		if err != nil {
			return fmt.Errorf("audio: %w", err)
		}
		cfg.AudioPath = path
		if d, err := system.GetAudioDuration(ctx, path); err == nil {
			cfg.AudioDuration = d
		} else {
			log.Warnf("[!] could not read audio duration: %v", err)
		}
		log.Infof("[*] Selected audio: %s", cfg.AudioPath)
	}
	return nil
}
