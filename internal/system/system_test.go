package system

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatestAudio(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)
	files := map[string]time.Time{
		"old.mp3":   old,
		"new.WAV":   time.Now(),
		"notes.txt": time.Now().Add(time.Hour),
	}
	for name, mod := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(p, mod, mod); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindLatestAudio(dir)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if filepath.Base(got) != "new.WAV" {
		t.Errorf("expected new.WAV, got %s", got)
	}

	resolved, err := ResolveAudio(dir)
	if err != nil || resolved != got {
		t.Errorf("ResolveAudio(dir) = %q, %v", resolved, err)
	}
	single := filepath.Join(dir, "old.mp3")
	if resolved, _ := ResolveAudio(single); resolved != single {
		t.Errorf("ResolveAudio(file) = %q", resolved)
	}
}

func TestFindLatestAudioEmpty(t *testing.T) {
	if _, err := FindLatestAudio(t.TempDir()); err == nil {
		t.Error("expected error for a directory without audio")
	}
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("12.480000\n")
	if err != nil || d != 12.48 {
		t.Errorf("parseDuration = %v, %v", d, err)
	}
	if _, err := parseDuration("N/A"); err == nil {
		t.Error("expected error for N/A")
	}
}

func TestPickEncoder(t *testing.T) {
	tests := []struct {
		listing string
		want    string
	}{
		{" V..... libx264  libx264 H.264\n V..... h264_nvenc NVIDIA NVENC", "h264_nvenc"},
		{" V..... h264_videotoolbox VideoToolbox\n V..... h264_nvenc", "h264_videotoolbox"},
		{" V..... libx264  libx264 H.264", "libx264"},
		{"", "libx264"},
	}
	for _, tt := range tests {
		if got := pickEncoder(tt.listing); got != tt.want {
			t.Errorf("pickEncoder(%q) = %s, want %s", tt.listing, got, tt.want)
		}
	}
}

func TestHasFilter(t *testing.T) {
	listing := " ... drawtext          V->V       Draw text on top of video frames.\n ... scale             V->V       Scale the input video size"
	if !hasFilter(listing, "drawtext") {
		t.Error("expected drawtext")
	}
	if hasFilter(listing, "draw") {
		t.Error("partial names must not match")
	}
}

func TestSuggestWorkers(t *testing.T) {
	frame := 1920 * 1080 * 4
	tests := []struct {
		name string
		host HostInfo
		want int
	}{
		{"cpu bound", HostInfo{LogicalCPUs: 8, FreeMemory: 16 << 30}, 8},
		{"memory bound", HostInfo{LogicalCPUs: 8, FreeMemory: uint64(4 * 2 * frame * 3)}, 3},
		{"unknown memory", HostInfo{LogicalCPUs: 4}, 4},
		{"starved", HostInfo{LogicalCPUs: 4, FreeMemory: 1}, 1},
	}
	for _, tt := range tests {
		if got := SuggestWorkers(tt.host, frame); got != tt.want {
			t.Errorf("%s: SuggestWorkers = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGetHostInfo(t *testing.T) {
	info := GetHostInfo(context.Background())
	t.Logf("host: %s", info)
	if info.LogicalCPUs < 1 {
		t.Errorf("expected at least one CPU, got %d", info.LogicalCPUs)
	}
}

func TestImagePool(t *testing.T) {
	pool := NewImagePool()
	rect := image.Rect(0, 0, 16, 9)

	img := pool.Get(rect)
	if img.Bounds() != rect {
		t.Fatalf("expected %v, got %v", rect, img.Bounds())
	}
	pool.Put(img)
	pool.Put(image.NewRGBA(image.Rect(0, 0, 3, 3)))
	pool.Put(nil)

	if again := pool.Get(rect); again.Bounds() != rect {
		t.Errorf("expected %v, got %v", rect, again.Bounds())
	}
}
