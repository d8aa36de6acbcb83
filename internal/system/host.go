package system

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HostInfo summarises the machine the frames are rendered on.
type HostInfo struct {
	CPUModel     string
	LogicalCPUs  int
	PhysicalCPUs int
	TotalMemory  uint64
	FreeMemory   uint64
}

func (h HostInfo) String() string {
	return fmt.Sprintf("%s, %d/%d cores, %.1f/%.1f GiB free",
		h.CPUModel, h.PhysicalCPUs, h.LogicalCPUs,
		float64(h.FreeMemory)/(1<<30), float64(h.TotalMemory)/(1<<30))
}

// GetHostInfo queries gopsutil. Missing figures fall back to the Go runtime.
func GetHostInfo(ctx context.Context) HostInfo {
	info := HostInfo{LogicalCPUs: runtime.NumCPU(), PhysicalCPUs: runtime.NumCPU(), CPUModel: runtime.GOARCH}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		info.LogicalCPUs = n
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil && n > 0 {
		info.PhysicalCPUs = n
	}
	if cpus, err := cpu.InfoWithContext(ctx); err == nil && len(cpus) > 0 && cpus[0].ModelName != "" {
		info.CPUModel = cpus[0].ModelName
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.TotalMemory = vm.Total
		info.FreeMemory = vm.Available
	}
	return info
}

// SuggestWorkers sizes the render pool: one worker per logical CPU, capped
// so that every worker's frame buffers fit in a quarter of free memory.
func SuggestWorkers(h HostInfo, frameBytes int) int {
	workers := h.LogicalCPUs
	if workers < 1 {
		workers = 1
	}
	if h.FreeMemory > 0 && frameBytes > 0 {
		// each worker holds up to two frames in flight
		budget := h.FreeMemory / 4 / uint64(2*frameBytes)
		if budget < uint64(workers) {
			workers = int(budget)
		}
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// ProcessUsage is a snapshot of this process's resource use.
type ProcessUsage struct {
	CPUPercent float64
	RSS        uint64
}

// SelfUsage samples the current process. Errors leave fields at zero.
func SelfUsage(ctx context.Context, pid int32) ProcessUsage {
	var u ProcessUsage
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return u
	}
	if pct, err := p.CPUPercentWithContext(ctx); err == nil {
		u.CPUPercent = pct
	}
	if mi, err := p.MemoryInfoWithContext(ctx); err == nil {
		u.RSS = mi.RSS
	}
	return u
}
