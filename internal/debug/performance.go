package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PerfSample is what the performance tab shows.
type PerfSample struct {
	FPS         float64
	FrameTimeMs float64
	Mem         runtime.MemStats
	Goroutines  int
	WindowW     int
	WindowH     int
	MonitorW    int
	MonitorH    int
	UIScale     float64
}

func PerformanceLines(s PerfSample) []Line {
	const mb = 1024 * 1024
	return []Line{
		{Text: "Timing:", Header: true},
		{Text: fmt.Sprintf("FPS: %.1f", s.FPS)},
		{Text: fmt.Sprintf("Frame Time: %.2f ms", s.FrameTimeMs)},
		{},
		{Text: "Memory Usage:", Header: true},
		{Text: fmt.Sprintf("Allocated: %.2f MB", float64(s.Mem.Alloc)/mb)},
		{Text: fmt.Sprintf("Heap Alloc: %.2f MB", float64(s.Mem.HeapAlloc)/mb)},
		{Text: fmt.Sprintf("Process Total: %.2f MB", float64(s.Mem.Sys)/mb)},
		{Text: fmt.Sprintf("GC Cycles: %d", s.Mem.NumGC)},
		{},
		{Text: "System:", Header: true},
		{Text: fmt.Sprintf("Cores: %d", runtime.NumCPU())},
		{Text: fmt.Sprintf("Goroutines: %d", s.Goroutines)},
		{Text: fmt.Sprintf("Window: %dx%d", s.WindowW, s.WindowH)},
		{Text: fmt.Sprintf("Monitor Native: %dx%d", s.MonitorW, s.MonitorH)},
		{Text: fmt.Sprintf("UI Scale: %.2fx", s.UIScale)},
	}
}

func (d *DebugOverlay) drawPerformance(startY int) {
	d.newPanel(10, startY).lines(PerformanceLines(PerfSample{
		FPS:         d.fps,
		FrameTimeMs: float64(rl.GetFrameTime()) * 1000,
		Mem:         d.memStats,
		Goroutines:  runtime.NumGoroutine(),
		WindowW:     rl.GetScreenWidth(),
		WindowH:     rl.GetScreenHeight(),
		MonitorW:    d.monitorWidth,
		MonitorH:    d.monitorHeight,
		UIScale:     d.uiScale,
	}))
}
