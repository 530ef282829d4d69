package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Snapshot is one interval's worth of frame and memory statistics.
type Snapshot struct {
	FPS         float64
	DrawCalls   int
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval when logging is enabled.
type Profiler struct {
	mu *sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	logging bool
	last    Snapshot
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and logging is off.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		mu:             &sync.Mutex{},
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetLogging toggles the periodic log line.
//
// Parameters:
//   - enabled: true to log each completed interval
func (p *Profiler) SetLogging(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logging = enabled
}

// SetInterval changes the sampling interval. Non-positive values are ignored.
//
// Parameters:
//   - d: the new interval
func (p *Profiler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updateInterval = d
}

// Last returns the most recently completed snapshot. Safe to call from any goroutine.
//
// Returns:
//   - Snapshot: the last snapshot, zero before the first interval completes
func (p *Profiler) Last() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Tick should be called once per frame with the frame's draw call count.
//
// Parameters:
//   - now: the frame timestamp
//   - drawCalls: the draw calls issued this frame
//
// Returns:
//   - bool: true if an interval completed this tick
func (p *Profiler) Tick(now time.Time, drawCalls int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap bytes. TotalAlloc: cumulative heap bytes, used for churn. Sys: process footprint.
	s := Snapshot{
		FPS:       float64(p.frameCount) / elapsed.Seconds(),
		DrawCalls: drawCalls,
		HeapMB:    float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:     float64(p.memStats.Sys) / 1024 / 1024,
		GCCount:   p.memStats.NumGC,
	}
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	if p.logging {
		log.Printf("[Profiler] FPS: %.2f | Draws: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			s.FPS, s.DrawCalls, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
	}

	p.last = s
	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
