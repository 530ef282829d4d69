package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickCompletesIntervals(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(100 * time.Millisecond)
	start := p.lastTime

	for i := 1; i < 10; i++ {
		assert.False(t, p.Tick(start.Add(time.Duration(i)*time.Millisecond), 3))
	}
	assert.Zero(t, p.Last().FPS)

	assert.True(t, p.Tick(start.Add(100*time.Millisecond), 7))
	snap := p.Last()
	assert.InDelta(t, 100.0, snap.FPS, 0.001)
	assert.Equal(t, 7, snap.DrawCalls)
	assert.Greater(t, snap.SysMB, 0.0)

	// The next interval starts from the completing tick.
	assert.False(t, p.Tick(start.Add(150*time.Millisecond), 1))
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(0)
	p.SetInterval(-time.Second)
	assert.Equal(t, time.Second, p.updateInterval)
}
