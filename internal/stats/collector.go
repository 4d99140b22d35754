package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bamsammich/sparkline/internal/event"
)

const ringSize = 60

// Collector tracks stream statistics using lock-free atomic counters.
type Collector struct {
	accepted  atomic.Int64
	rejected  atomic.Int64
	frames    atomic.Int64
	startTime time.Time

	// Ring buffer, written only by Tick.
	mu        sync.Mutex
	rate      [ringSize]int64 // accepted delta per tick
	fps       [ringSize]int64 // frames delta per tick
	ringIdx   int
	ringCount int // samples written, capped at ringSize
	lastAcc   int64
	lastFrame int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	Accepted int64
	Rejected int64
	Frames   int64
	Elapsed  time.Duration
}

func (c *Collector) AddAccepted(n int64) { c.accepted.Add(n) }
func (c *Collector) AddRejected(n int64) { c.rejected.Add(n) }
func (c *Collector) AddFrames(n int64)   { c.frames.Add(n) }

// Observe updates the counters for a single stream event.
func (c *Collector) Observe(ev event.Event) {
	switch ev.Type {
	case event.SampleReceived:
		c.accepted.Add(1)
	case event.SampleRejected:
		c.rejected.Add(1)
	case event.FrameRendered:
		c.frames.Add(1)
	}
}

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Accepted: c.accepted.Load(),
		Rejected: c.rejected.Load(),
		Frames:   c.frames.Load(),
		Elapsed:  c.Elapsed(),
	}
}

// Tick snapshots sample and frame deltas into the ring buffer. Called once
// per interval by the presenter.
func (c *Collector) Tick() {
	acc := c.accepted.Load()
	frames := c.frames.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rate[c.ringIdx] = acc - c.lastAcc
	c.fps[c.ringIdx] = frames - c.lastFrame
	c.lastAcc = acc
	c.lastFrame = frames

	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingRate returns the average accepted samples per tick over the last n
// ticks.
func (c *Collector) RollingRate(n int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollingAvg(c.rate[:], n)
}

// RollingFPS returns the average frames per tick over the last n ticks.
func (c *Collector) RollingFPS(n int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollingAvg(c.fps[:], n)
}

func (c *Collector) rollingAvg(buf []int64, n int) float64 {
	count := min(n, c.ringCount)
	if count <= 0 {
		return 0
	}
	var sum int64
	for i := 0; i < count; i++ {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += buf[idx]
	}
	return float64(sum) / float64(count)
}

// SparklineData returns the last n samples-per-tick values, oldest first.
func (c *Collector) SparklineData(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(n, c.ringCount)
	if count <= 0 {
		return nil
	}

	data := make([]float64, count)
	for i := 0; i < count; i++ {
		idx := (c.ringIdx - count + i + ringSize) % ringSize
		data[i] = float64(c.rate[idx])
	}
	return data
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf("accepted=%d rejected=%d frames=%d", s.Accepted, s.Rejected, s.Frames)
}
