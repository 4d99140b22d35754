// Package stream feeds ingested samples into a chart and re-renders it at a
// bounded frame rate.
package stream

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bamsammich/sparkline/internal/event"
	"github.com/bamsammich/sparkline/internal/sparkline"
	"github.com/bamsammich/sparkline/internal/stats"
)

// DefaultFlush is how long a pending sample may wait for its frame when the
// limiter refuses one.
const DefaultFlush = 100 * time.Millisecond

// Config controls a Run.
type Config struct {
	Chart *sparkline.Chart
	// Stats, if set, observes every event and counts frames.
	Stats *stats.Collector
	// Limiter throttles renders. Nil renders after every accepted sample.
	Limiter *rate.Limiter
	// Frame is called after each render, typically to write the frame out.
	Frame func() error
	// Out, if set, receives every input event plus one FrameRendered per
	// frame. Sends block until received or ctx is done.
	Out chan<- event.Event
	// Flush bounds the delay of a pending frame. Zero means DefaultFlush.
	Flush time.Duration
}

// Result summarises a finished Run.
type Result struct {
	Samples int
	Frames  int
}

// NewLimiter returns a limiter allowing fps frames per second with no
// burst. fps <= 0 disables limiting.
func NewLimiter(fps float64) *rate.Limiter {
	if fps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(fps), 1)
}

// Run consumes in until it is closed, a StreamClosed event arrives or ctx
// ends. A sample that arrived after the last frame is always rendered
// before Run returns. The error of a StreamClosed event is returned.
func Run(ctx context.Context, in <-chan event.Event, cfg Config) (Result, error) {
	r := &runner{cfg: cfg}
	flush := cfg.Flush
	if flush <= 0 {
		flush = DefaultFlush
	}
	ticker := time.NewTicker(flush)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return r.res, ctx.Err()

		case <-ticker.C:
			if r.dirty {
				if err := r.frame(ctx); err != nil {
					return r.res, err
				}
			}

		case ev, ok := <-in:
			if !ok {
				return r.res, r.finish(ctx)
			}
			if cfg.Stats != nil {
				cfg.Stats.Observe(ev)
			}
			if err := r.forward(ctx, ev); err != nil {
				return r.res, err
			}

			switch ev.Type {
			case event.SampleReceived:
				cfg.Chart.Push(ev.Value)
				r.res.Samples++
				r.dirty = true
				if cfg.Limiter == nil || cfg.Limiter.Allow() {
					if err := r.frame(ctx); err != nil {
						return r.res, err
					}
				}
			case event.StreamClosed:
				if err := r.finish(ctx); err != nil {
					return r.res, err
				}
				return r.res, ev.Error
			}
		}
	}
}

type runner struct {
	cfg   Config
	res   Result
	dirty bool
}

func (r *runner) finish(ctx context.Context) error {
	if !r.dirty {
		return nil
	}
	return r.frame(ctx)
}

func (r *runner) frame(ctx context.Context) error {
	r.cfg.Chart.Render()
	r.dirty = false
	if r.cfg.Frame != nil {
		if err := r.cfg.Frame(); err != nil {
			return err
		}
	}
	r.res.Frames++
	if r.cfg.Stats != nil {
		r.cfg.Stats.AddFrames(1)
	}
	return r.forward(ctx, event.Event{
		Type:      event.FrameRendered,
		Timestamp: time.Now(),
		Value:     r.cfg.Chart.Last(),
	})
}

func (r *runner) forward(ctx context.Context, ev event.Event) error {
	if r.cfg.Out == nil {
		return nil
	}
	select {
	case r.cfg.Out <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
