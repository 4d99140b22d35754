package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/sparkline/internal/buffer"
	"github.com/bamsammich/sparkline/internal/geom"
	"github.com/bamsammich/sparkline/internal/stats"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

const (
	defaultSparkWidth = 40
	hudLines          = 2
	hudMinInterval    = 50 * time.Millisecond // don't redraw faster than this
)

// hudPresenter provides a TTY display with a scrolling feed of rejected
// samples and a 2-line HUD that redraws in place.
type hudPresenter struct {
	w      io.Writer
	stats  *stats.Collector
	window *buffer.Buffer // most recent samples, one per sparkline cell
	width  int

	// Internal state.
	hudDrawn    bool
	lastHUDDraw time.Time
}

func newHudPresenter(w io.Writer, collector *stats.Collector, width int) *hudPresenter {
	if width <= 0 {
		width = defaultSparkWidth
	}
	window := buffer.New(width)
	window.SetEvictPolicy(buffer.RescanOnEvict)
	return &hudPresenter{
		w:      w,
		stats:  collector,
		window: window,
		width:  width,
	}
}

func (p *hudPresenter) Run(events <-chan Event) error {
	// Fire first tick quickly to seed the ring buffer, then switch to 1s.
	secTicker := time.NewTicker(250 * time.Millisecond)
	defer secTicker.Stop()
	firstTickDone := false

	// Redraw ticker for when no events are flowing.
	redrawTicker := time.NewTicker(100 * time.Millisecond)
	defer redrawTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clearHUD()
				return nil
			}
			p.handleEvent(ev)
			p.maybeDrawHUD()

		case <-redrawTicker.C:
			p.drawHUD()

		case <-secTicker.C:
			p.stats.Tick()
			if !firstTickDone {
				firstTickDone = true
				secTicker.Reset(1 * time.Second)
			}
		}
	}
}

func (p *hudPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case SampleReceived:
		p.window.Push(ev.Value)

	case SampleRejected:
		p.clearHUD()
		p.printRejected(ev)
		p.drawHUD() // always redraw HUD after feed line

	case StreamClosed:
		if ev.Error != nil {
			p.clearHUD()
			fmt.Fprintf(p.w, "✗  stream closed: %v\n", ev.Error)
			p.drawHUD()
		}
	}
}

func (p *hudPresenter) printRejected(ev Event) {
	errMsg := "rejected"
	if ev.Error != nil {
		errMsg = ev.Error.Error()
	}
	fmt.Fprintf(p.w, "✗  %sline %d%s  %q  %s\n", ansiDim, ev.Line, ansiReset, ev.Raw, errMsg)
}

// maybeDrawHUD redraws the HUD if enough time has passed since the last draw.
func (p *hudPresenter) maybeDrawHUD() {
	if time.Since(p.lastHUDDraw) < hudMinInterval {
		return
	}
	p.drawHUD()
}

func (p *hudPresenter) drawHUD() {
	snap := p.stats.Snapshot()

	// Clear previous HUD if drawn.
	p.clearHUD()

	// Line 1: recent values + last value + visible range.
	values := p.window.Values()
	spark := SparklineBounds(values, p.width, geom.Bounds{Lower: p.window.Min(), Upper: p.window.Max()})
	if len(values) == 0 {
		fmt.Fprintf(p.w, "  %s   %slast --%s\n", spark, ansiDim, ansiReset)
	} else {
		fmt.Fprintf(p.w, "  %s   %slast %s%s   %s..%s\n",
			spark, ansiBold, FormatValue(p.window.Last()), ansiReset,
			FormatValue(p.window.Min()), FormatValue(p.window.Max()))
	}

	// Line 2: counters + rate.
	fmt.Fprintf(p.w, "  %s samples   %s   %s frames   %s rejected\n",
		FormatCount(snap.Accepted), FormatRate(p.stats.RollingRate(5)),
		FormatCount(snap.Frames), FormatCount(snap.Rejected))

	p.hudDrawn = true
	p.lastHUDDraw = time.Now()
}

func (p *hudPresenter) clearHUD() {
	if !p.hudDrawn {
		return
	}
	// Move cursor up N lines and clear to end of screen.
	fmt.Fprintf(p.w, "\033[%dA\033[J", hudLines)
	p.hudDrawn = false
}

func (p *hudPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
