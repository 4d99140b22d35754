package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/sparkline/internal/stats"
)

// plainPresenter prints rejected samples to stdout and periodic progress to
// stderr when not a TTY.
type plainPresenter struct {
	w     io.Writer
	errW  io.Writer
	stats *stats.Collector
	last  float64
	seen  bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	progress := time.NewTicker(5 * time.Second)
	defer progress.Stop()
	sec := time.NewTicker(time.Second)
	defer sec.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-sec.C:
			p.stats.Tick()
		case <-progress.C:
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case SampleReceived:
		p.last, p.seen = ev.Value, true
	case SampleRejected:
		errMsg := "rejected"
		if ev.Error != nil {
			errMsg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "line %d  %q  %s\n", ev.Line, ev.Raw, errMsg)
	case StreamClosed:
		if ev.Error != nil {
			fmt.Fprintf(p.w, "stream closed: %v\n", ev.Error)
		}
	case FrameRendered:
		// silent in plain mode
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	last := "--"
	if p.seen {
		last = FormatValue(p.last)
	}
	fmt.Fprintf(p.errW, "progress: %s samples %s frames %s last %s\n",
		FormatCount(snap.Accepted),
		FormatCount(snap.Frames),
		FormatRate(p.stats.RollingRate(5)),
		last,
	)
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
