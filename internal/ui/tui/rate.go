package tui

import (
	"fmt"
	"strings"

	"github.com/bamsammich/sparkline/internal/event"
	"github.com/bamsammich/sparkline/internal/stats"
	"github.com/bamsammich/sparkline/internal/ui"
)

// rateView shows ingest throughput rather than the chart itself.
type rateView struct {
	lastLine int // highest input line seen
}

func newRateView() rateView {
	return rateView{}
}

func (r *rateView) handleEvent(ev event.Event) {
	r.lastLine = max(r.lastLine, ev.Line)
}

func (r *rateView) view(width int, snap stats.Snapshot, collector *stats.Collector, count, capacity int) string {
	if width < 20 {
		width = 20
	}

	var b strings.Builder

	// Big throughput number.
	rate := collector.RollingRate(5)
	b.WriteString("  " + styleBigNumber.Render(ui.FormatRate(rate)))
	b.WriteByte('\n')
	b.WriteByte('\n')

	// Full-width sparkline (60-second history).
	sparkWidth := max(10, width-4)
	spark := ui.Sparkline(collector.SparklineData(sparkWidth), sparkWidth)
	b.WriteString("  " + styleSparkline.Render(spark))
	b.WriteByte('\n')
	b.WriteByte('\n')

	// Counters.
	fmt.Fprintf(&b, "  %s   %s   %s   %s\n",
		styleValue.Render(ui.FormatCount(snap.Accepted)+" samples"),
		styleRange.Render(ui.FormatCount(snap.Rejected)+" rejected"),
		styleRange.Render(ui.FormatCount(snap.Frames)+" frames"),
		styleRange.Render(fmt.Sprintf("line %s", ui.FormatCount(int64(r.lastLine)))),
	)
	b.WriteByte('\n')

	// Buffer fill.
	pct := 0.0
	if capacity > 0 {
		pct = float64(count) / float64(capacity)
	}
	fmt.Fprintf(&b, "  %s  %s  %s / %s\n",
		styleDivider.Render("buffer"),
		styleLive.Render(ui.ProgressBar(pct, 20)),
		ui.FormatCount(int64(count)),
		ui.FormatCount(int64(capacity)),
	)

	return b.String()
}
