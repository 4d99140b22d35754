package tui

import (
	"fmt"
	"strings"

	"github.com/bamsammich/sparkline/internal/event"
)

// maxRejects bounds the rejected-sample history.
const maxRejects = 200

type rejectEntry struct {
	line int
	raw  string
	err  string
}

// feedView lists rejected input tokens, newest at the bottom.
type feedView struct {
	rejects      []rejectEntry
	scrollOffset int  // viewport offset into rejects
	autoScroll   bool // follow new entries
}

func newFeedView() feedView {
	return feedView{autoScroll: true}
}

func (f *feedView) handleEvent(ev event.Event) {
	if ev.Type != event.SampleRejected {
		return
	}
	msg := "rejected"
	if ev.Error != nil {
		msg = ev.Error.Error()
	}
	f.rejects = append(f.rejects, rejectEntry{line: ev.Line, raw: ev.Raw, err: msg})
	if len(f.rejects) > maxRejects {
		f.rejects = f.rejects[len(f.rejects)-maxRejects:]
	}
}

func (f *feedView) scrollUp() {
	f.autoScroll = false
	if f.scrollOffset > 0 {
		f.scrollOffset--
	}
}

func (f *feedView) scrollDown() {
	f.autoScroll = false
	f.scrollOffset++
}

func (f *feedView) scrollToTop() {
	f.autoScroll = false
	f.scrollOffset = 0
}

func (f *feedView) scrollToBottom() {
	f.autoScroll = true
}

func (f *feedView) view(width, height int) string {
	if height < 1 {
		height = 1
	}
	var b strings.Builder
	if len(f.rejects) == 0 {
		b.WriteString("  " + styleRejectLine.Render("no rejected samples"))
		b.WriteByte('\n')
		for i := 0; i < height-1; i++ {
			b.WriteByte('\n')
		}
		return b.String()
	}

	maxOffset := max(0, len(f.rejects)-height)
	if f.autoScroll || f.scrollOffset > maxOffset {
		f.scrollOffset = maxOffset
	}
	end := min(len(f.rejects), f.scrollOffset+height)

	rawWidth := max(8, width/4)
	for _, e := range f.rejects[f.scrollOffset:end] {
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			styleRejectLine.Render(fmt.Sprintf("line %6d", e.line)),
			styleRejectRaw.Render(truncate(fmt.Sprintf("%q", e.raw), rawWidth)),
			styleRejectErr.Render(e.err),
		)
	}
	for i := 0; i < height-(end-f.scrollOffset); i++ {
		b.WriteByte('\n')
	}
	return b.String()
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
