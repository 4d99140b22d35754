package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/sparkline/internal/event"
)

func TestFeedView_RecordsRejections(t *testing.T) {
	f := newFeedView()
	f.handleEvent(event.Event{Type: event.SampleReceived, Value: 1, Line: 1})
	f.handleEvent(event.Event{Type: event.SampleRejected, Line: 2, Raw: "NaN", Error: errors.New("sample is not finite")})
	f.handleEvent(event.Event{Type: event.SampleRejected, Line: 3, Raw: "x"})

	require.Len(t, f.rejects, 2)
	assert.Equal(t, rejectEntry{line: 2, raw: "NaN", err: "sample is not finite"}, f.rejects[0])
	assert.Equal(t, "rejected", f.rejects[1].err)
}

func TestFeedView_HistoryIsBounded(t *testing.T) {
	f := newFeedView()
	for i := 0; i < maxRejects+25; i++ {
		f.handleEvent(event.Event{Type: event.SampleRejected, Line: i + 1, Raw: "x"})
	}
	require.Len(t, f.rejects, maxRejects)
	assert.Equal(t, 26, f.rejects[0].line)
}

func TestFeedView_EmptyView(t *testing.T) {
	f := newFeedView()
	out := f.view(80, 3)
	assert.Contains(t, out, "no rejected samples")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestFeedView_AutoScrollShowsNewest(t *testing.T) {
	f := newFeedView()
	for i := 0; i < 10; i++ {
		f.handleEvent(event.Event{Type: event.SampleRejected, Line: i + 1, Raw: fmt.Sprintf("bad%d", i)})
	}
	out := f.view(80, 3)
	assert.Contains(t, out, "bad9")
	assert.Contains(t, out, "bad7")
	assert.NotContains(t, out, "bad6")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestFeedView_Scrolling(t *testing.T) {
	f := newFeedView()
	for i := 0; i < 10; i++ {
		f.handleEvent(event.Event{Type: event.SampleRejected, Line: i + 1, Raw: fmt.Sprintf("bad%d", i)})
	}

	f.scrollToTop()
	assert.False(t, f.autoScroll)
	out := f.view(80, 3)
	assert.Contains(t, out, "bad0")
	assert.NotContains(t, out, "bad3")

	f.scrollDown()
	out = f.view(80, 3)
	assert.Contains(t, out, "bad1")
	assert.NotContains(t, out, "bad0")

	f.scrollUp()
	f.scrollUp() // clamped at 0
	assert.Equal(t, 0, f.scrollOffset)

	f.scrollToBottom()
	out = f.view(80, 3)
	assert.Contains(t, out, "bad9")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a", truncate("abc", 1))
}
