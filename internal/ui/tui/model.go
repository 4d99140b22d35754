package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamsammich/sparkline/internal/canvas/raster"
	"github.com/bamsammich/sparkline/internal/event"
	"github.com/bamsammich/sparkline/internal/series"
	"github.com/bamsammich/sparkline/internal/sparkline"
	"github.com/bamsammich/sparkline/internal/stats"
	"github.com/bamsammich/sparkline/internal/ui"
)

type viewMode int

const (
	viewChart viewMode = iota
	viewRate
	viewRejects
)

// Bubble Tea messages.
type streamEventMsg event.Event
type channelDoneMsg struct{}
type tickMsg time.Time
type frameMsg time.Time
type saveResultMsg struct{ err error }

// readNextEvent returns a tea.Cmd that blocks on the event channel.
func readNextEvent(ch <-chan event.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return channelDoneMsg{}
		}
		return streamEventMsg(ev)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// saveModal manages the text input overlay for saving a PNG snapshot.
type saveModal struct {
	active bool
	input  string
	cursor int
}

func (s *saveModal) insertRune(r rune) {
	s.input = s.input[:s.cursor] + string(r) + s.input[s.cursor:]
	s.cursor++
}

func (s *saveModal) backspace() {
	if s.cursor > 0 {
		s.input = s.input[:s.cursor-1] + s.input[s.cursor:]
		s.cursor--
	}
}

func (s *saveModal) deleteChar() {
	if s.cursor < len(s.input) {
		s.input = s.input[:s.cursor] + s.input[s.cursor+1:]
	}
}

func (s *saveModal) moveLeft() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *saveModal) moveRight() {
	if s.cursor < len(s.input) {
		s.cursor++
	}
}

func (s *saveModal) render() string {
	prompt := styleSavePrompt.Render("Save PNG to: ")
	before := s.input[:s.cursor]
	after := s.input[s.cursor:]
	cursor := styleSaveInput.Render("█")
	return "  " + prompt + styleSaveInput.Render(before) + cursor + styleSaveInput.Render(after)
}

// Model is the root Bubble Tea model of the watch view. It owns the chart:
// samples are pushed on the event loop and the surface is redrawn on the
// frame tick.
type Model struct {
	events   <-chan event.Event
	stats    *stats.Collector
	chart    *sparkline.Chart
	surface  *raster.Surface
	interval time.Duration

	mode      viewMode
	feed      feedView
	rate      rateView
	width     int
	height    int
	frame     string // last half-block rendering of the chart
	frameW    int
	frameH    int
	statusMsg string // transient notification
	paused    bool
	done      bool // input stream closed
	quitting  bool

	lastSnap stats.Snapshot
	lastRate float64

	save saveModal
}

// NewModel creates a new watch model drawing chart onto an off-screen
// raster surface every interval.
func NewModel(events <-chan event.Event, collector *stats.Collector, chart *sparkline.Chart, interval time.Duration) Model {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	surface := raster.New(0, 0)
	chart.Attach(surface)
	return Model{
		events:   events,
		stats:    collector,
		chart:    chart,
		surface:  surface,
		interval: interval,
		feed:     newFeedView(),
		rate:     newRateView(),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		readNextEvent(m.events),
		tickCmd(),
		frameCmd(m.interval),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.redraw()
		return m, nil

	case streamEventMsg:
		return m.handleStreamEvent(event.Event(msg))

	case channelDoneMsg:
		m.done = true
		m.lastSnap = m.stats.Snapshot()
		m.lastRate = m.stats.RollingRate(5)
		m.redraw()
		return m, nil

	case tickMsg:
		m.stats.Tick()
		m.lastSnap = m.stats.Snapshot()
		m.lastRate = m.stats.RollingRate(5)
		return m, tickCmd()

	case frameMsg:
		if !m.paused {
			m.redraw()
		}
		return m, frameCmd(m.interval)

	case saveResultMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			m.statusMsg = fmt.Sprintf("saved to %s", m.save.input)
		}
		m.save.active = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// When save modal is active, capture all input.
	if m.save.active {
		return m.handleSaveKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "c":
		m.mode = viewChart
		m.statusMsg = ""
		return m, nil

	case "r":
		m.mode = viewRate
		m.statusMsg = ""
		return m, nil

	case "e":
		m.mode = viewRejects
		m.statusMsg = ""
		return m, nil

	case "p", " ":
		m.paused = !m.paused
		if m.paused {
			m.statusMsg = "paused: samples are counted but not plotted"
		} else {
			m.statusMsg = ""
		}
		return m, nil

	case "t":
		next := series.Bar
		if m.chart.Config().Style.Kind == series.Bar {
			next = series.Line
		}
		m.chart.SetType(next)
		m.statusMsg = "type: " + next.String()
		m.redraw()
		return m, nil

	case "x":
		capacity := m.chart.Capacity()
		m.chart.SetData(nil)
		m.chart.SetCapacity(float64(capacity))
		m.statusMsg = "cleared"
		m.redraw()
		return m, nil

	// Scroll keys for the rejects view.
	case "j", "down":
		if m.mode == viewRejects {
			m.feed.scrollDown()
		}
		return m, nil

	case "k", "up":
		if m.mode == viewRejects {
			m.feed.scrollUp()
		}
		return m, nil

	case "G":
		if m.mode == viewRejects {
			m.feed.scrollToBottom()
		}
		return m, nil

	case "g":
		if m.mode == viewRejects {
			m.feed.scrollToTop()
		}
		return m, nil

	case "s":
		m.save.active = true
		m.save.input = fmt.Sprintf("sparkline-%s.png", time.Now().Format("2006-01-02-150405"))
		m.save.cursor = len(m.save.input)
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.save.active = false
		m.statusMsg = ""
		return m, nil

	case tea.KeyEnter:
		return m, m.writeSnapshot(m.save.input)

	case tea.KeyBackspace:
		m.save.backspace()
		return m, nil

	case tea.KeyDelete:
		m.save.deleteChar()
		return m, nil

	case tea.KeyLeft:
		m.save.moveLeft()
		return m, nil

	case tea.KeyRight:
		m.save.moveRight()
		return m, nil

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.save.insertRune(r)
		}
		return m, nil
	}

	return m, nil
}

// writeSnapshot renders the current samples onto a fresh 4x raster surface
// and writes it as PNG. The chart is rendered on the event loop; only the
// encoding and file write run in the command.
func (m Model) writeSnapshot(path string) tea.Cmd {
	const scale = 4
	out := raster.New(0, 0)
	m.chart.Attach(out)
	m.chart.Resize(float64(max(1, m.frameW)), float64(max(1, m.frameH)*2), scale)
	m.chart.Attach(m.surface)

	return func() tea.Msg {
		f, err := os.Create(path) //nolint:gosec // user-chosen path for snapshot output
		if err != nil {
			return saveResultMsg{err: err}
		}
		if err := out.EncodePNG(f); err != nil {
			f.Close()
			return saveResultMsg{err: err}
		}
		return saveResultMsg{err: f.Close()}
	}
}

func (m Model) handleStreamEvent(ev event.Event) (tea.Model, tea.Cmd) {
	m.stats.Observe(ev)
	if ev.Type == event.SampleReceived && !m.paused {
		m.chart.Push(ev.Value)
	}

	m.feed.handleEvent(ev)
	m.rate.handleEvent(ev)

	return m, readNextEvent(m.events)
}

// chartSize returns the chart area in terminal cells.
func (m Model) chartSize() (int, int) {
	return max(1, m.width-4), max(1, m.height-4) // header, blank, status, footer
}

// redraw renders the chart into m.frame, resizing the surface when the
// terminal changed size.
func (m *Model) redraw() {
	cols, rows := m.chartSize()
	if cols != m.frameW || rows != m.frameH {
		m.frameW, m.frameH = cols, rows
		m.chart.Resize(float64(cols), float64(rows*2), 1)
	} else {
		m.chart.Render()
	}
	m.frame = ui.HalfBlocks(m.surface.Image())
	m.stats.AddFrames(1)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Header (1 line).
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	// Content area.
	contentHeight := max(3, m.height-4)

	switch m.mode {
	case viewChart:
		for _, line := range strings.Split(m.frame, "\n") {
			b.WriteString("  " + line + "\n")
		}
	case viewRate:
		b.WriteString(m.rate.view(m.width, m.lastSnap, m.stats, m.chart.Count(), m.chart.Capacity()))
	case viewRejects:
		b.WriteString(m.feed.view(m.width, contentHeight))
	}

	// Save modal or status message.
	switch {
	case m.save.active:
		b.WriteString(m.save.render())
	case m.statusMsg != "":
		b.WriteString(styleStatus.Render("  " + m.statusMsg))
	}
	b.WriteByte('\n')

	// Footer.
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	state := styleLive.Render("● live")
	switch {
	case m.done:
		state = styleDone.Render("■ closed")
	case m.paused:
		state = stylePaused.Render("‖ paused")
	}

	last := "--"
	rng := ""
	if m.chart.Count() > 0 {
		last = ui.FormatValue(m.chart.Last())
		bounds := m.chart.Bounds()
		rng = styleRange.Render(fmt.Sprintf("%s..%s", ui.FormatValue(bounds.Lower), ui.FormatValue(bounds.Upper)))
	}

	header := fmt.Sprintf("  %s  %s  %s samples  last %s  %s  %s",
		styleHeaderLabel.Render("sparkline"),
		state,
		ui.FormatCount(m.lastSnap.Accepted),
		styleValue.Render(last),
		rng,
		ui.FormatRate(m.lastRate),
	)
	return styleHeader.Render(header)
}

func (m Model) renderFooter() string {
	type keybind struct {
		key   string
		label string
	}

	binds := []keybind{
		{"q", "quit"},
		{"c", "chart"},
		{"r", "rate"},
		{"e", "rejects"},
		{"p", "pause"},
		{"t", "type"},
		{"x", "clear"},
		{"s", "save png"},
	}
	if m.mode == viewRejects {
		binds = append(binds, keybind{"j/k", "scroll"})
	}

	var parts []string
	for _, kb := range binds {
		parts = append(parts,
			styleKeybindKey.Render(kb.key)+" "+styleKeybindLabel.Render(kb.label))
	}

	return "  " + strings.Join(parts, "   ")
}
