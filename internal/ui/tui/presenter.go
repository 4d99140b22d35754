package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamsammich/sparkline/internal/config"
	"github.com/bamsammich/sparkline/internal/event"
	"github.com/bamsammich/sparkline/internal/sparkline"
	"github.com/bamsammich/sparkline/internal/stats"
	"github.com/bamsammich/sparkline/internal/ui"
)

// Config configures the TUI presenter.
type Config struct {
	Stats    *stats.Collector
	Chart    *sparkline.Chart
	Theme    config.ThemeConfig
	Interval time.Duration // frame cadence
}

// Presenter wraps a Bubble Tea program and implements ui.Presenter.
type Presenter struct {
	cfg   Config
	model Model
}

var _ ui.Presenter = (*Presenter)(nil)

// NewPresenter creates a new TUI presenter.
func NewPresenter(cfg Config) *Presenter {
	ApplyTheme(cfg.Theme)
	return &Presenter{cfg: cfg}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func (p *Presenter) Run(events <-chan event.Event) error {
	p.model = NewModel(events, p.cfg.Stats, p.cfg.Chart, p.cfg.Interval)
	prog := tea.NewProgram(
		p.model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)
	finalModel, err := prog.Run()
	if err != nil {
		return err
	}
	p.model = finalModel.(Model)
	return nil
}

// Summary returns the final completion summary line.
func (p *Presenter) Summary() string {
	return ui.CompletionSummary(p.cfg.Stats.Snapshot())
}
