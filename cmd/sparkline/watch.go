package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bamsammich/sparkline/internal/event"
	"github.com/bamsammich/sparkline/internal/ingest"
	"github.com/bamsammich/sparkline/internal/stats"
	"github.com/bamsammich/sparkline/internal/ui"
	"github.com/bamsammich/sparkline/internal/ui/tui"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Show a live chart of a sample stream in the terminal",
		Long: "watch reads samples from FILE (or stdin) and redraws a full-screen chart\n" +
			"as they arrive. Keys: p pause, t toggle line/bar, x clear, s save PNG,\n" +
			"c/r/e switch views, q quit.",
		Example: "  ping -i 0.2 example.com | awk -F'time=' '{print $2+0}' | sparkline watch",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd.Context(), args)
		},
	}
	cmd.Flags().DurationVar(&a.interval, "interval", 250*time.Millisecond, "redraw interval")
	return cmd
}

func (a *app) runWatch(ctx context.Context, args []string) error {
	if !ui.IsTTY(os.Stdout.Fd()) {
		return errors.New("watch requires a terminal, use render or stream instead")
	}

	in, name, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	chart := a.newChart()
	collector := stats.NewCollector()
	events := make(chan event.Event, 256)

	// The TUI runs in the foreground; ingestion feeds it from the background.
	ingestCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		res       ingest.Result
		ingestErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		res, ingestErr = ingest.Run(ingestCtx, in, ingest.Config{Events: events, Strict: a.strict})
		close(events)
	}()

	presenterEvents := (<-chan event.Event)(events)
	if a.logFile != "" {
		presenterEvents = teeEvents(events)
	}

	presenter := tui.NewPresenter(tui.Config{
		Stats:    collector,
		Chart:    chart,
		Theme:    a.cfg.Theme,
		Interval: a.interval,
	})
	runErr := presenter.Run(presenterEvents)
	cancel()

	select {
	case <-done:
		if ingestErr != nil && !errors.Is(ingestErr, context.Canceled) {
			slog.Warn("input failed", "input", name, "error", ingestErr)
		}
		slog.Info("input closed", "input", name, "lines", res.Lines, "accepted", res.Accepted, "rejected", res.Rejected)
	default:
		// Still blocked reading input; process exit ends it.
	}

	if runErr != nil {
		return fmt.Errorf("tui: %w", runErr)
	}
	if !a.quiet {
		fmt.Fprintln(os.Stderr, presenter.Summary())
	}
	return nil
}
