package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/bamsammich/sparkline/internal/event"
	"github.com/bamsammich/sparkline/internal/ingest"
	"github.com/bamsammich/sparkline/internal/output"
	"github.com/bamsammich/sparkline/internal/stats"
	"github.com/bamsammich/sparkline/internal/stream"
	"github.com/bamsammich/sparkline/internal/ui"
)

func newStreamCmd(a *app) *cobra.Command {
	var (
		outPath string
		fps     float64
	)
	cmd := &cobra.Command{
		Use:   "stream [file]",
		Short: "Re-render the chart as samples arrive",
		Long: "stream reads samples from FILE (or stdin) and rewrites the output after\n" +
			"every sample, at most --fps times per second. Image files are replaced\n" +
			"atomically; on stdout each frame is written in turn.",
		Example: "  tail -f latency.log | sparkline stream -o latency.svg --fps 2\n" +
			"  vmstat 1 | awk '{print $15}' | sparkline stream -f text",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStream(cmd.Context(), args, outPath, fps)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "rewrite FILE on every frame instead of writing to stdout")
	cmd.Flags().Float64Var(&fps, "fps", 10, "maximum frames per second (0 renders every sample)")
	return cmd
}

func (a *app) runStream(ctx context.Context, args []string, outPath string, fps float64) error {
	toStdout := outPath == "" || outPath == "-"
	fallback := output.PNG
	if toStdout {
		fallback = output.Text
	}
	format, err := output.FormatFor(outPath, a.format, fallback)
	if err != nil {
		return err
	}
	stdoutTTY := ui.IsTTY(os.Stdout.Fd())
	if toStdout && stdoutTTY && (format == output.PNG || format == output.SVG) {
		return fmt.Errorf("refusing to write %s frames to a terminal, use -o FILE or -f text", format)
	}
	size := a.size()
	if format == output.Term {
		size = a.termSize(os.Stdout.Fd())
	}

	in, name, err := openInput(args)
	if err != nil {
		return err
	}
	defer in.Close()

	chart := a.newChart()
	collector := stats.NewCollector()
	frame := func() error {
		if toStdout {
			return output.Write(os.Stdout, chart, format, size)
		}
		return output.WriteFile(outPath, chart, format, size)
	}

	ingestCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	samples := make(chan event.Event, 256)
	go func() {
		res, err := ingest.Run(ingestCtx, in, ingest.Config{Events: samples, Strict: a.strict})
		slog.Debug("input closed", "input", name, "lines", res.Lines, "accepted", res.Accepted, "rejected", res.Rejected, "error", err)
	}()

	frames := make(chan event.Event, 256)
	presenterEvents := (<-chan event.Event)(frames)
	if a.logFile != "" {
		presenterEvents = teeEvents(frames)
	}

	// Frames on stdout would interleave with progress output.
	writer := os.Stdout
	if toStdout {
		writer = os.Stderr
	}
	presenter := ui.NewPresenter(ui.Config{
		Writer:     writer,
		ErrWriter:  os.Stderr,
		Stats:      collector,
		IsTTY:      ui.IsTTY(os.Stderr.Fd()),
		Quiet:      a.quiet,
		NoProgress: a.noProgress || (toStdout && stdoutTTY),
	})

	var presenterErr error
	var presenterWg sync.WaitGroup
	presenterWg.Add(1)
	go func() {
		defer presenterWg.Done()
		presenterErr = presenter.Run(presenterEvents)
	}()

	slog.Debug("streaming", "input", name, "output", outPath, "format", format, "fps", fps)
	result, err := stream.Run(ctx, samples, stream.Config{
		Chart:   chart,
		Stats:   collector,
		Limiter: stream.NewLimiter(fps),
		Frame:   frame,
		Out:     frames,
	})
	close(frames)
	presenterWg.Wait()
	if presenterErr != nil {
		fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
	}

	if !a.quiet {
		if summary := presenter.Summary(); summary != "" {
			fmt.Fprintln(os.Stderr, summary)
		}
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("interrupted", "samples", result.Samples, "frames", result.Frames)
			return nil
		}
		slog.Error("stream failed", "error", err)
		if result.Frames > 0 {
			return &exitError{code: 1} // partial output written
		}
		return &exitError{code: 2}
	}
	return nil
}
