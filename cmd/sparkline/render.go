package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/sparkline/internal/event"
	"github.com/bamsammich/sparkline/internal/ingest"
	"github.com/bamsammich/sparkline/internal/output"
	"github.com/bamsammich/sparkline/internal/stats"
	"github.com/bamsammich/sparkline/internal/ui"
)

func newRenderCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart once from a file, stdin or the data attribute",
		Long: "render reads every sample from FILE (or stdin) and writes a single chart.\n" +
			"When no FILE is given and the data attribute is set, stdin is not read.",
		Example: "  seq 1 20 | sparkline render -o chart.png\n" +
			"  sparkline render --set data=1,4,2,8 --set type=bar -f text",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd.Context(), args, outPath)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to FILE instead of stdout")
	return cmd
}

func (a *app) runRender(ctx context.Context, args []string, outPath string) error {
	chart := a.newChart()
	collector := stats.NewCollector()

	if len(args) > 0 || len(a.opts.Data) == 0 {
		in, name, err := openInput(args)
		if err != nil {
			return err
		}
		defer in.Close()

		values, err := readSamples(ctx, in, a.strict, collector)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if len(values) > 0 {
			chart.SetData(values)
			if c := a.explicitCapacity(); c > 0 {
				chart.SetCapacity(float64(c))
			}
		}
	}
	if chart.Count() < 2 {
		slog.Warn("fewer than two samples, only the background is drawn", "samples", chart.Count())
	}

	toStdout := outPath == "" || outPath == "-"
	fallback := output.PNG
	if toStdout && ui.IsTTY(os.Stdout.Fd()) {
		fallback = output.Term
	}
	format, err := output.FormatFor(outPath, a.format, fallback)
	if err != nil {
		return err
	}
	size := a.size()
	if format == output.Term {
		size = a.termSize(os.Stdout.Fd())
	}

	if toStdout {
		err = output.Write(os.Stdout, chart, format, size)
	} else {
		err = output.WriteFile(outPath, chart, format, size)
	}
	if err != nil {
		return err
	}

	snap := collector.Snapshot()
	bounds := chart.Bounds()
	slog.Info("rendered",
		"format", format,
		"samples", chart.Count(),
		"rejected", snap.Rejected,
		"lower", bounds.Lower,
		"upper", bounds.Upper,
	)
	return nil
}

// explicitCapacity returns the capacity set by flag, config or attribute,
// or 0.
func (a *app) explicitCapacity() int {
	if a.capacity > 0 {
		return a.capacity
	}
	return a.opts.Capacity
}

// readSamples reads every finite sample from r. Rejected tokens are logged
// and counted.
func readSamples(ctx context.Context, r io.Reader, strict bool, collector *stats.Collector) ([]float64, error) {
	events := make(chan event.Event, 256)
	var values []float64
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			collector.Observe(ev)
			switch ev.Type {
			case event.SampleReceived:
				values = append(values, ev.Value)
			case event.SampleRejected:
				slog.Warn("sample rejected", "line", ev.Line, "token", ev.Raw, "error", ev.Error)
			}
		}
	}()

	res, err := ingest.Run(ctx, r, ingest.Config{Events: events, Strict: strict})
	close(events)
	<-done

	slog.Debug("input read", "lines", res.Lines, "accepted", res.Accepted, "rejected", res.Rejected)
	return values, err
}
