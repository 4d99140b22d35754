package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/sparkline/internal/config"
	"github.com/bamsammich/sparkline/internal/event"
	"github.com/bamsammich/sparkline/internal/output"
	"github.com/bamsammich/sparkline/internal/sparkline"
	"github.com/bamsammich/sparkline/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// app holds the flag values and the resolved configuration shared by all
// subcommands.
type app struct {
	verbose    bool
	debug      bool
	quiet      bool
	noProgress bool
	strict     bool
	logFile    string
	sets       []string
	width      int
	height     int
	scale      float64
	format     string
	capacity   int
	interval   time.Duration

	cfg     config.Config
	opts    config.Options
	logSink *os.File
}

func run() int {
	a := &app{}
	defer a.close()

	rootCmd := &cobra.Command{
		Use:   "sparkline",
		Short: "Render sparklines from numeric sample streams",
		Long: "sparkline draws compact line and bar charts from a stream of numbers,\n" +
			"as PNG, SVG, unicode text or a live terminal view.",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetVersionTemplate("sparkline {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	pf.BoolVar(&a.debug, "debug", false, "debug logging")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "suppress all output except errors")
	pf.BoolVar(&a.noProgress, "no-progress", false, "disable progress display")
	pf.BoolVar(&a.strict, "strict", false, "stop at the first sample that is not a finite number")
	pf.StringVar(&a.logFile, "log", "", "write structured JSON log to FILE")
	pf.StringArrayVar(&a.sets, "set", nil, "set a chart attribute, key=value (repeatable)")
	pf.IntVar(&a.width, "width", 240, "chart width in logical pixels")
	pf.IntVar(&a.height, "height", 48, "chart height in logical pixels")
	pf.Float64Var(&a.scale, "scale", 1, "device pixel ratio for image output")
	pf.StringVarP(&a.format, "format", "f", "", "output format: png, svg, text or term (default: from file extension)")
	pf.IntVar(&a.capacity, "capacity", 0, "number of samples kept (default: chart attribute or 100)")

	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newStreamCmd(a))
	rootCmd.AddCommand(docsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// setup configures logging, loads the config file and parses the chart
// attributes. Flags set on the command line win over the config file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logLevel := slog.LevelWarn
	switch {
	case a.debug:
		logLevel = slog.LevelDebug
	case a.verbose:
		logLevel = slog.LevelInfo
	case a.quiet:
		logLevel = slog.LevelError
	}
	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	var logHandler slog.Handler = textHandler
	if a.logFile != "" {
		lf, err := os.Create(a.logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logSink = lf
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	slog.SetDefault(slog.New(logHandler))

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config", "path", config.Path(), "error", err)
	}
	a.cfg = cfg
	if err := a.applyConfigDefaults(cmd.Flags(), cfg.Defaults); err != nil {
		return err
	}

	sets, err := config.ParseSet(a.sets)
	if err != nil {
		return err
	}
	opts, errs := config.Parse(config.Merge(cfg.ChartAttributes(), sets))
	for _, err := range errs {
		slog.Warn("chart attribute ignored", "error", err)
	}
	a.opts = opts

	slog.Debug("configured",
		"width", a.width,
		"height", a.height,
		"scale", a.scale,
		"format", a.format,
		"capacity", a.capacity,
		"type", opts.Render.Style.Kind,
	)
	return nil
}

// applyConfigDefaults applies config file defaults for flags not explicitly
// set on the CLI.
func (a *app) applyConfigDefaults(flags *pflag.FlagSet, defaults config.DefaultsConfig) error {
	if !flags.Changed("width") && defaults.Width != nil {
		a.width = *defaults.Width
	}
	if !flags.Changed("height") && defaults.Height != nil {
		a.height = *defaults.Height
	}
	if !flags.Changed("scale") && defaults.Scale != nil {
		a.scale = *defaults.Scale
	}
	if !flags.Changed("format") && defaults.Format != nil {
		a.format = *defaults.Format
	}
	if !flags.Changed("capacity") && defaults.Capacity != nil {
		a.capacity = *defaults.Capacity
	}
	if !flags.Changed("interval") && defaults.Interval != nil {
		d, err := time.ParseDuration(*defaults.Interval)
		if err != nil {
			return fmt.Errorf("config defaults.interval: %w", err)
		}
		a.interval = d
	}
	return nil
}

func (a *app) close() {
	if a.logSink != nil {
		a.logSink.Close()
	}
}

// newChart builds a chart from the parsed attributes. The data attribute
// seeds the buffer; an explicit capacity then trims or extends it.
func (a *app) newChart() *sparkline.Chart {
	capacity := a.explicitCapacity()

	size := capacity
	if size <= 0 {
		size = sparkline.DefaultCapacity
	}

	c := sparkline.New(nil, size)
	c.Configure(a.opts.Render)
	c.SetEvictPolicy(a.opts.Evict)
	if len(a.opts.Data) > 0 {
		c.SetData(a.opts.Data)
		if capacity > 0 {
			c.SetCapacity(float64(capacity))
		}
	}
	return c
}

func (a *app) size() output.Size {
	return output.Size{
		Width:  float64(a.width),
		Height: float64(a.height),
		Scale:  a.scale,
	}
}

// termSize fits the chart into the terminal: the width in cells is capped
// at the terminal width and every cell row holds six logical pixels.
func (a *app) termSize(fd uintptr) output.Size {
	cols, _ := ui.TermSize(fd)
	return output.Size{
		Width:  float64(max(1, min(a.width, cols))),
		Height: float64(max(2, a.height/6)),
		Scale:  1,
	}
}

// openInput returns the sample source named by args, or stdin.
func openInput(args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("open input: %w", err)
	}
	return f, args[0], nil
}

// teeEvents writes every event to the structured log before forwarding it.
// The returned channel is closed after in.
func teeEvents(in <-chan event.Event) <-chan event.Event {
	teed := make(chan event.Event, 256)
	go func() {
		for ev := range in {
			attrs := []slog.Attr{
				slog.String("type", ev.Type.String()),
				slog.Int("line", ev.Line),
				slog.Float64("value", ev.Value),
			}
			if ev.Raw != "" {
				attrs = append(attrs, slog.String("raw", ev.Raw))
			}
			if ev.Error != nil {
				attrs = append(attrs, slog.String("error", ev.Error.Error()))
			}
			slog.LogAttrs(context.Background(), slog.LevelDebug, "sparkline.event", attrs...)
			teed <- ev
		}
		close(teed)
	}()
	return teed
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
