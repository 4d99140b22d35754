// Package ingest reads numeric samples from a text stream.
package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/bamsammich/sparkline/internal/event"
)

// ErrNotFinite is reported for tokens that parse as NaN or ±Inf.
var ErrNotFinite = errors.New("sample is not finite")

// maxLine bounds a single input line.
const maxLine = 1 << 20

// Config controls a Run.
type Config struct {
	// Events receives one event per token and a final StreamClosed. Sends
	// block until received or ctx is done.
	Events chan<- event.Event
	// Strict stops the run at the first rejected token.
	Strict bool
}

// Result summarises a finished Run.
type Result struct {
	Accepted int
	Rejected int
	Lines    int
}

// Run reads r line by line. Tokens are separated by whitespace, commas or
// semicolons; everything after a '#' is a comment. The channel is not
// closed: StreamClosed is always the last event sent unless ctx ends first.
func Run(ctx context.Context, r io.Reader, cfg Config) (Result, error) {
	var res Result
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	err := func() error {
		for sc.Scan() {
			if err := ctx.Err(); err != nil {
				return err
			}
			res.Lines++
			line := sc.Text()
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			for _, tok := range Tokens(line) {
				v, err := ParseSample(tok)
				ev := event.Event{Type: event.SampleReceived, Value: v, Line: res.Lines, Raw: tok}
				if err != nil {
					ev = event.Event{Type: event.SampleRejected, Line: res.Lines, Raw: tok, Error: err}
					res.Rejected++
				} else {
					res.Accepted++
				}
				if sendErr := send(ctx, cfg.Events, ev); sendErr != nil {
					return sendErr
				}
				if err != nil && cfg.Strict {
					return fmt.Errorf("line %d: %w", res.Lines, err)
				}
			}
		}
		return sc.Err()
	}()

	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	if sendErr := send(ctx, cfg.Events, event.Event{Type: event.StreamClosed, Line: res.Lines, Error: err}); sendErr != nil {
		return res, sendErr
	}
	return res, err
}

// Tokens splits a line into sample tokens.
func Tokens(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
}

// ParseSample parses one token as a finite float64.
func ParseSample(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, fmt.Errorf("parse %q: %w", tok, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse %q: %w", tok, ErrNotFinite)
	}
	return v, nil
}

func send(ctx context.Context, ch chan<- event.Event, e event.Event) error {
	if ch == nil {
		return nil
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
