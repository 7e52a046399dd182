package transform

import (
	"iter"
	"log/slog"
)

// Output is one emitted unit: either the header or a data Record.
type Output struct {
	Header bool
	Record Record
}

// String returns the output line for o.
func (o Output) String() string {
	if o.Header {
		return Header
	}
	return o.Record.String()
}

// Stats counts what a Transformer has processed.
type Stats struct {
	Lines   int `json:"lines"`   // input lines consumed, including the first
	Records int `json:"records"` // data records emitted
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// Transformer holds the per-stream state: whether the first line has been
// seen, and running counts. It is not safe for concurrent use and is meant
// for a single input stream.
type Transformer struct {
	logger  *slog.Logger
	started bool
	stats   Stats
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger sets the logger used for per-record diagnostics.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Transformer.
func New(opts ...Option) *Transformer {
	t := &Transformer{logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Stream pulls lines one at a time and yields the header for the first line
// and one Record per later line. Each line is fully handled, and its output
// yielded, before the next one is pulled. If the consumer stops early, no
// further input is read. The sequence ends when lines ends.
func (t *Transformer) Stream(lines iter.Seq[string]) iter.Seq[Output] {
	return func(yield func(Output) bool) {
		for line := range lines {
			t.stats.Lines++

			if !t.started {
				t.started = true
				if !yield(Output{Header: true}) {
					return
				}
				continue
			}

			if !yield(Output{Record: t.record(line)}) {
				return
			}
		}
	}
}

// Process is Stream rendered as output lines.
func (t *Transformer) Process(lines iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for out := range t.Stream(lines) {
			if !yield(out.String()) {
				return
			}
		}
	}
}

// Stats returns the counts so far.
func (t *Transformer) Stats() Stats {
	return t.stats
}

func (t *Transformer) record(line string) Record {
	rec, out := transformLine(line)
	t.stats.Records++
	if m, ok := out.Matrix(); ok {
		t.stats.Valid++
		t.logger.Debug("rotated",
			"line", t.stats.Lines,
			"id", rec.ID,
			"size", m.Size(),
		)
	} else {
		t.stats.Invalid++
		t.logger.Debug("malformed field",
			"line", t.stats.Lines,
			"id", rec.ID,
			"error", out.Err(),
		)
	}
	return rec
}
