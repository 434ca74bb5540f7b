// Package observer implements the two append-only sinks spec.md §4.7/§6
// describes: a line-oriented trace and a per-step object-count CSV. Both
// are small interfaces (spec.md §9: "a small sink trait/interface ...
// lets tests capture output without touching the filesystem") with
// file-backed and in-memory implementations.
package observer

// TraceWriter receives one line per applied (or skipped) firing, plus the
// per-step header lines.
type TraceWriter interface {
	WriteLine(line string) error
	Close() error
}

// CSVWriter receives one (step, object, count) row at a time.
type CSVWriter interface {
	WriteRow(step int, object string, count int) error
	Close() error
}

// NopTraceWriter discards every line. Useful when a caller wants the
// driver to run without producing a trace file.
type NopTraceWriter struct{}

func (NopTraceWriter) WriteLine(string) error { return nil }
func (NopTraceWriter) Close() error           { return nil }

// NopCSVWriter discards every row.
type NopCSVWriter struct{}

func (NopCSVWriter) WriteRow(int, string, int) error { return nil }
func (NopCSVWriter) Close() error                    { return nil }
