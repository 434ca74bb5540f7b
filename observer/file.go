package observer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
)

// FileTraceWriter appends trace lines to a text file, buffered and flushed
// on Close (spec.md §5: "append-only sinks ... flushed at end-of-run").
type FileTraceWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewFileTraceWriter opens (creating or truncating) path for trace output.
func NewFileTraceWriter(path string) (*FileTraceWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("observer: opening trace file: %w", err)
	}
	return &FileTraceWriter{f: f, w: bufio.NewWriter(f)}, nil
}

func (t *FileTraceWriter) WriteLine(line string) error {
	_, err := fmt.Fprintln(t.w, line)
	return err
}

func (t *FileTraceWriter) Close() error {
	if err := t.w.Flush(); err != nil {
		t.f.Close()
		return err
	}
	return t.f.Close()
}

// FileCSVWriter appends rows to a CSV file with columns step,object,count
// (spec.md §6), via the standard library's encoding/csv — no third-party
// CSV writer appears anywhere in the retrieved corpus, so this is the one
// ambient piece this module leaves on the standard library (see
// DESIGN.md).
type FileCSVWriter struct {
	f *os.File
	w *csv.Writer
}

// NewFileCSVWriter opens (creating or truncating) path and writes the
// header row.
func NewFileCSVWriter(path string) (*FileCSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("observer: opening csv file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "object", "count"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("observer: writing csv header: %w", err)
	}
	return &FileCSVWriter{f: f, w: w}, nil
}

func (c *FileCSVWriter) WriteRow(step int, object string, count int) error {
	return c.w.Write([]string{fmt.Sprintf("%d", step), object, fmt.Sprintf("%d", count)})
}

func (c *FileCSVWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}
