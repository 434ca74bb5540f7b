package observer

import "sync"

// Row is a captured (step, object, count) CSV record.
type Row struct {
	Step   int
	Object string
	Count  int
}

// BufferTraceWriter captures trace lines in memory, for tests that assert
// on trace content without touching the filesystem.
type BufferTraceWriter struct {
	mu    sync.Mutex
	lines []string
}

func (b *BufferTraceWriter) WriteLine(line string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, line)
	return nil
}

func (b *BufferTraceWriter) Close() error { return nil }

// Lines returns a copy of every line written so far.
func (b *BufferTraceWriter) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// BufferCSVWriter captures CSV rows in memory.
type BufferCSVWriter struct {
	mu   sync.Mutex
	rows []Row
}

func (b *BufferCSVWriter) WriteRow(step int, object string, count int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = append(b.rows, Row{Step: step, Object: object, Count: count})
	return nil
}

func (b *BufferCSVWriter) Close() error { return nil }

// Rows returns a copy of every row written so far.
func (b *BufferCSVWriter) Rows() []Row {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Row, len(b.rows))
	copy(out, b.rows)
	return out
}
