package emit

import (
	"io"
	"slices"
	"strings"
)

// Sink is the append-only destination of emitted lines. Emitters never read
// back from it.
type Sink interface {
	Append(lines ...string)
}

// Buffer is an in-memory Sink that prefixes appended lines with the current
// indentation. It is not safe for concurrent use; concurrent passes each use
// their own Buffer.
type Buffer struct {
	unit  string
	level int
	lines []string
}

// NewBuffer returns an empty Buffer that indents with unit.
func NewBuffer(unit string) *Buffer {
	return &Buffer{unit: unit}
}

// Append adds lines at the current indentation. A line holding newlines is
// split first; blank lines are kept without indentation.
func (b *Buffer) Append(lines ...string) {
	prefix := strings.Repeat(b.unit, b.level)
	for _, chunk := range lines {
		for _, line := range strings.Split(chunk, "\n") {
			if strings.TrimSpace(line) == "" {
				b.lines = append(b.lines, "")
				continue
			}
			b.lines = append(b.lines, prefix+line)
		}
	}
}

// Indent increases the indentation of subsequent lines by one unit.
func (b *Buffer) Indent() { b.level++ }

// Dedent decreases the indentation by one unit, stopping at zero.
func (b *Buffer) Dedent() {
	if b.level > 0 {
		b.level--
	}
}

// Lines returns a copy of the buffered lines.
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int { return len(b.lines) }

// String joins the buffered lines, each terminated by a newline.
func (b *Buffer) String() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

// WriteTo writes the buffered lines to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}
