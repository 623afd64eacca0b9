package combination

import (
	"bufio"
	"io"
	"strconv"
)

// Format renders a combination as space-separated integers.
// The empty combination renders as the empty string.
func Format(combination []int) string {
	buf := make([]byte, 0, len(combination)*4)
	return string(appendLine(buf, combination))
}

func appendLine(buf []byte, combination []int) []byte {
	for i, v := range combination {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	return buf
}

// LineWriter is a Sink that writes one combination per line.
type LineWriter struct {
	w       *bufio.Writer
	scratch []byte
	lines   int
}

// NewLineWriter returns a LineWriter writing to w.
// Call Flush once the enumeration has finished.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: bufio.NewWriter(w)}
}

// Emit writes the combination followed by a newline.
func (lw *LineWriter) Emit(combination []int) error {
	lw.scratch = appendLine(lw.scratch[:0], combination)
	lw.scratch = append(lw.scratch, '\n')
	if _, err := lw.w.Write(lw.scratch); err != nil {
		return err
	}
	lw.lines++
	return nil
}

// Flush writes any buffered lines to the underlying writer.
func (lw *LineWriter) Flush() error {
	return lw.w.Flush()
}

// Lines returns the number of lines emitted so far.
func (lw *LineWriter) Lines() int {
	return lw.lines
}

// WriteLines enumerates and writes every combination to w in line format.
func WriteLines(w io.Writer, denominations []int, target int) error {
	lw := NewLineWriter(w)
	if err := Enumerate(denominations, target, lw); err != nil {
		return err
	}
	return lw.Flush()
}
