package codegen

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// indentUnit is the indentation emitted per level.
const indentUnit = "  "

// CodeWriter writes indented source lines to an underlying writer. The
// first write error sticks; later writes become no-ops and Flush
// reports the error.
type CodeWriter struct {
	w   *bufio.Writer
	err error
}

// NewCodeWriter wraps w in a buffered code writer.
func NewCodeWriter(w io.Writer) *CodeWriter {
	return &CodeWriter{w: bufio.NewWriter(w)}
}

// Writeln writes one line at the given indentation level.
func (c *CodeWriter) Writeln(indent int, line string) {
	if c.err != nil {
		return
	}
	if line == "" {
		c.Blank()
		return
	}
	_, c.err = c.w.WriteString(strings.Repeat(indentUnit, indent) + line + "\n")
}

// Writelnf formats and writes one line at the given indentation level.
func (c *CodeWriter) Writelnf(indent int, format string, args ...any) {
	c.Writeln(indent, fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (c *CodeWriter) Blank() {
	if c.err != nil {
		return
	}
	c.err = c.w.WriteByte('\n')
}

// Flush drains the buffer and returns the first error encountered.
func (c *CodeWriter) Flush() error {
	if c.err != nil {
		return c.err
	}
	return c.w.Flush()
}
