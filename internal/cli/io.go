package cli

import (
	"bufio"
	"fmt"
	"io"
)

// IO wraps the output phase's writers: a buffered stdout writer (the
// stdout lock held for the entire output phase, per the engine's
// ordering guarantee) and a plain stderr writer for diagnostics.
type IO struct {
	out    *bufio.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance over out and errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: bufio.NewWriter(out), errOut: errOut}
}

// Printf writes formatted output to the buffered stdout writer.
func (o *IO) Printf(format string, a ...any) error {
	_, err := fmt.Fprintf(o.out, format, a...)

	return err
}

// Println writes to the buffered stdout writer.
func (o *IO) Println(a ...any) error {
	_, err := fmt.Fprintln(o.out, a...)

	return err
}

// ErrPrintln writes a diagnostic line to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Flush commits the buffered stdout writer: the one commit point for
// report-mode output.
func (o *IO) Flush() error {
	return o.out.Flush()
}
