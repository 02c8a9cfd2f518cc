package cli

import (
	"fmt"
	"io"
	"os"
)

// Printer is where a command writes output intended for the user.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a [Printer] writing to STDERR.
func NewPrinter() *Printer {
	return &Printer{out: os.Stderr}
}

// Redirect sends all further output to writer.
func (p *Printer) Redirect(writer io.Writer) {
	p.out = writer
}

// Writer returns the current destination, for output produced by encoders or other writers.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) Print(msg ...any) {
	_, _ = fmt.Fprint(p.out, msg...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p.out, msg...)
}
