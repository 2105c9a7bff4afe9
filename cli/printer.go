package cli

import (
	"fmt"
	"io"
	"os"
)

// Printer writes user-visible output that isn't the result of a command, like usage information.
type Printer struct {
	out io.Writer
}

func NewPrinter() *Printer {
	return &Printer{out: os.Stderr}
}

func (p *Printer) Redirect(writer io.Writer) {
	p.out = writer
}

// Write allows a Printer to be used as the output of a [flag.FlagSet].
func (p *Printer) Write(b []byte) (int, error) {
	return p.out.Write(b)
}

func (p *Printer) Print(msg ...any) {
	_, _ = fmt.Fprint(p.out, msg...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}
