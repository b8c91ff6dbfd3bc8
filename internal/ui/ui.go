package ui

import (
	"fmt"
	"io"
)

// Status symbols prefixed to outcome lines
const (
	SymbolSuccess = "✓"
	SymbolFailure = "❌"
)

// Printer writes user-facing output. Diagnostics belong in the logger, not here.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a printer on out. Colour is used only when out is a
// terminal and noColor is false.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	return &Printer{
		out:   out,
		color: !noColor && SupportsColor(out),
	}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Printf prints formatted output
func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// Println prints a line
func (p *Printer) Println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}

// Success prints "✓ message"
func (p *Printer) Success(message string) {
	fmt.Fprintf(p.out, "%s %s\n", p.paint(SymbolSuccess, styleSuccess), message)
}

// Failure prints "❌ message"
func (p *Printer) Failure(message string) {
	fmt.Fprintf(p.out, "%s %s\n", p.paint(SymbolFailure, styleError), message)
}

// Warning prints a highlighted line without a symbol
func (p *Printer) Warning(message string) {
	fmt.Fprintln(p.out, p.paint(message, styleWarning))
}

// Info prints a progress line such as "Staging changes..."
func (p *Printer) Info(message string) {
	fmt.Fprintln(p.out, p.paint(message, styleInfo))
}

// Dim renders text de-emphasised
func (p *Printer) Dim(text string) string {
	return p.paint(text, styleDim)
}
