package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"github.com/olekukonko/tablewriter"
)

// Styles understood by ansi.Color
var (
	styleSuccess = ansi.Green
	styleError   = ansi.Red
	styleWarning = ansi.Yellow
	styleInfo    = ansi.Cyan
	styleDim     = "default+h"
)

// SupportsColor reports whether w is a terminal that can render ANSI colours
func SupportsColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsInteractive reports whether r is a terminal a prompt can read from
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) paint(text, style string) string {
	if !p.color {
		return text
	}
	return ansi.Color(text, style)
}

// Table renders rows under header as a borderless table
func (p *Printer) Table(header []string, rows [][]string) {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}
