package git

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressWriter turns go-git's sideband progress, which redraws lines with
// carriage returns, into one indented line per distinct message
type ProgressWriter struct {
	out      io.Writer
	mu       sync.Mutex
	pending  string
	lastLine string
}

// NewProgressWriter creates a progress writer on out
func NewProgressWriter(out io.Writer) *ProgressWriter {
	return &ProgressWriter{out: out}
}

// Write implements io.Writer
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	data := pw.pending + string(p)
	data = strings.ReplaceAll(data, "\r", "\n")

	lines := strings.Split(data, "\n")
	pw.pending = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		pw.printLine(line)
	}
	return len(p), nil
}

// Flush prints any partial line still buffered
func (pw *ProgressWriter) Flush() {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	pw.printLine(pw.pending)
	pw.pending = ""
}

func (pw *ProgressWriter) printLine(line string) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "remote:"))
	if line == "" || line == pw.lastLine {
		return
	}
	// Percentage redraws of the same phase collapse into the final one
	if phase(line) != "" && phase(line) == phase(pw.lastLine) && !strings.Contains(line, "done") {
		return
	}
	pw.lastLine = line
	fmt.Fprintf(pw.out, "  %s\n", line)
}

// phase returns the "Counting objects" part of "Counting objects:  40% (2/5)"
func phase(line string) string {
	if i := strings.Index(line, ":"); i > 0 {
		return line[:i]
	}
	return ""
}
