// Package console prints colored status lines for CLI commands.
package console

import (
	"fmt"
	"io"
	"os"
)

// Color output helpers
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
)

// Printer writes status lines to w. Colors are only used when w is a
// terminal.
type Printer struct {
	w     io.Writer
	color bool
}

func New(w io.Writer) *Printer {
	return &Printer{w: w, color: isTerminal(w)}
}

// Success prints a success message
func (p *Printer) Success(msg string, args ...interface{}) {
	p.print(ColorGreen, "✓ ", msg, args...)
}

// Error prints an error message
func (p *Printer) Error(msg string, args ...interface{}) {
	p.print(ColorRed, "✗ ", msg, args...)
}

// Info prints an info message
func (p *Printer) Info(msg string, args ...interface{}) {
	p.print(ColorCyan, "ℹ ", msg, args...)
}

// Warning prints a warning message
func (p *Printer) Warning(msg string, args ...interface{}) {
	p.print(ColorYellow, "⚠ ", msg, args...)
}

// Plain prints msg without a marker.
func (p *Printer) Plain(msg string, args ...interface{}) {
	fmt.Fprintf(p.w, msg+"\n", args...)
}

func (p *Printer) print(color, marker, msg string, args ...interface{}) {
	line := fmt.Sprintf(marker+msg, args...)
	if p.color {
		line = color + line + ColorReset
	}
	fmt.Fprintln(p.w, line)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
