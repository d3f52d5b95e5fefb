package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ColorMode selects whether console output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func isValidColorMode(m ColorMode) bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// resolveColors decides on colors for mode; auto follows NO_COLOR, TERM and
// whether stdout is a terminal.
func resolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return !color.NoColor
	}
}

// Printer writes the per-file result lines and the run summary.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

func newPrinter(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

func (p *Printer) Written(name string) {
	p.line(p.out, color.FgGreen, "[OK] ", "Written: %s", name)
}

func (p *Printer) SkippedNoDate(name string) {
	p.line(p.out, color.FgYellow, "[SKIP] ", "SkippedNoDate: %s", name)
}

func (p *Printer) Failed(name, reason string) {
	p.line(p.out, color.FgRed, "[FAIL] ", "Failed: %s: %s", name, reason)
}

// Error reports a run-level problem on the error stream.
func (p *Printer) Error(format string, args ...interface{}) {
	p.line(p.err, color.FgRed, "[ERROR] ", format, args...)
}

func (p *Printer) Summary(s Summary) {
	msg := fmt.Sprintf("Done: %d files, %d written, %d skipped (no date), %d failed",
		s.Total, s.Written, s.Skipped, s.Failed)
	if p.useColors {
		c := color.New(color.Bold)
		c.EnableColor()
		c.Fprintln(p.out, msg)
		return
	}
	fmt.Fprintln(p.out, msg)
}

func (p *Printer) line(w io.Writer, attr color.Attribute, plainPrefix, format string, args ...interface{}) {
	if p.useColors {
		c := color.New(attr)
		c.EnableColor()
		c.Fprintf(w, format+"\n", args...)
		return
	}
	fmt.Fprintf(w, plainPrefix+format+"\n", args...)
}
