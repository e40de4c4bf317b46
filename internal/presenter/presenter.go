// Package presenter writes user-facing progress for the CLI: step banners,
// success and failure markers, warnings and plain informational lines.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/proseby/devkit/internal/branding"
)

// Presenter defines the console output used by the bootstrap and doctor.
type Presenter interface {
	Step(message string)
	Success(message string)
	Error(err error, context string)
	Warning(message string)
	Info(message string)
	Section(title string)
	Blank()
}

// ColorMode selects whether output is colored.
type ColorMode int

const (
	// ColorAuto lets the color package detect terminal support.
	ColorAuto ColorMode = iota
	// ColorAlways forces color.
	ColorAlways
	// ColorNever disables color.
	ColorNever
)

// TerminalPresenter implements Presenter for terminal output.
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
}

// New creates a TerminalPresenter writing to stdout/stderr.
func New() *TerminalPresenter {
	return NewFor(os.Stdout, os.Stderr)
}

// NewFor creates a TerminalPresenter over the given writers, detecting the
// color mode from the environment.
func NewFor(output, errorOutput io.Writer) *TerminalPresenter {
	return NewWithOptions(output, errorOutput, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with custom writers and color mode.
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}
	return &TerminalPresenter{output: output, errorOutput: errorOutput}
}

func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}
	switch os.Getenv(branding.EnvVar("COLOR")) {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Step announces the start of a unit of work.
func (p *TerminalPresenter) Step(message string) {
	fmt.Fprintf(p.output, "📦 %s...\n", message)
}

// Success reports a completed unit of work.
func (p *TerminalPresenter) Success(message string) {
	color.New(color.FgGreen).Fprintf(p.output, "✅ %s\n", message)
}

// Error reports a failure on the error stream.
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}
	c := color.New(color.FgRed, color.Bold)
	if context != "" {
		c.Fprintf(p.errorOutput, "❌ %s: %v\n", context, err)
		return
	}
	c.Fprintf(p.errorOutput, "❌ %v\n", err)
}

// Warning displays a warning.
func (p *TerminalPresenter) Warning(message string) {
	color.New(color.FgYellow).Fprintf(p.output, "⚠️  %s\n", message)
}

// Info displays a plain line.
func (p *TerminalPresenter) Info(message string) {
	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays an underlined header.
func (p *TerminalPresenter) Section(title string) {
	c := color.New(color.Bold)
	c.Fprintf(p.output, "%s\n", title)
	c.Fprintf(p.output, "%s\n", strings.Repeat("-", len([]rune(title))))
}

// Blank prints an empty line.
func (p *TerminalPresenter) Blank() {
	fmt.Fprintln(p.output)
}
