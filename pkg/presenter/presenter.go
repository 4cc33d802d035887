// Package presenter writes operator-facing progress lines for gemc runs:
// processing notices, successes, warnings, per-file errors and stale file
// removals, each with its own marker and color.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Presenter defines the operator output surface used by the CLI.
type Presenter interface {
	Processing(name string)
	Success(message string)
	Warning(message string)
	Failure(message string)
	Removed(path string)
	Info(message string)
	Section(title string)
	Error(err error, context string)
	SetQuiet(quiet bool)
	IsQuiet() bool
}

// ColorMode selects whether output is colorized.
type ColorMode int

const (
	// ColorAuto lets the color package decide based on the terminal
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output
	ColorAlways
	// ColorNever disables colored output
	ColorNever
)

// ParseColorMode maps "auto", "always"/"force" and "never"/"off" to a ColorMode.
// Anything else is treated as auto.
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// TerminalPresenter implements Presenter for a terminal.
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	colorMode   ColorMode
	quiet       bool
}

// New creates a TerminalPresenter on stdout/stderr with the color mode taken
// from the environment.
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with explicit writers and color mode.
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	p := &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
	}
	p.SetColorMode(colorMode)
	return p
}

func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}
	return ParseColorMode(os.Getenv("GEMC_COLOR"))
}

// SetColorMode changes the color mode. The color package keeps this setting
// process-wide.
func (p *TerminalPresenter) SetColorMode(mode ColorMode) {
	p.colorMode = mode
	switch mode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
	}
}

// Processing announces the start of work on one template or command.
func (p *TerminalPresenter) Processing(name string) {
	if p.quiet {
		return
	}
	color.New(color.FgCyan).Fprintf(p.output, "→ Processing %s...\n", name)
}

// Success displays a success message
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintf(p.output, "✓ %s\n", message)
}

// Warning displays a warning message
func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintf(p.output, "⚠ %s\n", message)
}

// Failure reports a recoverable per-file error on the progress stream.
// It is shown even in quiet mode.
func (p *TerminalPresenter) Failure(message string) {
	color.New(color.FgRed, color.Bold).Fprintf(p.output, "[ERROR] %s\n", message)
}

// Removed reports the deletion of a stale output file.
func (p *TerminalPresenter) Removed(path string) {
	if p.quiet {
		return
	}
	color.New(color.FgMagenta).Fprintf(p.output, "✗ Removed stale output %s\n", path)
}

// Info displays an informational message
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays an underlined header.
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}
	header := color.New(color.Bold)
	header.Fprintf(p.output, "%s\n", title)
	header.Fprintf(p.output, "%s\n", strings.Repeat("-", len(title)))
}

// Error displays a fatal error on the error stream.
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}
	c := color.New(color.FgRed, color.Bold)
	if context != "" {
		c.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
		return
	}
	c.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
}

// SetQuiet enables or disables quiet mode
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// IsQuiet returns whether quiet mode is enabled
func (p *TerminalPresenter) IsQuiet() bool {
	return p.quiet
}

var defaultPresenter = New()

// Default returns the process-wide presenter.
func Default() *TerminalPresenter {
	return defaultPresenter
}

// Error displays an error using the default presenter.
func Error(err error, context string) {
	defaultPresenter.Error(err, context)
}

// Success displays a success message using the default presenter.
func Success(message string) {
	defaultPresenter.Success(message)
}

// Warning displays a warning using the default presenter.
func Warning(message string) {
	defaultPresenter.Warning(message)
}

// Info displays an informational message using the default presenter.
func Info(message string) {
	defaultPresenter.Info(message)
}

// Section displays a section header using the default presenter.
func Section(title string) {
	defaultPresenter.Section(title)
}

// SetQuiet toggles quiet mode on the default presenter.
func SetQuiet(quiet bool) {
	defaultPresenter.SetQuiet(quiet)
}
