// Package output provides a mode-aware renderer for CLI output. The renderer
// adapts to its environment: styled text on a terminal, plain markdown when
// piped, and machine-readable JSON on request.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// OutputMode selects how the renderer formats output.
type OutputMode string

// Supported output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode normalizes a config string to an OutputMode, defaulting to auto.
func Mode(s string) OutputMode {
	switch OutputMode(strings.ToLower(s)) {
	case ModeText:
		return ModeText
	case ModeMarkdown, "md":
		return ModeMarkdown
	case ModeJSON:
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes formatted output to a pair of streams.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting TTY state from the process
// environment.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = termenv.NewOutput(f).TTY() != nil
	}
	return NewRendererWithTTY(out, errOut, isTTY, mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state. Used by
// tests to pin the effective mode.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	r := &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}
	r.styles = newStyles(r.EffectiveMode() == ModeText && isTTY)
	return r
}

// EffectiveMode resolves ModeAuto: text on a terminal, markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// Styles returns the active style set.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Println writes a line to stdout.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted output to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Success writes a success line.
func (r *Renderer) Success(s string) {
	r.Println(r.styles.Success.Render("✓ " + s))
}

// Error writes an error line to stderr.
func (r *Renderer) Error(s string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+s))
}

// Warning writes a warning line.
func (r *Renderer) Warning(s string) {
	r.Println(r.styles.Warning.Render("! " + s))
}

// Header writes a section header. In markdown mode it renders as a markdown
// heading of the given level.
func (r *Renderer) Header(level int, s string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(strings.Repeat("#", level) + " " + s)
		return
	}
	r.Println(r.styles.Bold.Render(s))
}

// StatusLine writes a name with a status marker and optional detail.
func (r *Renderer) StatusLine(name, status, detail string) {
	marker := "•"
	switch status {
	case "success":
		marker = r.styles.Success.Render("✓")
	case "error":
		marker = r.styles.Error.Render("✗")
	case "warning":
		marker = r.styles.Warning.Render("!")
	}
	if detail != "" {
		r.Printf("  %s %s  %s\n", marker, name, r.styles.Muted.Render(detail))
		return
	}
	r.Printf("  %s %s\n", marker, name)
}

// JSON writes v as indented JSON to stdout.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	FilePath lipgloss.Style
}

func newStyles(colored bool) *Styles {
	if !colored {
		plain := lipgloss.NewStyle()
		return &Styles{
			Success: plain, Error: plain, Warning: plain,
			Info: plain, Muted: plain, Bold: plain, FilePath: plain,
		}
	}
	return &Styles{
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:     lipgloss.NewStyle().Bold(true),
		FilePath: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}
