package renderer

import (
	"encoding/json"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Output formats.
const (
	FormatConsole  = "console"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Formats returns the supported output formats.
func Formats() (formats []string) {
	formats = []string{FormatConsole, FormatMarkdown, FormatJSON}
	return formats
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) (valid bool) {
	for _, f := range Formats() {
		if f == format {
			valid = true
			return valid
		}
	}
	return valid
}

func unknownFormat(format string) (err error) {
	err = errors.Errorf("unknown format %q (expected one of %v)", format, Formats())
	return err
}

// Gruvbox-inspired palette.
//
//nolint:gochecknoglobals // Static palette
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorOrange = lipgloss.Color("#fe8019")
	colorRed    = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fabd2f")
)

// painter applies lipgloss styles when the destination is a colour terminal and passes text
// through untouched otherwise.
type painter struct {
	color  bool
	green  lipgloss.Style
	orange lipgloss.Style
	red    lipgloss.Style
	dim    lipgloss.Style
	header lipgloss.Style
	bold   lipgloss.Style
}

func newPainter(w io.Writer) (p painter) {
	p.color = colorEnabled(w)
	if !p.color {
		return p
	}

	r := lipgloss.NewRenderer(w)
	p.green = r.NewStyle().Foreground(colorGreen)
	p.orange = r.NewStyle().Foreground(colorOrange)
	p.red = r.NewStyle().Foreground(colorRed)
	p.dim = r.NewStyle().Foreground(colorDim)
	p.header = r.NewStyle().Foreground(colorHeader).Bold(true)
	p.bold = r.NewStyle().Bold(true)

	return p
}

func (p painter) paint(style lipgloss.Style, text string) (out string) {
	if !p.color {
		out = text
		return out
	}
	out = style.Render(text)
	return out
}

// colorEnabled is true only for terminals, and never when NO_COLOR is set.
func colorEnabled(w io.Writer) (enabled bool) {
	if os.Getenv("NO_COLOR") != "" {
		return enabled
	}

	f, ok := w.(*os.File)
	if !ok {
		return enabled
	}

	fd := f.Fd()
	enabled = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return enabled
}

func writeJSON(w io.Writer, v any) (err error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err = enc.Encode(v)
	if err != nil {
		err = errors.Wrap(err, "failed to write JSON output")
		return err
	}
	return err
}

func writeString(w io.Writer, s string) (err error) {
	_, err = io.WriteString(w, s)
	if err != nil {
		err = errors.Wrap(err, "failed to write output")
		return err
	}
	return err
}
