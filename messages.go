package catalogpdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/flanksource/catalogpdf/catalog"
	"github.com/flanksource/catalogpdf/layout"
	"github.com/flanksource/catalogpdf/render"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// maxListed caps the products listed under a placeholder warning
const maxListed = 5

// Printer writes the outcome of a command for a person to read: a colored box
// on a terminal, plain lines otherwise.
type Printer struct {
	w        io.Writer
	plain    bool
	renderer *lipgloss.Renderer
}

func NewPrinter(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:        w,
		plain:    noColor || !isTerminal(w),
		renderer: lipgloss.NewRenderer(w),
	}
	if p.plain {
		p.renderer.SetColorProfile(termenv.Ascii)
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *Printer) box(color string, title string, lines []string) {
	if p.plain {
		fmt.Fprintln(p.w, title)
		for _, line := range lines {
			fmt.Fprintln(p.w, "  "+line)
		}
		return
	}
	heading := p.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(title)
	style := p.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1)
	fmt.Fprintln(p.w, style.Render(strings.Join(append([]string{heading}, lines...), "\n")))
}

// Success reports a written catalog
func (p *Printer) Success(result *render.Result) {
	lines := []string{
		fmt.Sprintf("%d products on %d pages", result.Items, result.Pages),
	}
	color := "10"
	if n := result.Placeholders(); n > 0 {
		color = "11"
		lines = append(lines, fmt.Sprintf("%d without image:", n))
		for i, u := range result.Unavailable {
			if i == maxListed {
				lines = append(lines, fmt.Sprintf("  ... and %d more", n-maxListed))
				break
			}
			lines = append(lines, fmt.Sprintf("  %s (line %d)", u.Record.Name, u.Record.Line))
		}
	}
	p.box(color, "Catalog written to "+result.Path, lines)
}

// Failure reports a fatal error together with a hint on how to fix it
func (p *Printer) Failure(err error) {
	var lines []string
	if hint := Hint(err); hint != "" {
		lines = append(lines, hint)
	}
	p.box("9", "Error: "+err.Error(), lines)
}

// Inspected reports what was read back from a PDF
func (p *Printer) Inspected(info *render.Info) {
	lines := []string{fmt.Sprintf("%d pages, %d bytes", info.Pages, info.Bytes)}
	for i, size := range info.Sizes {
		if i > 0 && size == info.Sizes[i-1] {
			continue
		}
		lines = append(lines, fmt.Sprintf("page %d: %gx%g pt", i+1, size.Width, size.Height))
	}
	p.box("12", info.Path, lines)
}

// Hint suggests a fix for the errors a user can act on
func Hint(err error) string {
	switch {
	case errors.Is(err, catalog.ErrMissingColumn):
		return "The first line must name the columns: " + strings.Join(catalog.RequiredColumns, ", ")
	case errors.Is(err, catalog.ErrFileNotFound):
		return "Check the path of the CSV file"
	case errors.Is(err, catalog.ErrNoProducts):
		return "Add at least one product row below the header"
	case errors.Is(err, catalog.ErrMalformed):
		return "Quote fields that contain commas or quotes"
	case errors.Is(err, layout.ErrInvalidBleedMode):
		return fmt.Sprintf("Use --bleed-mode %s or %s", layout.BleedExpand, layout.BleedGuide)
	case errors.Is(err, render.ErrWriteOutput):
		return "Check that the output directory exists and is writable"
	}
	return ""
}
