package ipynbd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// summaryStyles colors the export summary. The renderer is bound to the
// destination stream so colors drop out automatically when piped.
type summaryStyles struct {
	success lipgloss.Style
	path    lipgloss.Style
	info    lipgloss.Style
}

func newSummaryStyles(renderer *lipgloss.Renderer) summaryStyles {
	return summaryStyles{
		success: renderer.NewStyle().Foreground(lipgloss.Color("10")),
		path:    renderer.NewStyle().Bold(true),
		info:    renderer.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// PrintSummary writes the export outcome to stdout: one ✓ line per written
// artifact plus a cell and stroke tally.
func PrintSummary(result *Result) {
	renderer := lipgloss.NewRenderer(os.Stdout)
	styles := newSummaryStyles(renderer)

	if result.HTMLPath != "" {
		fmt.Printf("%s Wrote %s\n", styles.success.Render("✓"), styles.path.Render(result.HTMLPath))
	}

	if result.PDFPath != "" {
		line := fmt.Sprintf("%s Wrote %s", styles.success.Render("✓"), styles.path.Render(result.PDFPath))
		switch {
		case result.CacheHit:
			line += " " + styles.info.Render("(cached)")
		case result.Converter != "":
			line += " " + styles.info.Render("(via "+result.Converter+")")
		}
		fmt.Println(line)
	}

	tally := fmt.Sprintf("%d cell(s), %d annotated, %d stroke(s)", result.Cells, result.Annotated, result.Strokes)
	if result.PDFInfo != nil {
		tally += fmt.Sprintf(", %d PDF page(s)", result.PDFInfo.Pages)
	}
	fmt.Println(styles.info.Render(tally))
}

// Status shows a transient progress line on stderr while a slow step runs,
// clearing it when done. Only ANSI escape codes are used when stderr is an
// interactive terminal; otherwise the message prints as a plain line.
type Status struct {
	out         *termenv.Output
	interactive bool
}

// NewStatus creates a status line bound to stderr
func NewStatus() *Status {
	return &Status{
		out:         termenv.NewOutput(os.Stderr),
		interactive: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Start shows the message
func (s *Status) Start(message string) {
	if s.interactive {
		fmt.Fprint(s.out, message)
		return
	}
	fmt.Fprintln(s.out, message)
}

// Done clears the transient line
func (s *Status) Done() {
	if s.interactive {
		s.out.ClearLine()
		fmt.Fprint(s.out, "\r")
	}
}
