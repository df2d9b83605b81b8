package ipynbd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/pdf"
)

// ExportOptions contains options for the HTML export
type ExportOptions struct {
	// HTMLPath is the output path; empty derives <stem>_overlay.html next
	// to the notebook.
	HTMLPath string

	// PolicyPath optionally names a YAML file with extra widget MIME
	// prefixes.
	PolicyPath string

	// WidgetPrefixes are extra widget MIME prefixes given on the command
	// line, applied on top of the policy.
	WidgetPrefixes []string

	// Title overrides the page title (default: notebook file name)
	Title string
}

// PDFOptions contains options for the optional PDF step
type PDFOptions struct {
	PDFPath      string // empty skips the PDF step
	Converter    string // preferred backend name; empty keeps chain order
	Format       string
	Landscape    bool
	Margin       string
	NoBackground bool

	CacheTTL time.Duration // Cache TTL for rendered PDFs
	NoCache  bool          // Disable caching (equivalent to --cache-ttl=0)

	// Verify runs structural checks on the produced PDF
	Verify bool
}

// DefaultHTMLPath derives the HTML output path from the notebook path: the
// notebook stem plus "_overlay.html".
func DefaultHTMLPath(notebookPath string) string {
	stem := strings.TrimSuffix(notebookPath, filepath.Ext(notebookPath))
	return stem + "_overlay.html"
}

// ResolveHTMLPath returns the explicit HTML path or the derived default
func (o ExportOptions) ResolveHTMLPath(notebookPath string) string {
	if o.HTMLPath != "" {
		return o.HTMLPath
	}
	return DefaultHTMLPath(notebookPath)
}

// ResolveTitle returns the explicit title or the notebook file name
func (o ExportOptions) ResolveTitle(notebookPath string) string {
	if o.Title != "" {
		return o.Title
	}
	return filepath.Base(notebookPath)
}

// GetEffectiveTTL returns the effective cache TTL considering the no-cache flag
func (p PDFOptions) GetEffectiveTTL() time.Duration {
	if p.NoCache {
		return 0 // --no-cache sets TTL to 0
	}
	return p.CacheTTL
}

// ConvertOptions maps the flag surface onto the backend chain's options
func (p PDFOptions) ConvertOptions() *pdf.Options {
	format := p.Format
	if format == "" {
		format = "A4"
	}
	return &pdf.Options{
		Format:          format,
		PrintBackground: !p.NoBackground,
		Landscape:       p.Landscape,
		Margin:          p.Margin,
	}
}

// Validate rejects option combinations the export cannot honor
func (p PDFOptions) Validate() error {
	switch p.Converter {
	case "", "playwright", "chromium", "weasyprint":
	default:
		return fmt.Errorf("unknown PDF converter '%s'; expected playwright, chromium or weasyprint", p.Converter)
	}
	if p.Verify && p.PDFPath == "" {
		return fmt.Errorf("--verify requires --pdf")
	}
	return nil
}

// BindPFlags adds export flags to the provided pflag set (for cobra)
func BindPFlags(flags *pflag.FlagSet, options *ExportOptions) {
	flags.StringVar(&options.HTMLPath, "html", "", "Output HTML path (default: <name>_overlay.html)")
	flags.StringVar(&options.PolicyPath, "mime-policy", "", "YAML file with extra widget MIME prefixes")
	flags.StringArrayVar(&options.WidgetPrefixes, "widget-prefix", nil, "Extra widget MIME prefix (repeatable)")
	flags.StringVar(&options.Title, "title", "", "Page title (default: notebook file name)")
}

// BindPDFPFlags adds PDF flags to the provided pflag set (for cobra)
func BindPDFPFlags(flags *pflag.FlagSet, options *PDFOptions) {
	flags.StringVar(&options.PDFPath, "pdf", "", "Output PDF path (optional)")
	flags.StringVar(&options.Converter, "pdf-converter", "", "Preferred PDF backend: playwright, chromium, weasyprint")
	flags.StringVar(&options.Format, "pdf-format", "A4", "PDF paper format")
	flags.BoolVar(&options.Landscape, "pdf-landscape", false, "Landscape orientation")
	flags.StringVar(&options.Margin, "pdf-margin", "", "Uniform PDF page margin, e.g. 10mm")
	flags.BoolVar(&options.NoBackground, "pdf-no-background", false, "Skip CSS backgrounds in the PDF")
	flags.DurationVar(&options.CacheTTL, "cache-ttl", 24*time.Hour, "Cache TTL for rendered PDFs")
	flags.BoolVar(&options.NoCache, "no-cache", false, "Disable the PDF render cache")
	flags.BoolVar(&options.Verify, "verify", false, "Verify the produced PDF structure")
}
