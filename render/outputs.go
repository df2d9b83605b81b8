package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/notebook"
)

// richBranch is one row of the rich-output decision table. Rows are tried
// in order and the first match renders the whole bundle. An exclusive row
// renders a single self-sufficient form; the generic row combines every
// present form.
type richBranch struct {
	name      string
	exclusive bool
	matches   func(p Policy, data map[string]string) bool
	render    func(w *strings.Builder, data map[string]string)
}

var richBranches = []richBranch{
	{
		name:      "vector",
		exclusive: true,
		matches:   func(_ Policy, data map[string]string) bool { return data[MimeSVG] != "" },
		render:    renderVector,
	},
	{
		name:      "widget-raster",
		exclusive: true,
		matches: func(p Policy, data map[string]string) bool {
			return p.IsWidget(data) && hasRaster(data)
		},
		render: renderRasters,
	},
	{
		name:      "widget-markup",
		exclusive: true,
		matches: func(p Policy, data map[string]string) bool {
			return p.IsWidget(data) && data[MimeHTML] != ""
		},
		render: renderMarkup,
	},
	{
		// A widget bundle with neither raster nor markup falls through
		// to here and renders whatever textual forms it carries.
		name:      "generic",
		exclusive: false,
		matches:   func(Policy, map[string]string) bool { return true },
		render:    renderCombination,
	},
}

// Outputs renders a cell's ordered output events into one markup fragment.
// Stream events render as preformatted text, rich events go through the
// decision table, and events of any other type render nothing.
func (r *Renderer) Outputs(outputs []notebook.Output) string {
	var sb strings.Builder
	for _, out := range outputs {
		switch {
		case out.Stream():
			if out.Text != "" {
				sb.WriteString(preBlock(out.Text))
			}
		case out.Rich():
			for _, branch := range richBranches {
				if branch.matches(r.Policy, out.Data) {
					branch.render(&sb, out.Data)
					break
				}
			}
		}
	}
	return sb.String()
}

// preBlock renders escaped preformatted text.
func preBlock(text string) string {
	return fmt.Sprintf("<pre class='codehilite'>%s</pre>", html.EscapeString(text))
}

// renderVector embeds the vector form directly. It scales without loss, so
// nothing else from the bundle renders alongside it.
func renderVector(w *strings.Builder, data map[string]string) {
	fmt.Fprintf(w, "<div class='out-svg'>%s</div>", data[MimeSVG])
}

// renderRasters embeds every present raster form as a data URI, in the
// rasterMimes order. One image never suppresses the other.
func renderRasters(w *strings.Builder, data map[string]string) {
	for _, mime := range rasterMimes {
		if b64 := data[mime]; b64 != "" {
			fmt.Fprintf(w, "<img class='out-img' alt='%s' src='data:%s;base64,%s'/>",
				mime, mime, html.EscapeString(b64))
		}
	}
}

// renderMarkup embeds the markup form as-is plus its plain-text fallback
// underneath, for viewers where the markup cannot run.
func renderMarkup(w *strings.Builder, data map[string]string) {
	fmt.Fprintf(w, "<div class='out-html'>%s</div>", data[MimeHTML])
	if text := data[MimePlain]; text != "" {
		w.WriteString(preBlock(text))
	}
}

// renderCombination stacks every present form in fixed order: rasters,
// then markup, then plain text. Each is an independently useful view.
func renderCombination(w *strings.Builder, data map[string]string) {
	renderRasters(w, data)
	if markup := data[MimeHTML]; markup != "" {
		fmt.Fprintf(w, "<div class='out-html'>%s</div>", markup)
	}
	if text := data[MimePlain]; text != "" {
		w.WriteString(preBlock(text))
	}
}

func hasRaster(data map[string]string) bool {
	return data[MimePNG] != "" || data[MimeJPEG] != ""
}
