package overlay

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// RenderSVG serializes a resolved layout into an SVG fragment with the
// layout's intrinsic size. preserveAspectRatio is disabled so the viewport
// maps 1:1 onto the logical coordinate space no matter how the page scales
// the element: a stroke drawn at pixel (x, y) of the input box lands at
// the same visual location in the final document. Returns the empty string
// when the layout has no visible paths.
func RenderSVG(layout Layout) string {
	if !layout.Visible() {
		return ""
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startraw(
		`class="overlay-svg"`,
		`preserveAspectRatio="none"`,
		fmt.Sprintf(`viewBox="0 0 %.2f %.2f"`, layout.Width, layout.Height),
		fmt.Sprintf(`width="%.2f" height="%.2f"`, layout.Width, layout.Height),
	)
	for _, p := range layout.Paths {
		canvas.Path(pathData(p.Points), fmt.Sprintf(
			`fill="none" stroke="%s" stroke-linecap="round" stroke-linejoin="round" stroke-opacity="%.3f" stroke-width="%.2f"`,
			html.EscapeString(p.Color), p.Opacity, p.Width,
		))
	}
	canvas.End()

	// svgo emits an XML prolog; the overlay embeds inline in an HTML
	// document, so keep only the element itself.
	out := buf.String()
	if i := strings.Index(out, "<svg"); i > 0 {
		out = out[i:]
	}
	return strings.TrimSpace(out)
}

// pathData builds the M/L command sequence for one path, two decimals per
// coordinate.
func pathData(points []Point) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		cmd := byte('L')
		if i == 0 {
			cmd = 'M'
		}
		fmt.Fprintf(&sb, "%c %.2f %.2f", cmd, p.X, p.Y)
	}
	return sb.String()
}
