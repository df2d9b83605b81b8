package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/samber/lo"
)

// baseCSS is the inlined stylesheet for exported pages. The 16px
// .input-body padding matches the overlay surface offset in overlayBlock.
const baseCSS = `
:root { color-scheme: light dark; }
* { box-sizing: border-box; }
body {
  font-family: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial, "Apple Color Emoji", "Segoe UI Emoji";
  margin: 32px;
}
h1,h2,h3 { margin-top: 1.6em; }
.nb-title { margin-bottom: 1rem; opacity: 0.8; font-size: 0.9rem; }
.cell {
  margin: 24px 0;
  border: 1px solid #ddd;
  border-radius: 10px;
  overflow: hidden;
}
.cell-header {
  background: rgba(0,0,0,0.04);
  padding: 8px 12px;
  font-size: 12px;
  color: #555;
  display: flex;
  gap: 12px;
  align-items: center;
  justify-content: space-between;
}
.cell-body { padding: 0; }
.input-wrapper {
  position: relative;
}
.input-body {
  padding: 16px;
  position: relative;
  z-index: 1;
}
.codehilite {
  background: #f7f7f9;
  padding: 12px;
  border-radius: 8px;
  overflow-x: auto;
}
.overlay-abs {
  position: absolute;
  top: 0;
  right: 0;
  bottom: 0;
  left: 0;
  pointer-events: none;
  overflow: hidden;
  z-index: 2;
  border-radius: inherit;
}
.overlay-surface {
  position: absolute;
  pointer-events: none;
}
.overlay-svg {
  width: 100%;
  height: 100%;
  display: block;
}
.outputs {
  padding: 8px 16px 16px 16px;
  border-top: 1px solid rgba(0,0,0,0.06);
}
.out-img { max-width: 100%; height: auto; display: block; margin: 8px 0; }
.out-svg, .out-html { margin: 8px 0; }
@media (prefers-color-scheme: dark) {
  body { color: #eee; background: #0b0b0d; }
  .cell { border-color: #2a2a2e; }
  .cell-header { background: rgba(255,255,255,0.05); color: #bbb; }
  .codehilite { background: #151516; }
}
`

// Page assembles the complete document: shell, inlined stylesheet, title
// line, and the rendered cells joined in document order.
func (r *Renderer) Page(title string, cells []CellResult) string {
	body := strings.Join(lo.Map(cells, func(c CellResult, _ int) string { return c.HTML }), "\n")

	var sb strings.Builder
	sb.WriteString("<!doctype html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\"/>\n")
	sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&sb, "<style>%s</style>\n", baseCSS)
	sb.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&sb, "<div class=\"nb-title\">%s</div>\n", html.EscapeString(title))
	sb.WriteString(body)
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}
