// Package overlay reconstructs freehand ink annotations recorded in cell
// metadata and renders them as vector graphics positioned over the cell's
// original input geometry. Stroke coordinates are stored normalized against
// whatever surface size the annotation UI had at capture time, so rendering
// first resolves every stroke into one shared absolute coordinate space.
package overlay

import (
	"github.com/wtheisen/jupyter-annotation-tool-ipynbd/notebook"
)

// MetadataKey is the namespaced cell-metadata key holding the annotation
// payload.
const MetadataKey = "overlay_v1"

// Stroke styling defaults applied when fields are absent or unparseable.
const (
	DefaultTool  = "pen"
	DefaultColor = "#000"
	DefaultWidth = 0.003

	// ToolHighlighter marks strokes drawn with the highlighter tool, which
	// render translucent unless an explicit alpha was recorded.
	ToolHighlighter = "highlighter"

	// HighlighterAlpha is the opacity for highlighter strokes without an
	// explicit alpha; every other tool defaults to DefaultAlpha.
	HighlighterAlpha = 0.3
	DefaultAlpha     = 1.0
)

// Point is one normalized stroke coordinate, each axis in [0,1] relative to
// the stroke's own recorded basis.
type Point struct {
	X float64
	Y float64
}

// Basis records the drawing-surface dimensions a stroke's normalized
// coordinates are relative to, as captured at annotation time. The MinY,
// MaxY, and anchor fields are hints for re-anchoring strokes after the
// surface changes size; they are parsed and retained but unused by the
// coordinate math.
type Basis struct {
	Width         *float64
	Height        *float64
	MinY          *float64
	MaxY          *float64
	AnchorLine    *int
	AnchorLineTop *float64
}

// Stroke is one continuous pen gesture.
type Stroke struct {
	Tool   string
	Color  string
	Width  float64 // fraction of the recording surface width
	Alpha  *float64
	Points []Point
	Basis  *Basis
}

// Opacity resolves the stroke's rendered opacity: the explicit alpha when
// one was recorded, otherwise the tool default.
func (s Stroke) Opacity() float64 {
	if s.Alpha != nil {
		return *s.Alpha
	}
	if s.Tool == ToolHighlighter {
		return HighlighterAlpha
	}
	return DefaultAlpha
}

// Collection holds all strokes attached to one cell, in recorded order.
// It is built once by ExtractStrokes and never mutated afterwards.
type Collection struct {
	Strokes []Stroke
}

// Len returns the stroke count. Strokes without points still count, so
// stroke-count reporting stays consistent with what was recorded.
func (c Collection) Len() int { return len(c.Strokes) }

// Empty reports whether the collection holds no strokes at all.
func (c Collection) Empty() bool { return len(c.Strokes) == 0 }

// ExtractStrokes parses a cell's annotation payload into a Collection.
// A missing payload or strokes list yields an empty collection, not an
// error. Parsing fails soft at the smallest possible scope: an unparseable
// field falls back to its default, a bad point pair leaves that one stroke
// pointless, and a malformed basis field leaves only that field absent.
// Sibling strokes and fields are never affected.
func ExtractStrokes(meta map[string]any) Collection {
	payload := notebook.Map(notebook.Map(meta)[MetadataKey])
	raw := notebook.Slice(payload["strokes"])
	if len(raw) == 0 {
		return Collection{}
	}

	strokes := make([]Stroke, 0, len(raw))
	for _, entry := range raw {
		strokes = append(strokes, parseStroke(notebook.Map(entry)))
	}
	return Collection{Strokes: strokes}
}

func parseStroke(m map[string]any) Stroke {
	s := Stroke{
		Tool:  notebook.StringOr(m["tool"], DefaultTool),
		Color: notebook.StringOr(m["color"], DefaultColor),
		Width: notebook.FloatOr(m["width"], DefaultWidth),
	}
	if a, ok := notebook.Float64(m["alpha"]); ok {
		s.Alpha = &a
	}
	s.Points = parsePoints(notebook.Slice(m["points"]))
	s.Basis = parseBasis(m["basis"])
	return s
}

// parsePoints coerces raw point pairs. One pair that fails to coerce drops
// the whole stroke's geometry: a partial gesture would connect points that
// were never adjacent.
func parsePoints(raw []any) []Point {
	if len(raw) == 0 {
		return nil
	}
	pts := make([]Point, 0, len(raw))
	for _, entry := range raw {
		pair := notebook.Slice(entry)
		if len(pair) < 2 {
			return nil
		}
		x, okX := notebook.Float64(pair[0])
		y, okY := notebook.Float64(pair[1])
		if !okX || !okY {
			return nil
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}

func parseBasis(v any) *Basis {
	m := notebook.Map(v)
	if len(m) == 0 {
		return nil
	}
	b := &Basis{}
	if f, ok := notebook.Float64(m["width"]); ok {
		b.Width = &f
	}
	if f, ok := notebook.Float64(m["height"]); ok {
		b.Height = &f
	}
	if f, ok := notebook.Float64(m["minY"]); ok {
		b.MinY = &f
	}
	if f, ok := notebook.Float64(m["maxY"]); ok {
		b.MaxY = &f
	}
	if i, ok := notebook.Int(m["anchorLine"]); ok {
		b.AnchorLine = &i
	}
	if f, ok := notebook.Float64(m["anchorLineTop"]); ok {
		b.AnchorLineTop = &f
	}
	return b
}
