package overlay

import "math"

// FallbackDimension is the surface size assumed when no stroke in a
// collection recorded a usable basis.
const FallbackDimension = 1000.0

// Path is one stroke resolved into absolute coordinates. Points live in
// the collection's shared space and Width is absolute; Color and Opacity
// are final styling.
type Path struct {
	Points  []Point
	Width   float64
	Color   string
	Opacity float64
}

// Layout is a resolved collection: the target surface size shared by every
// path, plus the visible paths themselves. Width and Height are defined
// even when Paths is empty, so callers can always size the overlay
// container.
type Layout struct {
	Width  float64
	Height float64
	Paths  []Path
}

// Visible reports whether the layout has any drawable paths.
func (l Layout) Visible() bool { return len(l.Paths) > 0 }

// Resolve maps a collection's basis-relative normalized points into one
// shared absolute coordinate space. Strokes may have been recorded against
// surfaces of different sizes (content reflow between annotation sessions),
// so each stroke scales independently onto the collection's target surface.
//
// The target surface (W, H) is the maximum recorded basis width and height
// across the collection, falling back to FallbackDimension per axis when
// nothing usable was recorded. Each stroke's own basis (bw, bh) defaults to
// the target when absent or non-positive; with sx = W/bw and sy = H/bh, a
// normalized point (nx, ny) lands at (nx·bw·sx, ny·bh·sy). The two-step
// form keeps the per-stroke basis explicit for future re-anchoring even
// though it reduces to (nx·W, ny·H). Stroke width resolves against the
// stroke's own basis width with a floor of one unit, then scales by sx.
func Resolve(c Collection) Layout {
	width, height := targetSize(c)
	layout := Layout{Width: width, Height: height}

	for _, s := range c.Strokes {
		if len(s.Points) == 0 {
			continue
		}

		bw, bh := s.basisSize(width, height)
		sx := width / bw
		sy := height / bh

		pts := make([]Point, len(s.Points))
		for i, p := range s.Points {
			pts[i] = Point{X: p.X * bw * sx, Y: p.Y * bh * sy}
		}

		layout.Paths = append(layout.Paths, Path{
			Points:  pts,
			Width:   math.Max(1, s.Width*bw) * sx,
			Color:   s.Color,
			Opacity: s.Opacity(),
		})
	}
	return layout
}

func targetSize(c Collection) (float64, float64) {
	var width, height float64
	for _, s := range c.Strokes {
		if s.Basis == nil {
			continue
		}
		if s.Basis.Width != nil && *s.Basis.Width > width {
			width = *s.Basis.Width
		}
		if s.Basis.Height != nil && *s.Basis.Height > height {
			height = *s.Basis.Height
		}
	}
	if width <= 0 {
		width = FallbackDimension
	}
	if height <= 0 {
		height = FallbackDimension
	}
	return width, height
}

// basisSize returns the stroke's recorded basis, defaulting each axis to
// the target when absent or non-positive.
func (s Stroke) basisSize(targetW, targetH float64) (float64, float64) {
	bw, bh := targetW, targetH
	if s.Basis != nil {
		if s.Basis.Width != nil && *s.Basis.Width > 0 {
			bw = *s.Basis.Width
		}
		if s.Basis.Height != nil && *s.Basis.Height > 0 {
			bh = *s.Basis.Height
		}
	}
	return bw, bh
}
