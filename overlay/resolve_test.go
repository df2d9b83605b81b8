package overlay

import (
	"math"
	"testing"
)

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func fp(v float64) *float64 { return &v }

func TestResolve(t *testing.T) {
	// Two strokes recorded against different surfaces: one carries a basis,
	// one predates basis recording. Both must land in the shared space.
	c := Collection{Strokes: []Stroke{
		{
			Tool:   "pen",
			Color:  "#000",
			Width:  DefaultWidth,
			Points: []Point{{0, 0}, {1, 1}},
			Basis:  &Basis{Width: fp(200), Height: fp(100)},
		},
		{
			Tool:   "pen",
			Color:  "#000",
			Width:  DefaultWidth,
			Points: []Point{{0.5, 0.5}},
		},
	}}

	layout := Resolve(c)
	if layout.Width != 200 || layout.Height != 100 {
		t.Fatalf("target = (%v, %v), want (200, 100)", layout.Width, layout.Height)
	}
	if len(layout.Paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(layout.Paths))
	}

	a := layout.Paths[0]
	if a.Points[0] != (Point{0, 0}) || a.Points[1] != (Point{200, 100}) {
		t.Errorf("stroke with basis resolved to %v", a.Points)
	}

	b := layout.Paths[1]
	if b.Points[0] != (Point{100, 50}) {
		t.Errorf("basis-less stroke resolved to %v, want (100, 50)", b.Points)
	}
}

func TestResolveFallbackSurface(t *testing.T) {
	t.Run("no basis anywhere", func(t *testing.T) {
		c := Collection{Strokes: []Stroke{
			{Width: DefaultWidth, Points: []Point{{0.25, 0.75}}},
		}}
		layout := Resolve(c)
		if layout.Width != FallbackDimension || layout.Height != FallbackDimension {
			t.Fatalf("target = (%v, %v), want fallback", layout.Width, layout.Height)
		}
		if got := layout.Paths[0].Points[0]; got != (Point{250, 750}) {
			t.Errorf("point = %v, want (250, 750)", got)
		}
	})

	t.Run("per-axis fallback", func(t *testing.T) {
		c := Collection{Strokes: []Stroke{
			{Width: DefaultWidth, Basis: &Basis{Width: fp(300)}},
		}}
		layout := Resolve(c)
		if layout.Width != 300 || layout.Height != FallbackDimension {
			t.Errorf("target = (%v, %v), want (300, %v)", layout.Width, layout.Height, FallbackDimension)
		}
	})

	t.Run("non-positive basis ignored", func(t *testing.T) {
		c := Collection{Strokes: []Stroke{
			{Width: DefaultWidth, Basis: &Basis{Width: fp(0), Height: fp(-50)}},
		}}
		layout := Resolve(c)
		if layout.Width != FallbackDimension || layout.Height != FallbackDimension {
			t.Errorf("target = (%v, %v), want fallback on both axes", layout.Width, layout.Height)
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		layout := Resolve(Collection{})
		if layout.Width != FallbackDimension || layout.Height != FallbackDimension {
			t.Errorf("target = (%v, %v), want fallback", layout.Width, layout.Height)
		}
		if layout.Visible() {
			t.Error("empty collection produced visible paths")
		}
	})
}

// A collection where every stroke lost its geometry still resolves to a
// defined surface with zero visible paths, so the page can size the overlay
// container without drawing anything.
func TestResolvePointlessStrokes(t *testing.T) {
	c := Collection{Strokes: []Stroke{
		{Width: DefaultWidth, Basis: &Basis{Width: fp(640), Height: fp(480)}},
		{Width: DefaultWidth},
	}}

	layout := Resolve(c)
	if layout.Width != 640 || layout.Height != 480 {
		t.Errorf("target = (%v, %v), want (640, 480)", layout.Width, layout.Height)
	}
	if layout.Visible() || len(layout.Paths) != 0 {
		t.Errorf("got %d paths, want none", len(layout.Paths))
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2; pointless strokes still count", c.Len())
	}
}

func TestResolveScalesAcrossBases(t *testing.T) {
	// The second stroke was recorded on a surface half the size of the
	// first; its coordinates and width must scale up onto the target.
	c := Collection{Strokes: []Stroke{
		{
			Width:  0.01,
			Points: []Point{{1, 1}},
			Basis:  &Basis{Width: fp(400), Height: fp(300)},
		},
		{
			Width:  0.01,
			Points: []Point{{0.5, 0.5}},
			Basis:  &Basis{Width: fp(200), Height: fp(150)},
		},
	}}

	layout := Resolve(c)
	if layout.Width != 400 || layout.Height != 300 {
		t.Fatalf("target = (%v, %v), want (400, 300)", layout.Width, layout.Height)
	}

	small := layout.Paths[1]
	if small.Points[0] != (Point{200, 150}) {
		t.Errorf("scaled point = %v, want (200, 150)", small.Points[0])
	}
	// 0.01 of a 200-wide basis is 2 units, doubled by sx = 400/200.
	if !approx(small.Width, 4) {
		t.Errorf("scaled width = %v, want 4", small.Width)
	}
}

func TestResolveWidthFloor(t *testing.T) {
	t.Run("hairline clamps to one unit", func(t *testing.T) {
		c := Collection{Strokes: []Stroke{{
			Width:  0.001,
			Points: []Point{{0, 0}},
			Basis:  &Basis{Width: fp(100), Height: fp(100)},
		}}}
		if got := Resolve(c).Paths[0].Width; got != 1 {
			t.Errorf("width = %v, want floor of 1", got)
		}
	})

	t.Run("above the floor", func(t *testing.T) {
		c := Collection{Strokes: []Stroke{{
			Width:  0.05,
			Points: []Point{{0, 0}},
			Basis:  &Basis{Width: fp(200), Height: fp(100)},
		}}}
		if got := Resolve(c).Paths[0].Width; !approx(got, 10) {
			t.Errorf("width = %v, want 10", got)
		}
	})
}

func TestResolveStyling(t *testing.T) {
	c := Collection{Strokes: []Stroke{
		{Tool: "highlighter", Color: "#ffcc00", Width: DefaultWidth, Points: []Point{{0, 0}}},
		{Tool: "pen", Color: "#ff0000", Width: DefaultWidth, Alpha: fp(0.6), Points: []Point{{1, 1}}},
	}}

	layout := Resolve(c)
	if got := layout.Paths[0]; got.Color != "#ffcc00" || got.Opacity != HighlighterAlpha {
		t.Errorf("highlighter path = (%q, %v)", got.Color, got.Opacity)
	}
	if got := layout.Paths[1]; got.Color != "#ff0000" || got.Opacity != 0.6 {
		t.Errorf("pen path = (%q, %v)", got.Color, got.Opacity)
	}
}
