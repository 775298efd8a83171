// Package render draws scenes of shapes onto raster images and SVG documents.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/theme"
)

// Stroke settings shared by every backend.
const (
	Segments           = 64
	StrokeWidth        = 2
	PreviewStrokeWidth = 1
	PreviewOpacity     = 0.5
	HaloRadius         = 3
)

// Scene is a snapshot of everything a renderer needs for one frame.
type Scene struct {
	// Shapes in z-order, bottom first. Hidden shapes are skipped when drawing.
	Shapes   []shape.Shape
	Preview  shape.Shape
	Selected string
	Theme    *theme.Theme
}

// Drawables returns the shapes to paint in order: visible shapes bottom to
// top followed by the preview.
func (s Scene) Drawables() []shape.Shape {
	out := make([]shape.Shape, 0, len(s.Shapes)+1)
	for _, sh := range s.Shapes {
		if sh.Visible() {
			out = append(out, sh)
		}
	}
	if s.Preview != nil && s.Preview.Visible() {
		out = append(out, s.Preview)
	}
	return out
}

func (s Scene) palette() *theme.Theme {
	if s.Theme == nil {
		return theme.Default()
	}
	return s.Theme
}

// Outline returns the points approximating sh and whether the path closes.
// A nil result means the shape has nothing to draw.
func Outline(sh shape.Shape) ([]shape.Point, bool) {
	switch v := sh.(type) {
	case *shape.Line:
		return []shape.Point{v.Start, v.End}, false
	case *shape.Circle:
		if v.Radius() <= 0 {
			return nil, false
		}
		return arc(v.Center, v.Radius(), v.Radius()), true
	case *shape.Ellipse:
		if v.RadiusX() <= 0 && v.RadiusY() <= 0 {
			return nil, false
		}
		return arc(v.Center, v.RadiusX(), v.RadiusY()), true
	case *shape.Polyline:
		if len(v.Points) < 2 {
			return nil, false
		}
		return v.Points, false
	}
	return nil, false
}

func arc(c shape.Point, rx, ry float64) []shape.Point {
	pts := make([]shape.Point, Segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / Segments
		pts[i] = shape.Pt(c.X+rx*math.Cos(a), c.Y+ry*math.Sin(a))
	}
	return pts
}

// Bounds returns the integer rectangle covering the visible shapes, grown by
// margin on every side. It is empty when nothing is drawable.
func Bounds(shapes []shape.Shape, margin int) image.Rectangle {
	var r image.Rectangle
	for _, sh := range shapes {
		if !sh.Visible() {
			continue
		}
		pts, _ := Outline(sh)
		for _, p := range pts {
			pr := image.Rect(int(math.Floor(p.X)), int(math.Floor(p.Y)), int(math.Ceil(p.X))+1, int(math.Ceil(p.Y))+1)
			r = r.Union(pr)
		}
	}
	if r.Empty() {
		return r
	}
	return r.Inset(-margin)
}

// StrokeColor resolves the display color of sh, falling back to the factory
// default when the stored value cannot be parsed.
func StrokeColor(sh shape.Shape) color.NRGBA {
	c, err := theme.ParseColor(sh.Color())
	if err != nil {
		c, _ = theme.ParseColor(shape.DefaultColor)
	}
	n := color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	if sh.IsPreview() {
		n.A = uint8(float64(n.A)*PreviewOpacity + 0.5)
	}
	return n
}

func strokeWidth(sh shape.Shape) float64 {
	if sh.IsPreview() {
		return PreviewStrokeWidth
	}
	return StrokeWidth
}
