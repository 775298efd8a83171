package tool

import (
	"math"

	"github.com/example/sketchpad/internal/shape"
)

// Line draws a segment with a press-drag-release gesture.
type Line struct {
	host    Host
	drawing bool
	start   shape.Point
	preview *shape.Line
}

func (l *Line) Kind() Kind    { return KindLine }
func (l *Line) Drawing() bool { return l.drawing }

func (l *Line) PointerDown(p shape.Point) {
	if l.drawing {
		return
	}
	l.drawing = true
	l.start = p
	l.preview = shape.NewLine(p, p, previewOptions(shape.TypeLine))
	l.host.SetPreview(l.preview)
}

func (l *Line) PointerMove(p shape.Point) {
	if !l.drawing {
		return
	}
	l.preview.End = p
	l.host.SetPreview(l.preview)
}

func (l *Line) PointerUp(p shape.Point) {
	if !l.drawing {
		return
	}
	start := l.start
	l.reset()
	if start.Dist(p) >= MinDistance {
		l.host.Commit(shape.NewLine(start, p, finalOptions()))
	}
	l.host.ClearPreview()
}

func (l *Line) DoubleClick() {}

func (l *Line) Cancel() {
	l.reset()
	l.host.ClearPreview()
}

func (l *Line) reset() {
	l.drawing = false
	l.preview = nil
}

// Circle draws a circle from its center outwards.
type Circle struct {
	host    Host
	drawing bool
	center  shape.Point
	preview *shape.Circle
}

func (c *Circle) Kind() Kind    { return KindCircle }
func (c *Circle) Drawing() bool { return c.drawing }

func (c *Circle) PointerDown(p shape.Point) {
	if c.drawing {
		return
	}
	c.drawing = true
	c.center = p
	c.preview = shape.NewCircle(p, 0, previewOptions(shape.TypeCircle))
	c.host.SetPreview(c.preview)
}

func (c *Circle) PointerMove(p shape.Point) {
	if !c.drawing {
		return
	}
	c.preview.SetRadius(c.center.Dist(p))
	c.host.SetPreview(c.preview)
}

func (c *Circle) PointerUp(p shape.Point) {
	if !c.drawing {
		return
	}
	center := c.center
	c.reset()
	if r := center.Dist(p); r >= MinDistance {
		c.host.Commit(shape.NewCircle(center, r, finalOptions()))
	}
	c.host.ClearPreview()
}

func (c *Circle) DoubleClick() {}

func (c *Circle) Cancel() {
	c.reset()
	c.host.ClearPreview()
}

func (c *Circle) reset() {
	c.drawing = false
	c.preview = nil
}

// Ellipse draws an axis-aligned ellipse from its center outwards.
type Ellipse struct {
	host    Host
	drawing bool
	center  shape.Point
	preview *shape.Ellipse
}

func (e *Ellipse) Kind() Kind    { return KindEllipse }
func (e *Ellipse) Drawing() bool { return e.drawing }

func (e *Ellipse) PointerDown(p shape.Point) {
	if e.drawing {
		return
	}
	e.drawing = true
	e.center = p
	e.preview = shape.NewEllipse(p, 0, 0, previewOptions(shape.TypeEllipse))
	e.host.SetPreview(e.preview)
}

func (e *Ellipse) PointerMove(p shape.Point) {
	if !e.drawing {
		return
	}
	e.preview.SetRadii(math.Abs(p.X-e.center.X), math.Abs(p.Y-e.center.Y))
	e.host.SetPreview(e.preview)
}

// PointerUp commits the ellipse unless both radii are below MinDistance.
// A flat axis is widened to 1 so the committed shape is never degenerate.
func (e *Ellipse) PointerUp(p shape.Point) {
	if !e.drawing {
		return
	}
	center := e.center
	e.reset()
	rx := math.Abs(p.X - center.X)
	ry := math.Abs(p.Y - center.Y)
	if rx >= MinDistance || ry >= MinDistance {
		e.host.Commit(shape.NewEllipse(center, math.Max(1, rx), math.Max(1, ry), finalOptions()))
	}
	e.host.ClearPreview()
}

func (e *Ellipse) DoubleClick() {}

func (e *Ellipse) Cancel() {
	e.reset()
	e.host.ClearPreview()
}

func (e *Ellipse) reset() {
	e.drawing = false
	e.preview = nil
}
