package tool

import "github.com/example/sketchpad/internal/shape"

// Polyline collects vertices on each press and commits on double-click.
// The preview always ends with the uncommitted cursor position.
type Polyline struct {
	host     Host
	drawing  bool
	vertices []shape.Point
	preview  *shape.Polyline
}

func (t *Polyline) Kind() Kind    { return KindPolyline }
func (t *Polyline) Drawing() bool { return t.drawing }

// Vertices returns a copy of the committed vertices of the gesture.
func (t *Polyline) Vertices() []shape.Point {
	return append([]shape.Point(nil), t.vertices...)
}

func (t *Polyline) PointerDown(p shape.Point) {
	if !t.drawing {
		t.drawing = true
		t.vertices = []shape.Point{p}
		t.preview = shape.NewPolyline([]shape.Point{p, p}, previewOptions(shape.TypePolyline))
		t.host.SetPreview(t.preview)
		return
	}
	t.vertices = append(t.vertices, p)
	t.preview.Points = append(t.Vertices(), p)
	t.host.SetPreview(t.preview)
}

func (t *Polyline) PointerMove(p shape.Point) {
	if !t.drawing {
		return
	}
	t.preview.Points = append(t.Vertices(), p)
	t.host.SetPreview(t.preview)
}

func (t *Polyline) PointerUp(shape.Point) {}

// DoubleClick commits the polyline with the committed vertices only. Fewer
// than two vertices leave the gesture running.
func (t *Polyline) DoubleClick() {
	if !t.drawing || len(t.vertices) < 2 {
		return
	}
	pts := t.Vertices()
	t.reset()
	t.host.Commit(shape.NewPolyline(pts, finalOptions()))
	t.host.ClearPreview()
}

func (t *Polyline) Cancel() {
	t.reset()
	t.host.ClearPreview()
}

func (t *Polyline) reset() {
	t.drawing = false
	t.vertices = nil
	t.preview = nil
}
