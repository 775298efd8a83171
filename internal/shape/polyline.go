package shape

import "fmt"

// Polyline is an open chain of points.
type Polyline struct {
	base
	Points []Point
}

// NewPolyline constructs a polyline. The point slice is copied.
func NewPolyline(points []Point, o Options) *Polyline {
	return &Polyline{base: newBase(TypePolyline, o), Points: append([]Point(nil), points...)}
}

// ContainsPoint always reports false; polylines are not selectable by
// pointer yet.
func (p *Polyline) ContainsPoint(float64, float64) bool { return false }

func (p *Polyline) EditablePoints() []EditablePoint {
	out := make([]EditablePoint, len(p.Points))
	for i, pt := range p.Points {
		out[i] = EditablePoint{Label: fmt.Sprintf("Point %d", i+1), X: pt.X, Y: pt.Y}
	}
	return out
}

func (p *Polyline) UpdateEditablePoint(index int, x, y float64) {
	if index < 0 || index >= len(p.Points) {
		return
	}
	p.Points[index] = Pt(x, y)
}

func (p *Polyline) Record() Record {
	r := p.record()
	pts := append([]Point{}, p.Points...)
	r.Points = &pts
	return r
}
