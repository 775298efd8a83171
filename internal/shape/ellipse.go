package shape

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	base
	Center  Point
	radiusX float64
	radiusY float64
}

// NewEllipse constructs an ellipse. Negative radii are clamped to zero.
func NewEllipse(center Point, rx, ry float64, o Options) *Ellipse {
	return &Ellipse{base: newBase(TypeEllipse, o), Center: center, radiusX: clampRadius(rx), radiusY: clampRadius(ry)}
}

func (e *Ellipse) RadiusX() float64 { return e.radiusX }
func (e *Ellipse) RadiusY() float64 { return e.radiusY }

func (e *Ellipse) SetRadii(rx, ry float64) {
	e.radiusX = clampRadius(rx)
	e.radiusY = clampRadius(ry)
}

// ContainsPoint tests the normalized distance. An ellipse with a zero
// radius on either axis contains nothing.
func (e *Ellipse) ContainsPoint(x, y float64) bool {
	if e.radiusX == 0 || e.radiusY == 0 {
		return false
	}
	dx := (x - e.Center.X) / e.radiusX
	dy := (y - e.Center.Y) / e.radiusY
	return dx*dx+dy*dy <= 1
}

func (e *Ellipse) EditablePoints() []EditablePoint {
	return []EditablePoint{{Label: "Center", X: e.Center.X, Y: e.Center.Y}}
}

func (e *Ellipse) UpdateEditablePoint(index int, x, y float64) {
	if index == 0 {
		e.Center = Pt(x, y)
	}
}

func (e *Ellipse) EditableNumbers() []EditableNumber {
	return []EditableNumber{
		{Label: "Radius X", Value: e.radiusX, Key: "rx"},
		{Label: "Radius Y", Value: e.radiusY, Key: "ry"},
	}
}

func (e *Ellipse) UpdateEditableNumber(key string, value float64) {
	switch key {
	case "rx":
		e.radiusX = clampRadius(value)
	case "ry":
		e.radiusY = clampRadius(value)
	}
}

func (e *Ellipse) Record() Record {
	r := e.record()
	center, rx, ry := e.Center, e.radiusX, e.radiusY
	r.Center, r.RadiusX, r.RadiusY = &center, &rx, &ry
	return r
}
