package shape

// Circle is defined by a center and a non-negative radius.
type Circle struct {
	base
	Center Point
	radius float64
}

// NewCircle constructs a circle. Negative radii are clamped to zero.
func NewCircle(center Point, radius float64, o Options) *Circle {
	return &Circle{base: newBase(TypeCircle, o), Center: center, radius: clampRadius(radius)}
}

func (c *Circle) Radius() float64 { return c.radius }

// SetRadius updates the radius, clamping negatives to zero.
func (c *Circle) SetRadius(r float64) { c.radius = clampRadius(r) }

func (c *Circle) ContainsPoint(x, y float64) bool {
	return c.Center.Dist(Pt(x, y)) <= c.radius
}

func (c *Circle) EditablePoints() []EditablePoint {
	return []EditablePoint{{Label: "Center", X: c.Center.X, Y: c.Center.Y}}
}

func (c *Circle) UpdateEditablePoint(index int, x, y float64) {
	if index == 0 {
		c.Center = Pt(x, y)
	}
}

func (c *Circle) EditableNumbers() []EditableNumber {
	return []EditableNumber{{Label: "Radius", Value: c.radius, Key: "radius"}}
}

func (c *Circle) UpdateEditableNumber(key string, value float64) {
	if key == "radius" {
		c.SetRadius(value)
	}
}

func (c *Circle) Record() Record {
	r := c.record()
	center, radius := c.Center, c.radius
	r.Center, r.Radius = &center, &radius
	return r
}
