package shape

import "math"

// LineTolerance is the distance band around a segment that counts as a hit.
const LineTolerance = 6

// Line is a straight segment between Start and End.
type Line struct {
	base
	Start Point
	End   Point
}

// NewLine constructs a line from start to end.
func NewLine(start, end Point, o Options) *Line {
	return &Line{base: newBase(TypeLine, o), Start: start, End: end}
}

// ContainsPoint reports whether (x, y) lies within LineTolerance of the
// segment. The projection is clamped so the segment ends do not extend.
func (l *Line) ContainsPoint(x, y float64) bool {
	return distToSegment(Pt(x, y), l.Start, l.End) < LineTolerance
}

func distToSegment(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Dist(Pt(a.X+t*dx, a.Y+t*dy))
}

func (l *Line) EditablePoints() []EditablePoint {
	return []EditablePoint{
		{Label: "Starting Point", X: l.Start.X, Y: l.Start.Y},
		{Label: "Ending Point", X: l.End.X, Y: l.End.Y},
	}
}

func (l *Line) UpdateEditablePoint(index int, x, y float64) {
	switch index {
	case 0:
		l.Start = Pt(x, y)
	case 1:
		l.End = Pt(x, y)
	}
}

func (l *Line) Record() Record {
	r := l.record()
	start, end := l.Start, l.End
	r.Start, r.End = &start, &end
	return r
}

// Length returns the segment length.
func (l *Line) Length() float64 { return l.Start.Dist(l.End) }
