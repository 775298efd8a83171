// Package editor implements the draft-then-commit property editor and the
// shape list that front-ends build their panels on.
package editor

import (
	"math"

	"github.com/example/sketchpad/internal/shape"
)

// MinDimension is the smallest radius a committed draft may set.
const MinDimension = 1

// PointDraft is one editable point together with its pending value.
type PointDraft struct {
	Label string
	X, Y  float64
	Set   bool
}

// NumberDraft is one editable number together with its pending value.
type NumberDraft struct {
	Label string
	Key   string
	Value float64
	Set   bool
}

// Draft is an uncommitted copy of a shape's editable fields. Edits only
// touch the draft; Apply writes them to a shape in one batch.
type Draft struct {
	id       string
	typ      shape.Type
	points   []PointDraft
	numbers  []NumberDraft
	color    string
	colorSet bool
}

// NewDraft returns a draft seeded from s.
func NewDraft(s shape.Shape) *Draft {
	d := &Draft{}
	d.Seed(s)
	return d
}

// Seed discards pending edits and copies the current values of s. A nil
// shape leaves an empty draft.
func (d *Draft) Seed(s shape.Shape) {
	*d = Draft{}
	if s == nil {
		return
	}
	d.id = s.ID()
	d.typ = s.Type()
	d.color = s.Color()
	for _, p := range s.EditablePoints() {
		d.points = append(d.points, PointDraft{Label: p.Label, X: p.X, Y: p.Y})
	}
	for _, n := range s.EditableNumbers() {
		d.numbers = append(d.numbers, NumberDraft{Label: n.Label, Key: n.Key, Value: n.Value})
	}
}

// ID returns the id of the shape the draft was seeded from.
func (d Draft) ID() string { return d.id }

// Type returns the type of the seeded shape.
func (d Draft) Type() shape.Type { return d.typ }

// SetPoint overrides both coordinates of point i. Out of range indexes and
// non-finite values are ignored.
func (d *Draft) SetPoint(i int, x, y float64) {
	if i < 0 || i >= len(d.points) || !finite(x) || !finite(y) {
		return
	}
	d.points[i].X, d.points[i].Y, d.points[i].Set = x, y, true
}

// SetPointX overrides the x coordinate of point i.
func (d *Draft) SetPointX(i int, x float64) {
	if i < 0 || i >= len(d.points) {
		return
	}
	d.SetPoint(i, x, d.points[i].Y)
}

// SetPointY overrides the y coordinate of point i.
func (d *Draft) SetPointY(i int, y float64) {
	if i < 0 || i >= len(d.points) {
		return
	}
	d.SetPoint(i, d.points[i].X, y)
}

// SetNumber overrides the number with key. Unknown keys are ignored.
func (d *Draft) SetNumber(key string, v float64) {
	if !finite(v) {
		return
	}
	for i := range d.numbers {
		if d.numbers[i].Key == key {
			d.numbers[i].Value, d.numbers[i].Set = v, true
			return
		}
	}
}

// SetColor overrides the color.
func (d *Draft) SetColor(c string) {
	d.color, d.colorSet = c, true
}

// Points returns the draft points in order.
func (d Draft) Points() []PointDraft { return append([]PointDraft(nil), d.points...) }

// Numbers returns the draft numbers in the shape's order.
func (d Draft) Numbers() []NumberDraft { return append([]NumberDraft(nil), d.numbers...) }

// Color returns the draft color.
func (d Draft) Color() string { return d.color }

// Dirty reports whether any field was edited since the last seed.
func (d Draft) Dirty() bool {
	if d.colorSet {
		return true
	}
	for _, p := range d.points {
		if p.Set {
			return true
		}
	}
	for _, n := range d.numbers {
		if n.Set {
			return true
		}
	}
	return false
}

// Apply writes the draft to target: point overrides first, then number
// overrides clamped to MinDimension, then the color.
func (d *Draft) Apply(target shape.Shape) {
	if target == nil {
		return
	}
	for i, p := range d.points {
		if p.Set {
			target.UpdateEditablePoint(i, p.X, p.Y)
		}
	}
	for _, n := range d.numbers {
		if n.Set {
			target.UpdateEditableNumber(n.Key, math.Max(MinDimension, n.Value))
		}
	}
	if d.color != "" {
		target.SetColor(d.color)
	}
}

// Commit applies the draft to target and then calls render once.
func (d *Draft) Commit(target shape.Shape, render func()) {
	d.Apply(target)
	if render != nil {
		render()
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
