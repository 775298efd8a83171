package shape

import (
	"math"

	"github.com/google/uuid"
)

// Type identifies a shape variant. It is also the discriminator stored in
// persisted records.
type Type string

const (
	TypeLine     Type = "line"
	TypeCircle   Type = "circle"
	TypeEllipse  Type = "ellipse"
	TypePolyline Type = "polyline"
)

// Colors used by the drawing tools.
const (
	PreviewColor = "#ff0000"
	FinalColor   = "#000000"
	DefaultColor = "#ff5555"
)

// Point is a plain 2D coordinate in drawing-surface space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// EditablePoint is the labelled point view exposed to editors.
type EditablePoint struct {
	Label string
	X, Y  float64
}

// EditableNumber is the labelled scalar view exposed to editors.
type EditableNumber struct {
	Label string
	Value float64
	Key   string
}

// Shape is the capability set shared by every variant.
type Shape interface {
	ID() string
	Type() Type
	Visible() bool
	SetVisible(v bool)
	Color() string
	SetColor(c string)
	IsPreview() bool

	ContainsPoint(x, y float64) bool

	EditablePoints() []EditablePoint
	UpdateEditablePoint(index int, x, y float64)
	EditableNumbers() []EditableNumber
	UpdateEditableNumber(key string, value float64)

	Record() Record
}

// Options carries the common fields used when constructing a shape. Zero
// values are replaced with defaults: a fresh id, DefaultColor and visible.
type Options struct {
	ID      string
	Color   string
	Hidden  bool
	Preview bool
}

// NewID returns a fresh unique shape id.
func NewID() string { return uuid.NewString() }

// PreviewID returns the sentinel id used by preview shapes of type t.
func PreviewID(t Type) string { return "preview-" + string(t) }

type base struct {
	id      string
	typ     Type
	visible bool
	color   string
	preview bool
}

func newBase(t Type, o Options) base {
	b := base{id: o.ID, typ: t, visible: !o.Hidden, color: o.Color, preview: o.Preview}
	if b.id == "" {
		if o.Preview {
			b.id = PreviewID(t)
		} else {
			b.id = NewID()
		}
	}
	if b.color == "" {
		b.color = DefaultColor
	}
	return b
}

func (b *base) ID() string { return b.id }
func (b *base) Type() Type { return b.typ }
func (b *base) Visible() bool { return b.visible }
func (b *base) SetVisible(v bool) { b.visible = v }
func (b *base) Color() string { return b.color }

// SetColor sets the stroke color. An empty color resets to DefaultColor.
func (b *base) SetColor(c string) {
	if c == "" {
		c = DefaultColor
	}
	b.color = c
}

func (b *base) IsPreview() bool { return b.preview }
func (b *base) record() Record { return Record{ID: b.id, Type: b.typ, Visible: b.visible, Color: b.color} }
func (b *base) EditableNumbers() []EditableNumber { return nil }
func (b *base) UpdateEditableNumber(string, float64) {}

// clampRadius is the single validation rule for every radius field.
func clampRadius(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
