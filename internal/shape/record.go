package shape

import "encoding/json"

// Record is the flat persisted form of a shape. Geometry fields are set only
// for the variant that owns them.
type Record struct {
	ID      string   `json:"id"`
	Type    Type     `json:"type"`
	Visible bool     `json:"visible"`
	Color   string   `json:"color"`
	Start   *Point   `json:"start,omitempty"`
	End     *Point   `json:"end,omitempty"`
	Center  *Point   `json:"center,omitempty"`
	Radius  *float64 `json:"radius,omitempty"`
	RadiusX *float64 `json:"radiusX,omitempty"`
	RadiusY *float64 `json:"radiusY,omitempty"`
	Points  *[]Point `json:"points,omitempty"`
}

// UnmarshalJSON decodes a record, treating a missing "visible" key as true.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	aux := struct {
		plain
		Visible *bool `json:"visible"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)
	r.Visible = aux.Visible == nil || *aux.Visible
	return nil
}

// FromRecord rebuilds a shape from its record. It reports false when the
// record's type is missing or unknown.
func FromRecord(r Record) (Shape, bool) {
	return fromRecord(r, Options{ID: r.ID, Color: r.Color, Hidden: !r.Visible})
}

func fromRecord(r Record, o Options) (Shape, bool) {
	switch r.Type {
	case TypeLine:
		return NewLine(deref(r.Start), deref(r.End), o), true
	case TypeCircle:
		return NewCircle(deref(r.Center), derefFloat(r.Radius), o), true
	case TypeEllipse:
		return NewEllipse(deref(r.Center), derefFloat(r.RadiusX), derefFloat(r.RadiusY), o), true
	case TypePolyline:
		var pts []Point
		if r.Points != nil {
			pts = *r.Points
		}
		return NewPolyline(pts, o), true
	}
	return nil, false
}

func deref(p *Point) Point {
	if p == nil {
		return Point{}
	}
	return *p
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Clone returns a deep copy of s with the same id and preview flag.
func Clone(s Shape) Shape {
	if s == nil {
		return nil
	}
	r := s.Record()
	c, _ := fromRecord(r, Options{ID: r.ID, Color: r.Color, Hidden: !r.Visible, Preview: s.IsPreview()})
	return c
}
