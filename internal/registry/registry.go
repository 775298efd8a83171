// Package registry keeps the ordered set of committed shapes. Insertion order
// is the z-order: later shapes are drawn on top and hit-tested first.
package registry

import "github.com/example/sketchpad/internal/shape"

// Registry is an insertion-ordered map from shape id to shape.
type Registry struct {
	order  []string
	shapes map[string]shape.Shape
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{shapes: make(map[string]shape.Shape)}
}

// Add inserts s. A shape whose id is already present replaces the existing
// entry in place.
func (r *Registry) Add(s shape.Shape) {
	if s == nil {
		return
	}
	id := s.ID()
	if _, ok := r.shapes[id]; !ok {
		r.order = append(r.order, id)
	}
	r.shapes[id] = s
}

// Remove deletes the shape with the given id and reports whether it existed.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.shapes[id]; !ok {
		return false
	}
	delete(r.shapes, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties the registry.
func (r *Registry) Clear() {
	r.order = nil
	r.shapes = make(map[string]shape.Shape)
}

// Replace swaps the whole content for shapes, keeping their order.
func (r *Registry) Replace(shapes []shape.Shape) {
	r.Clear()
	for _, s := range shapes {
		r.Add(s)
	}
}

// Get returns the shape with the given id, or nil.
func (r *Registry) Get(id string) shape.Shape {
	return r.shapes[id]
}

// Len returns the number of shapes.
func (r *Registry) Len() int { return len(r.order) }

// All returns the shapes bottom to top.
func (r *Registry) All() []shape.Shape {
	out := make([]shape.Shape, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.shapes[id])
	}
	return out
}

// HitTest returns the topmost visible shape containing (x, y), or nil.
func (r *Registry) HitTest(x, y float64) shape.Shape {
	for i := len(r.order) - 1; i >= 0; i-- {
		s := r.shapes[r.order[i]]
		if s.Visible() && s.ContainsPoint(x, y) {
			return s
		}
	}
	return nil
}

// SetVisible sets the visibility of the shape with the given id.
func (r *Registry) SetVisible(id string, visible bool) {
	if s, ok := r.shapes[id]; ok {
		s.SetVisible(visible)
	}
}

// ToggleVisible flips the visibility of the shape with the given id.
func (r *Registry) ToggleVisible(id string) {
	if s, ok := r.shapes[id]; ok {
		s.SetVisible(!s.Visible())
	}
}

// CreateFromRecord builds a shape from a persisted record. Unknown types
// yield nil and must be dropped by the caller.
func (r *Registry) CreateFromRecord(rec shape.Record) shape.Shape {
	s, ok := shape.FromRecord(rec)
	if !ok {
		return nil
	}
	return s
}
