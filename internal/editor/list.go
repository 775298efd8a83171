package editor

import (
	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/shape"
)

// Row is one line of the shape list.
type Row struct {
	ID       string
	Type     shape.Type
	Visible  bool
	Selected bool
}

// ShapeList exposes the registry as rows in z-order, bottom first.
type ShapeList struct {
	App *appstate.AppState
}

// Rows returns the current rows.
func (l ShapeList) Rows() []Row {
	sel := l.App.Selected()
	shapes := l.App.Shapes()
	rows := make([]Row, len(shapes))
	for i, s := range shapes {
		rows[i] = Row{ID: s.ID(), Type: s.Type(), Visible: s.Visible(), Selected: s.ID() == sel}
	}
	return rows
}

func (l ShapeList) at(i int) (string, bool) {
	shapes := l.App.Shapes()
	if i < 0 || i >= len(shapes) {
		return "", false
	}
	return shapes[i].ID(), true
}

// Select selects the shape in row i.
func (l ShapeList) Select(i int) bool {
	id, ok := l.at(i)
	if ok {
		l.App.Select(id)
	}
	return ok
}

// ToggleVisible flips visibility of the shape in row i.
func (l ShapeList) ToggleVisible(i int) bool {
	id, ok := l.at(i)
	if ok {
		l.App.ToggleVisible(id)
	}
	return ok
}

// Delete removes the shape in row i.
func (l ShapeList) Delete(i int) bool {
	id, ok := l.at(i)
	if ok {
		ok = l.App.Remove(id)
	}
	return ok
}
