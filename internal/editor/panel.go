package editor

import (
	"sync"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/shape"
)

// PropertyPanel keeps a draft of the selected shape. The draft is reseeded
// whenever the selection changes and after every successful Update.
type PropertyPanel struct {
	app *appstate.AppState

	mu     sync.Mutex
	draft  Draft
	seeded string
	unsub  func()
}

// NewPropertyPanel binds a panel to app and seeds it from the current
// selection.
func NewPropertyPanel(app *appstate.AppState) *PropertyPanel {
	p := &PropertyPanel{app: app}
	p.reseed()
	p.unsub = app.Subscribe(p.sync)
	return p
}

// Close stops following app.
func (p *PropertyPanel) Close() {
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
}

func (p *PropertyPanel) sync() {
	id := p.app.Selected()
	p.mu.Lock()
	changed := id != p.seeded
	p.mu.Unlock()
	if changed {
		p.reseed()
	}
}

func (p *PropertyPanel) reseed() {
	s := p.app.SelectedShape()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seeded = p.app.Selected()
	p.draft.Seed(s)
}

// Shape returns the shape being edited, or nil.
func (p *PropertyPanel) Shape() shape.Shape { return p.app.SelectedShape() }

// Draft returns a copy of the current draft.
func (p *PropertyPanel) Draft() Draft {
	p.mu.Lock()
	defer p.mu.Unlock()
	d := p.draft
	d.points = d.Points()
	d.numbers = d.Numbers()
	return d
}

// Edit mutates the draft under the panel lock.
func (p *PropertyPanel) Edit(fn func(d *Draft)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.draft)
}

// Update commits the draft to the selected shape and reports whether a shape
// was updated.
func (p *PropertyPanel) Update() bool {
	d := p.Draft()
	if d.ID() == "" {
		return false
	}
	ok := p.app.Edit(d.ID(), d.Apply)
	if ok {
		p.reseed()
	}
	return ok
}

// Reset throws away pending edits.
func (p *PropertyPanel) Reset() { p.reseed() }

// SetVisible shows or hides the selected shape immediately.
func (p *PropertyPanel) SetVisible(v bool) {
	if id := p.Draft().ID(); id != "" {
		p.app.SetVisible(id, v)
	}
}

// ToggleVisible flips visibility of the selected shape immediately.
func (p *PropertyPanel) ToggleVisible() {
	if id := p.Draft().ID(); id != "" {
		p.app.ToggleVisible(id)
	}
}

// Delete removes the selected shape.
func (p *PropertyPanel) Delete() bool {
	id := p.Draft().ID()
	if id == "" {
		return false
	}
	return p.app.Remove(id)
}
