// Package appstate coordinates the shape registry, the active tool, the
// single preview slot and the current selection, and tells renderers and
// panels when to redraw.
package appstate

import (
	"log"
	"sync"

	"github.com/example/sketchpad/internal/registry"
	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

// Renderer draws a scene snapshot.
type Renderer interface {
	Render(sc render.Scene) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(sc render.Scene) error

func (f RendererFunc) Render(sc render.Scene) error { return f(sc) }

// AppState holds the drawing session. All methods are safe for concurrent
// use; events are applied one at a time in arrival order.
type AppState struct {
	mu       sync.Mutex
	registry *registry.Registry
	tool     tool.Tool
	preview  shape.Shape
	selected string
	theme    *theme.Theme
	dirty    bool

	initialTool tool.Kind
	renderer    Renderer
	logger      *log.Logger

	obsMu     sync.Mutex
	observers []observer
	nextObs   int
	rendering bool
	pending   bool
}

type observer struct {
	id int
	fn func()
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithRenderer binds the renderer invoked by RequestRender.
func WithRenderer(r Renderer) Option { return func(a *AppState) { a.renderer = r } }

// WithTool sets the tool that is active when the session starts.
func WithTool(k tool.Kind) Option { return func(a *AppState) { a.initialTool = k } }

// WithTheme sets the initial theme.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithRegistry uses r instead of an empty registry.
func WithRegistry(r *registry.Registry) Option { return func(a *AppState) { a.registry = r } }

// WithLogger sets the logger used for render failures.
func WithLogger(l *log.Logger) Option { return func(a *AppState) { a.logger = l } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{initialTool: tool.KindSelect}
	for _, o := range opts {
		o(a)
	}
	if a.registry == nil {
		a.registry = registry.New()
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	if a.logger == nil {
		a.logger = log.Default()
	}
	a.tool = tool.New(a.initialTool, a.host())
	return a
}

// update runs fn with the state locked and requests a render afterwards if
// fn changed anything visible.
func (a *AppState) update(fn func()) {
	a.mu.Lock()
	fn()
	dirty := a.dirty
	a.dirty = false
	a.mu.Unlock()
	if dirty {
		a.RequestRender()
	}
}

func (a *AppState) host() *host { return (*host)(a) }

// SetActiveTool cancels the current tool and installs a new one of kind k.
func (a *AppState) SetActiveTool(k tool.Kind) {
	a.update(func() {
		if a.tool != nil {
			a.tool.Cancel()
		}
		a.tool = tool.New(k, a.host())
		a.preview = nil
		a.dirty = true
	})
}

// ActiveTool reports the kind of the active tool.
func (a *AppState) ActiveTool() tool.Kind {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tool.Kind()
}

// Drawing reports whether the active tool has a gesture in progress.
func (a *AppState) Drawing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tool.Drawing()
}

// SetPreview fills the preview slot.
func (a *AppState) SetPreview(s shape.Shape) { a.update(func() { a.host().SetPreview(s) }) }

// ClearPreview empties the preview slot.
func (a *AppState) ClearPreview() { a.update(func() { a.host().ClearPreview() }) }

// Preview returns the shape in the preview slot, or nil.
func (a *AppState) Preview() shape.Shape {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.preview
}

// Select marks id as the selected shape. The id is not validated; an empty
// id clears the selection.
func (a *AppState) Select(id string) { a.update(func() { a.host().Select(id) }) }

// ClearSelection is Select("").
func (a *AppState) ClearSelection() { a.Select("") }

// Selected returns the selected id, or "".
func (a *AppState) Selected() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selected
}

// SelectedShape returns the selected shape, or nil when nothing is selected
// or the id no longer resolves.
func (a *AppState) SelectedShape() shape.Shape {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.selected == "" {
		return nil
	}
	return a.registry.Get(a.selected)
}

// Add inserts s into the registry, replacing any shape with the same id.
// Previews are ignored.
func (a *AppState) Add(s shape.Shape) {
	if s == nil || s.IsPreview() {
		return
	}
	a.update(func() { a.host().Commit(s) })
}

// Remove deletes the shape with id and clears the selection if it pointed at
// that shape. It reports whether a shape was removed.
func (a *AppState) Remove(id string) bool {
	var ok bool
	a.update(func() {
		ok = a.registry.Remove(id)
		if !ok {
			return
		}
		if a.selected == id {
			a.selected = ""
		}
		a.dirty = true
	})
	return ok
}

// SetVisible shows or hides a shape.
func (a *AppState) SetVisible(id string, visible bool) {
	a.update(func() {
		if a.registry.Get(id) == nil {
			return
		}
		a.registry.SetVisible(id, visible)
		a.dirty = true
	})
}

// ToggleVisible flips the visibility of a shape.
func (a *AppState) ToggleVisible(id string) {
	a.update(func() {
		if a.registry.Get(id) == nil {
			return
		}
		a.registry.ToggleVisible(id)
		a.dirty = true
	})
}

// Edit runs fn on the shape with id and requests one render afterwards. It
// reports false when the id does not resolve.
func (a *AppState) Edit(id string, fn func(shape.Shape)) bool {
	var ok bool
	a.update(func() {
		s := a.registry.Get(id)
		if s == nil {
			return
		}
		ok = true
		fn(s)
		a.dirty = true
	})
	return ok
}

// Get returns the shape with id, or nil.
func (a *AppState) Get(id string) shape.Shape {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.Get(id)
}

// Shapes returns the committed shapes bottom to top.
func (a *AppState) Shapes() []shape.Shape {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.All()
}

// LoadShapes replaces the whole drawing. Any gesture in progress is dropped
// and the selection is cleared.
func (a *AppState) LoadShapes(shapes []shape.Shape) {
	a.update(func() {
		a.tool.Cancel()
		a.registry.Replace(shapes)
		a.preview = nil
		a.selected = ""
		a.dirty = true
	})
}

// Theme returns the current theme.
func (a *AppState) Theme() *theme.Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

// SetTheme switches to t.
func (a *AppState) SetTheme(t *theme.Theme) {
	if t == nil {
		return
	}
	a.update(func() {
		a.theme = t
		a.dirty = true
	})
}

// ToggleTheme swaps between the built-in light and dark themes.
func (a *AppState) ToggleTheme() {
	a.update(func() {
		a.theme = theme.Opposite(a.theme)
		a.dirty = true
	})
}

// Scene returns a snapshot for renderers. Shapes are copies so the snapshot
// can be drawn while events keep arriving.
func (a *AppState) Scene() render.Scene {
	a.mu.Lock()
	defer a.mu.Unlock()
	all := a.registry.All()
	for i, s := range all {
		all[i] = shape.Clone(s)
	}
	return render.Scene{
		Shapes:   all,
		Preview:  shape.Clone(a.preview),
		Selected: a.selected,
		Theme:    a.theme,
	}
}
