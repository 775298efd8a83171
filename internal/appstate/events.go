package appstate

import (
	"time"

	"github.com/example/sketchpad/internal/shape"
)

// Double-click thresholds for front-ends that only report presses.
const (
	DoubleClickInterval = 400 * time.Millisecond
	DoubleClickSlop     = 4.0
)

// ClickTracker turns a stream of presses into double-clicks.
type ClickTracker struct {
	last  time.Time
	pos   shape.Point
	armed bool
}

// Press records a press at p and reports whether it completes a
// double-click. A completed pair disarms the tracker so a third press starts
// over.
func (c *ClickTracker) Press(p shape.Point, now time.Time) bool {
	if c.armed && now.Sub(c.last) <= DoubleClickInterval && p.Dist(c.pos) <= DoubleClickSlop {
		c.armed = false
		return true
	}
	c.last, c.pos, c.armed = now, p, true
	return false
}

// Surface describes where the drawing surface sits in device coordinates.
type Surface struct {
	Origin shape.Point
}

// Local translates a device position into drawing-surface coordinates.
func (s Surface) Local(x, y float64) shape.Point {
	return shape.Pt(x-s.Origin.X, y-s.Origin.Y)
}

// PointerDown forwards a press in surface coordinates to the active tool.
func (a *AppState) PointerDown(p shape.Point) { a.update(func() { a.tool.PointerDown(p) }) }

// PointerMove forwards pointer motion to the active tool.
func (a *AppState) PointerMove(p shape.Point) { a.update(func() { a.tool.PointerMove(p) }) }

// PointerUp forwards a release to the active tool.
func (a *AppState) PointerUp(p shape.Point) { a.update(func() { a.tool.PointerUp(p) }) }

// DoubleClick forwards a double-click to the active tool.
func (a *AppState) DoubleClick() { a.update(func() { a.tool.DoubleClick() }) }

// Cancel drops the gesture in progress.
func (a *AppState) Cancel() {
	a.update(func() {
		a.tool.Cancel()
		a.dirty = true
	})
}

// Subscribe registers fn to run after every render. The returned function
// removes it again.
func (a *AppState) Subscribe(fn func()) func() {
	a.obsMu.Lock()
	a.nextObs++
	id := a.nextObs
	a.observers = append(a.observers, observer{id: id, fn: fn})
	a.obsMu.Unlock()
	return func() {
		a.obsMu.Lock()
		defer a.obsMu.Unlock()
		for i, o := range a.observers {
			if o.id == id {
				a.observers = append(a.observers[:i:i], a.observers[i+1:]...)
				return
			}
		}
	}
}

// RequestRender redraws through the bound renderer and then notifies
// observers in subscription order. Calls made during the first pass,
// including from observers, are folded into one extra pass. Calls made during
// that extra pass are dropped.
func (a *AppState) RequestRender() {
	a.obsMu.Lock()
	if a.rendering {
		a.pending = true
		a.obsMu.Unlock()
		return
	}
	a.rendering = true
	a.obsMu.Unlock()

	for pass := 0; ; pass++ {
		a.renderPass()

		a.obsMu.Lock()
		again := a.pending && pass == 0
		a.pending = false
		if !again {
			a.rendering = false
			a.obsMu.Unlock()
			return
		}
		a.obsMu.Unlock()
	}
}

func (a *AppState) renderPass() {
	if a.renderer != nil {
		if err := a.renderer.Render(a.Scene()); err != nil {
			a.logger.Printf("render: %v", err)
		}
	}
	a.obsMu.Lock()
	obs := append([]observer(nil), a.observers...)
	a.obsMu.Unlock()
	for _, o := range obs {
		o.fn()
	}
}

// host adapts AppState to tool.Host. Its methods run with a.mu held.
type host AppState

func (h *host) HitTest(p shape.Point) shape.Shape { return h.registry.HitTest(p.X, p.Y) }

func (h *host) Select(id string) {
	h.selected = id
	h.dirty = true
}

func (h *host) SetPreview(s shape.Shape) {
	h.preview = s
	h.dirty = true
}

func (h *host) ClearPreview() {
	h.preview = nil
	h.dirty = true
}

func (h *host) Commit(s shape.Shape) {
	h.registry.Add(s)
	h.dirty = true
}
