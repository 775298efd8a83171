package tool

import (
	"testing"

	"github.com/example/sketchpad/internal/registry"
	"github.com/example/sketchpad/internal/shape"
)

type fakeHost struct {
	reg      *registry.Registry
	preview  shape.Shape
	selected string
	previews int
}

func newFakeHost() *fakeHost { return &fakeHost{reg: registry.New()} }

func (h *fakeHost) HitTest(p shape.Point) shape.Shape { return h.reg.HitTest(p.X, p.Y) }
func (h *fakeHost) Select(id string)                  { h.selected = id }
func (h *fakeHost) SetPreview(s shape.Shape)          { h.preview = s; h.previews++ }
func (h *fakeHost) ClearPreview()                     { h.preview = nil }
func (h *fakeHost) Commit(s shape.Shape)              { h.reg.Add(s) }

func TestLineCommitsAfterDrag(t *testing.T) {
	h := newFakeHost()
	l := New(KindLine, h)
	l.PointerDown(shape.Pt(0, 0))
	if h.preview == nil || h.preview.ID() != "preview-line" || !h.preview.IsPreview() {
		t.Fatalf("expected line preview, got %v", h.preview)
	}
	if h.preview.Color() != shape.PreviewColor {
		t.Errorf("preview color %q", h.preview.Color())
	}
	l.PointerMove(shape.Pt(10, 10))
	if end := h.preview.(*shape.Line).End; end != shape.Pt(10, 10) {
		t.Fatalf("preview end not tracking pointer: %v", end)
	}
	l.PointerUp(shape.Pt(10, 10))
	if h.preview != nil {
		t.Fatal("preview not cleared")
	}
	all := h.reg.All()
	if len(all) != 1 {
		t.Fatalf("expected one shape, got %d", len(all))
	}
	line := all[0].(*shape.Line)
	if line.Start != shape.Pt(0, 0) || line.End != shape.Pt(10, 10) {
		t.Fatalf("unexpected geometry %v %v", line.Start, line.End)
	}
	if line.IsPreview() || line.Color() != shape.FinalColor || line.ID() == shape.PreviewID(shape.TypeLine) {
		t.Fatalf("committed line looks like a preview: %+v", line.Record())
	}
	if l.Drawing() {
		t.Fatal("tool still drawing")
	}
}

func TestLineShortDragDiscarded(t *testing.T) {
	h := newFakeHost()
	l := New(KindLine, h)
	l.PointerDown(shape.Pt(0, 0))
	l.PointerUp(shape.Pt(2, 0))
	if h.reg.Len() != 0 || h.preview != nil || l.Drawing() {
		t.Fatalf("expected discard, len=%d preview=%v", h.reg.Len(), h.preview)
	}
}

func TestCircleShortRadiusDiscarded(t *testing.T) {
	h := newFakeHost()
	c := New(KindCircle, h)
	c.PointerDown(shape.Pt(5, 5))
	c.PointerUp(shape.Pt(5, 6))
	if h.reg.Len() != 0 {
		t.Fatalf("expected no shape, got %d", h.reg.Len())
	}
	if h.preview != nil {
		t.Fatal("preview not cleared")
	}
	if c.Drawing() {
		t.Fatal("expected idle tool")
	}
}

func TestCircleCommitRadius(t *testing.T) {
	h := newFakeHost()
	c := New(KindCircle, h)
	c.PointerDown(shape.Pt(0, 0))
	c.PointerMove(shape.Pt(3, 4))
	if r := h.preview.(*shape.Circle).Radius(); r != 5 {
		t.Fatalf("preview radius %v", r)
	}
	c.PointerUp(shape.Pt(6, 8))
	all := h.reg.All()
	if len(all) != 1 || all[0].(*shape.Circle).Radius() != 10 {
		t.Fatalf("unexpected result %v", all)
	}
}

func TestDragToolIgnoresSecondDown(t *testing.T) {
	h := newFakeHost()
	c := New(KindCircle, h)
	c.PointerDown(shape.Pt(0, 0))
	c.PointerDown(shape.Pt(50, 50))
	c.PointerUp(shape.Pt(10, 0))
	all := h.reg.All()
	if len(all) != 1 || all[0].(*shape.Circle).Center != shape.Pt(0, 0) {
		t.Fatalf("second down should not restart gesture: %v", all)
	}
}

func TestEllipseOneAxisEnough(t *testing.T) {
	h := newFakeHost()
	e := New(KindEllipse, h)
	e.PointerDown(shape.Pt(10, 10))
	e.PointerMove(shape.Pt(20, 10))
	e.PointerUp(shape.Pt(20, 10))
	all := h.reg.All()
	if len(all) != 1 {
		t.Fatalf("expected one ellipse, got %d", len(all))
	}
	el := all[0].(*shape.Ellipse)
	if el.RadiusX() != 10 || el.RadiusY() != 1 {
		t.Fatalf("unexpected radii %v %v", el.RadiusX(), el.RadiusY())
	}
}

func TestEllipseBothAxesShortDiscarded(t *testing.T) {
	h := newFakeHost()
	e := New(KindEllipse, h)
	e.PointerDown(shape.Pt(10, 10))
	e.PointerUp(shape.Pt(12, 8))
	if h.reg.Len() != 0 || e.Drawing() || h.preview != nil {
		t.Fatal("expected ellipse gesture to be discarded and reset")
	}
	e.PointerDown(shape.Pt(0, 0))
	if !e.Drawing() {
		t.Fatal("expected a fresh gesture after discard")
	}
}

func TestPolylineCommitsCommittedVertices(t *testing.T) {
	h := newFakeHost()
	p := New(KindPolyline, h).(*Polyline)
	p.PointerDown(shape.Pt(0, 0))
	p.PointerDown(shape.Pt(10, 0))
	p.PointerDown(shape.Pt(10, 10))
	p.PointerMove(shape.Pt(30, 30))
	pts := h.preview.(*shape.Polyline).Points
	if len(pts) != 4 || pts[3] != shape.Pt(30, 30) {
		t.Fatalf("preview should end at cursor: %v", pts)
	}
	p.PointerUp(shape.Pt(30, 30))
	if h.reg.Len() != 0 {
		t.Fatal("pointer up must not finalize")
	}
	p.DoubleClick()
	all := h.reg.All()
	if len(all) != 1 {
		t.Fatalf("expected one polyline, got %d", len(all))
	}
	got := all[0].(*shape.Polyline).Points
	want := []shape.Point{shape.Pt(0, 0), shape.Pt(10, 0), shape.Pt(10, 10)}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d: got %v want %v", i, got[i], want[i])
		}
	}
	if h.preview != nil || p.Drawing() {
		t.Fatal("expected idle tool with no preview")
	}
}

func TestPolylineSingleVertexDoubleClickNoop(t *testing.T) {
	h := newFakeHost()
	p := New(KindPolyline, h)
	p.PointerDown(shape.Pt(0, 0))
	p.DoubleClick()
	if h.reg.Len() != 0 {
		t.Fatal("expected no polyline from one vertex")
	}
	if !p.Drawing() {
		t.Fatal("gesture should keep running")
	}
	p.Cancel()
	if p.Drawing() || h.preview != nil {
		t.Fatal("cancel should reset gesture and preview")
	}
}

func TestSelectHitsAndClears(t *testing.T) {
	h := newFakeHost()
	h.reg.Add(shape.NewCircle(shape.Pt(0, 0), 5, shape.Options{ID: "c"}))
	s := New(KindSelect, h)
	s.PointerDown(shape.Pt(1, 1))
	if h.selected != "c" {
		t.Fatalf("expected selection c, got %q", h.selected)
	}
	s.PointerDown(shape.Pt(100, 100))
	if h.selected != "" {
		t.Fatalf("expected cleared selection, got %q", h.selected)
	}
}

func TestCancelMidGesture(t *testing.T) {
	for _, k := range []Kind{KindLine, KindCircle, KindEllipse} {
		h := newFakeHost()
		tl := New(k, h)
		tl.PointerDown(shape.Pt(0, 0))
		tl.PointerMove(shape.Pt(20, 20))
		tl.Cancel()
		tl.PointerUp(shape.Pt(20, 20))
		if h.reg.Len() != 0 || h.preview != nil || tl.Drawing() {
			t.Errorf("%s: cancel did not reset gesture", k)
		}
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Ellipse ")
	if err != nil || k != KindEllipse {
		t.Fatalf("got %v %v", k, err)
	}
	if _, err := ParseKind("spray"); err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if KindPolyline.Label() != "Polyline" {
		t.Errorf("label %q", KindPolyline.Label())
	}
}
