package appstate

import (
	"errors"
	"testing"
	"time"

	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/tool"
)

func TestLineGestureCommitsThroughTool(t *testing.T) {
	var frames []render.Scene
	a := New(WithTool(tool.KindLine), WithRenderer(RendererFunc(func(sc render.Scene) error {
		frames = append(frames, sc)
		return nil
	})))
	a.PointerDown(shape.Pt(0, 0))
	a.PointerMove(shape.Pt(10, 10))
	if p := a.Preview(); p == nil || !p.IsPreview() {
		t.Fatalf("expected preview, got %v", p)
	}
	a.PointerUp(shape.Pt(10, 10))
	if a.Preview() != nil {
		t.Fatal("preview not cleared")
	}
	all := a.Shapes()
	if len(all) != 1 {
		t.Fatalf("expected one shape, got %d", len(all))
	}
	l := all[0].(*shape.Line)
	if l.Start != shape.Pt(0, 0) || l.End != shape.Pt(10, 10) {
		t.Fatalf("unexpected line %v %v", l.Start, l.End)
	}
	if len(frames) != 3 {
		t.Fatalf("expected a render per visible change, got %d", len(frames))
	}
	if last := frames[len(frames)-1]; last.Preview != nil || len(last.Shapes) != 1 {
		t.Fatalf("final frame %+v", last)
	}
}

func TestSetActiveToolCancelsGesture(t *testing.T) {
	a := New(WithTool(tool.KindCircle))
	a.PointerDown(shape.Pt(0, 0))
	a.PointerMove(shape.Pt(20, 0))
	if !a.Drawing() {
		t.Fatal("expected gesture in progress")
	}
	a.SetActiveTool(tool.KindLine)
	if a.Preview() != nil {
		t.Fatal("preview survived tool switch")
	}
	if a.ActiveTool() != tool.KindLine || a.Drawing() {
		t.Fatalf("unexpected tool state %v drawing=%v", a.ActiveTool(), a.Drawing())
	}
	a.PointerUp(shape.Pt(20, 0))
	if len(a.Shapes()) != 0 {
		t.Fatal("half gesture leaked into the new tool")
	}
}

func TestSelectToolAndRemoveClearsSelection(t *testing.T) {
	a := New()
	a.Add(shape.NewCircle(shape.Pt(0, 0), 10, shape.Options{ID: "c"}))
	a.PointerDown(shape.Pt(2, 2))
	if a.Selected() != "c" || a.SelectedShape() == nil {
		t.Fatalf("expected c selected, got %q", a.Selected())
	}
	if !a.Remove("c") {
		t.Fatal("remove reported missing shape")
	}
	if a.Selected() != "" {
		t.Fatalf("selection not cleared: %q", a.Selected())
	}
}

func TestRemoveOtherKeepsSelection(t *testing.T) {
	a := New()
	a.Add(shape.NewCircle(shape.Pt(0, 0), 10, shape.Options{ID: "a"}))
	a.Add(shape.NewCircle(shape.Pt(0, 0), 10, shape.Options{ID: "b"}))
	a.Select("a")
	a.Remove("b")
	if a.Selected() != "a" {
		t.Fatalf("unexpected selection %q", a.Selected())
	}
}

func TestSelectMissingIDDegrades(t *testing.T) {
	a := New()
	a.Select("ghost")
	if a.Selected() != "ghost" {
		t.Fatalf("selected %q", a.Selected())
	}
	if a.SelectedShape() != nil {
		t.Fatal("expected nil shape for unknown id")
	}
}

func TestAddIgnoresPreview(t *testing.T) {
	a := New()
	a.Add(shape.NewLine(shape.Pt(0, 0), shape.Pt(1, 1), shape.Options{Preview: true}))
	if len(a.Shapes()) != 0 {
		t.Fatal("preview inserted into registry")
	}
}

func TestObserversRunAfterRenderInOrder(t *testing.T) {
	var calls []string
	a := New(WithRenderer(RendererFunc(func(render.Scene) error {
		calls = append(calls, "render")
		return nil
	})))
	a.Subscribe(func() { calls = append(calls, "first") })
	unsub := a.Subscribe(func() { calls = append(calls, "second") })
	a.RequestRender()
	want := []string{"render", "first", "second"}
	if len(calls) != len(want) {
		t.Fatalf("got %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("got %v want %v", calls, want)
		}
	}
	unsub()
	calls = nil
	a.RequestRender()
	if len(calls) != 2 || calls[1] != "first" {
		t.Fatalf("unsubscribe failed: %v", calls)
	}
}

func TestReentrantRenderIsCoalesced(t *testing.T) {
	renders := 0
	a := New(WithRenderer(RendererFunc(func(render.Scene) error {
		renders++
		return nil
	})))
	nested := 0
	a.Subscribe(func() {
		if nested < 5 {
			nested++
			a.RequestRender()
			a.RequestRender()
		}
	})
	a.RequestRender()
	if renders != 2 {
		t.Fatalf("expected one extra pass for nested requests, got %d renders", renders)
	}
	renders, nested = 0, 0
	a.RequestRender()
	if renders != 2 {
		t.Fatalf("guard not reset after the loop ended, got %d renders", renders)
	}
}

func TestObserverRequestingRenderEveryTimeTerminates(t *testing.T) {
	renders := 0
	a := New(WithRenderer(RendererFunc(func(render.Scene) error {
		renders++
		if renders > 100 {
			t.Fatal("render loop did not terminate")
		}
		return nil
	})))
	notified := 0
	a.Subscribe(func() {
		notified++
		a.RequestRender()
	})
	a.RequestRender()
	if renders != 2 || notified != 2 {
		t.Fatalf("renders=%d notified=%d", renders, notified)
	}
	a.Select("x")
	if renders != 4 {
		t.Fatalf("later requests must still render, got %d", renders)
	}
}

func TestObserverMayReadState(t *testing.T) {
	a := New()
	var seen string
	a.Subscribe(func() { seen = a.Selected() })
	a.Select("x")
	if seen != "x" {
		t.Fatalf("observer saw %q", seen)
	}
}

func TestRenderErrorIsLoggedNotFatal(t *testing.T) {
	a := New(WithRenderer(RendererFunc(func(render.Scene) error { return errors.New("boom") })))
	notified := false
	a.Subscribe(func() { notified = true })
	a.RequestRender()
	if !notified {
		t.Fatal("observers should still run after a render error")
	}
}

func TestLoadShapesReplacesAndClears(t *testing.T) {
	a := New(WithTool(tool.KindPolyline))
	a.Add(shape.NewCircle(shape.Pt(0, 0), 1, shape.Options{ID: "old"}))
	a.Select("old")
	a.PointerDown(shape.Pt(0, 0))
	a.LoadShapes([]shape.Shape{shape.NewCircle(shape.Pt(0, 0), 1, shape.Options{ID: "new"})})
	if a.Selected() != "" || a.Preview() != nil || a.Drawing() {
		t.Fatal("load must clear selection and gesture")
	}
	all := a.Shapes()
	if len(all) != 1 || all[0].ID() != "new" {
		t.Fatalf("unexpected shapes %v", all)
	}
}

func TestVisibilityAndSceneSnapshot(t *testing.T) {
	a := New()
	a.Add(shape.NewCircle(shape.Pt(0, 0), 10, shape.Options{ID: "c"}))
	a.ToggleVisible("c")
	if a.Get("c").Visible() {
		t.Fatal("toggle did not hide")
	}
	a.SetVisible("c", true)
	sc := a.Scene()
	sc.Shapes[0].(*shape.Circle).SetRadius(99)
	if a.Get("c").(*shape.Circle).Radius() != 10 {
		t.Fatal("scene snapshot aliases live shapes")
	}
}

func TestEditRendersOnce(t *testing.T) {
	renders := 0
	a := New(WithRenderer(RendererFunc(func(render.Scene) error { renders++; return nil })))
	a.Add(shape.NewCircle(shape.Pt(0, 0), 10, shape.Options{ID: "c"}))
	renders = 0
	if !a.Edit("c", func(s shape.Shape) { s.SetColor("#123456") }) {
		t.Fatal("edit reported missing shape")
	}
	if renders != 1 || a.Get("c").Color() != "#123456" {
		t.Fatalf("renders=%d color=%s", renders, a.Get("c").Color())
	}
	if a.Edit("nope", func(shape.Shape) {}) {
		t.Fatal("edit on missing id should report false")
	}
}

func TestToggleTheme(t *testing.T) {
	a := New()
	if a.Theme().Dark {
		t.Fatal("expected light default")
	}
	a.ToggleTheme()
	if !a.Theme().Dark {
		t.Fatal("expected dark after toggle")
	}
}

func TestSurfaceLocal(t *testing.T) {
	s := Surface{Origin: shape.Pt(100, 40)}
	if p := s.Local(110, 45); p != shape.Pt(10, 5) {
		t.Fatalf("got %v", p)
	}
}

func TestPolylineScenarioThroughAppState(t *testing.T) {
	a := New()
	a.SetActiveTool(tool.KindPolyline)
	a.PointerDown(shape.Pt(0, 0))
	a.PointerDown(shape.Pt(10, 0))
	a.PointerDown(shape.Pt(10, 10))
	a.DoubleClick()
	all := a.Shapes()
	if len(all) != 1 {
		t.Fatalf("expected one polyline, got %d", len(all))
	}
	if pts := all[0].(*shape.Polyline).Points; len(pts) != 3 || pts[2] != shape.Pt(10, 10) {
		t.Fatalf("unexpected points %v", pts)
	}
}

func TestClickTracker(t *testing.T) {
	var c ClickTracker
	t0 := time.Unix(0, 0)
	if c.Press(shape.Pt(0, 0), t0) {
		t.Fatal("first press is not a double-click")
	}
	if !c.Press(shape.Pt(3, 0), t0.Add(300*time.Millisecond)) {
		t.Fatal("expected double-click within interval and slop")
	}
	if c.Press(shape.Pt(3, 0), t0.Add(350*time.Millisecond)) {
		t.Fatal("third press must start a new pair")
	}
	if c.Press(shape.Pt(3, 0), t0.Add(900*time.Millisecond)) {
		t.Fatal("slow second press is not a double-click")
	}
	if c.Press(shape.Pt(20, 0), t0.Add(1000*time.Millisecond)) {
		t.Fatal("distant second press is not a double-click")
	}
}
