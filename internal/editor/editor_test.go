package editor

import (
	"math"
	"testing"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/shape"
)

func TestDraftDoesNotTouchShapeUntilCommit(t *testing.T) {
	c := shape.NewCircle(shape.Pt(0, 0), 10, shape.Options{ID: "c", Color: "#000000"})
	d := NewDraft(c)
	d.SetPoint(0, 5, 6)
	d.SetNumber("radius", 20)
	d.SetColor("#ff0000")
	if c.Center != shape.Pt(0, 0) || c.Radius() != 10 || c.Color() != "#000000" {
		t.Fatal("draft edits leaked into the shape")
	}
	if !d.Dirty() {
		t.Fatal("expected dirty draft")
	}
	renders := 0
	d.Commit(c, func() { renders++ })
	if c.Center != shape.Pt(5, 6) || c.Radius() != 20 || c.Color() != "#ff0000" {
		t.Fatalf("commit not applied: %+v", c.Record())
	}
	if renders != 1 {
		t.Fatalf("expected one render, got %d", renders)
	}
}

func TestCommitClampsNumbers(t *testing.T) {
	e := shape.NewEllipse(shape.Pt(0, 0), 10, 10, shape.Options{})
	d := NewDraft(e)
	d.SetNumber("rx", 0)
	d.SetNumber("ry", -4)
	d.SetNumber("nope", 3)
	d.Apply(e)
	if e.RadiusX() != 1 || e.RadiusY() != 1 {
		t.Fatalf("expected radii clamped to 1, got %v %v", e.RadiusX(), e.RadiusY())
	}
}

func TestSecondCommitOverwrites(t *testing.T) {
	l := shape.NewLine(shape.Pt(0, 0), shape.Pt(1, 1), shape.Options{})
	first := NewDraft(l)
	first.SetPoint(1, 50, 50)
	first.SetColor("#111111")
	second := NewDraft(l)
	second.SetPoint(1, 70, 80)
	second.SetColor("#222222")
	first.Apply(l)
	second.Apply(l)
	if l.End != shape.Pt(70, 80) || l.Color() != "#222222" {
		t.Fatalf("unexpected line %+v", l.Record())
	}
	second.Apply(l)
	if l.End != shape.Pt(70, 80) || l.Start != shape.Pt(0, 0) {
		t.Fatal("repeated commit is not idempotent")
	}
}

func TestDraftIgnoresBadInput(t *testing.T) {
	p := shape.NewPolyline([]shape.Point{shape.Pt(0, 0), shape.Pt(1, 1)}, shape.Options{})
	d := NewDraft(p)
	d.SetPoint(5, 1, 1)
	d.SetPointX(0, math.NaN())
	d.SetNumber("radius", 3)
	if d.Dirty() {
		t.Fatal("ignored edits marked the draft dirty")
	}
	d.SetPointY(1, 9)
	pts := d.Points()
	if pts[1].X != 1 || pts[1].Y != 9 || !pts[1].Set || pts[0].Set {
		t.Fatalf("unexpected points %+v", pts)
	}
}

func TestPropertyPanelReseedsOnSelectionChange(t *testing.T) {
	app := appstate.New()
	app.Add(shape.NewCircle(shape.Pt(0, 0), 10, shape.Options{ID: "a"}))
	app.Add(shape.NewCircle(shape.Pt(50, 50), 5, shape.Options{ID: "b"}))
	p := NewPropertyPanel(app)
	defer p.Close()
	if p.Draft().ID() != "" {
		t.Fatal("expected empty draft without selection")
	}
	app.Select("a")
	if d := p.Draft(); d.ID() != "a" || d.Numbers()[0].Value != 10 {
		t.Fatalf("unexpected draft %+v", d)
	}
	p.Edit(func(d *Draft) { d.SetNumber("radius", 30) })
	app.RequestRender()
	if p.Draft().Numbers()[0].Value != 30 {
		t.Fatal("render without selection change discarded the draft")
	}
	app.Select("b")
	if d := p.Draft(); d.ID() != "b" || d.Numbers()[0].Value != 5 || d.Dirty() {
		t.Fatalf("draft not reseeded: %+v", d)
	}
	if app.Get("a").(*shape.Circle).Radius() != 10 {
		t.Fatal("uncommitted draft changed the shape")
	}
}

func TestPropertyPanelUpdateAndDelete(t *testing.T) {
	renders := 0
	app := appstate.New(appstate.WithRenderer(appstate.RendererFunc(func(render.Scene) error {
		renders++
		return nil
	})))
	app.Add(shape.NewLine(shape.Pt(0, 0), shape.Pt(10, 0), shape.Options{ID: "l"}))
	app.Select("l")
	p := NewPropertyPanel(app)
	defer p.Close()
	p.Edit(func(d *Draft) {
		d.SetPoint(0, 3, 4)
		d.SetColor("#00ff00")
	})
	renders = 0
	if !p.Update() {
		t.Fatal("update failed")
	}
	if renders != 1 {
		t.Fatalf("expected one render for the commit, got %d", renders)
	}
	l := app.Get("l").(*shape.Line)
	if l.Start != shape.Pt(3, 4) || l.Color() != "#00ff00" {
		t.Fatalf("unexpected line %+v", l.Record())
	}
	if p.Draft().Dirty() {
		t.Fatal("draft should be reseeded after update")
	}
	p.ToggleVisible()
	if l.Visible() {
		t.Fatal("toggle visible had no effect")
	}
	if !p.Delete() {
		t.Fatal("delete failed")
	}
	if app.Selected() != "" || len(app.Shapes()) != 0 {
		t.Fatal("delete must remove the shape and clear the selection")
	}
	if p.Draft().ID() != "" {
		t.Fatal("draft should follow the cleared selection")
	}
	if p.Update() {
		t.Fatal("update without selection should report false")
	}
}

func TestShapeList(t *testing.T) {
	app := appstate.New()
	app.Add(shape.NewLine(shape.Pt(0, 0), shape.Pt(1, 1), shape.Options{ID: "l"}))
	app.Add(shape.NewCircle(shape.Pt(0, 0), 1, shape.Options{ID: "c"}))
	list := ShapeList{App: app}
	if !list.Select(1) {
		t.Fatal("select failed")
	}
	rows := list.Rows()
	if len(rows) != 2 || rows[0].Type != shape.TypeLine || rows[1].ID != "c" || !rows[1].Selected || rows[0].Selected {
		t.Fatalf("unexpected rows %+v", rows)
	}
	list.ToggleVisible(0)
	if list.Rows()[0].Visible {
		t.Fatal("expected row 0 hidden")
	}
	if !list.Delete(1) || app.Selected() != "" {
		t.Fatal("delete of selected row must clear selection")
	}
	if list.Delete(5) || list.Select(-1) || list.ToggleVisible(3) {
		t.Fatal("out of range rows must be rejected")
	}
}
