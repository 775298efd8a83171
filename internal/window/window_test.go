package window

import (
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/tool"
)

func newController(t *testing.T, app *appstate.AppState, opts ...Option) *Controller {
	t.Helper()
	c := NewController(app, opts...)
	t.Cleanup(c.Close)
	return c
}

func buttonCenter(t *testing.T, c *Controller, label string) (float64, float64) {
	t.Helper()
	for _, b := range c.buttons {
		if b.Button.(*ActionButton).label == label {
			r := b.Rect()
			return float64(r.Min.X+r.Max.X) / 2, float64(r.Min.Y+r.Max.Y) / 2
		}
	}
	t.Fatalf("no button %q", label)
	return 0, 0
}

func TestToolbarSelectsTool(t *testing.T) {
	app := appstate.New()
	c := newController(t, app)
	c.Press(buttonCenter(t, c, "Ellipse"))
	if app.ActiveTool() != tool.KindEllipse {
		t.Fatalf("tool %v", app.ActiveTool())
	}
	c.Press(buttonCenter(t, c, "Theme"))
	if !app.Theme().Dark {
		t.Fatal("theme button did not toggle")
	}
}

func TestCanvasGestureSubtractsOrigin(t *testing.T) {
	app := appstate.New(appstate.WithTool(tool.KindLine))
	c := newController(t, app)
	c.Press(10, toolbarHeight+10)
	c.Move(60, toolbarHeight+50)
	c.Release(60, toolbarHeight+50)
	all := app.Shapes()
	if len(all) != 1 {
		t.Fatalf("expected one line, got %d", len(all))
	}
	l := all[0].(*shape.Line)
	if l.Start != shape.Pt(10, 10) || l.End != shape.Pt(60, 50) {
		t.Fatalf("unexpected line %v %v", l.Start, l.End)
	}
}

func TestDoubleClickFinishesPolyline(t *testing.T) {
	app := appstate.New(appstate.WithTool(tool.KindPolyline))
	c := newController(t, app)
	now := time.Unix(100, 0)
	c.now = func() time.Time { return now }
	y := float64(toolbarHeight + 20)
	c.Press(10, y)
	c.Release(10, y)
	now = now.Add(time.Second)
	c.Press(50, y)
	c.Release(50, y)
	now = now.Add(100 * time.Millisecond)
	c.Press(51, y)
	c.Release(51, y)
	if len(app.Shapes()) != 1 {
		t.Fatalf("expected committed polyline, got %d shapes", len(app.Shapes()))
	}
}

func TestEscapeCancels(t *testing.T) {
	app := appstate.New(appstate.WithTool(tool.KindCircle))
	c := newController(t, app)
	c.Press(100, 100)
	c.Move(140, 100)
	c.KeyPress(Key{Code: KeyEscape})
	c.Release(140, 100)
	if len(app.Shapes()) != 0 || app.Preview() != nil {
		t.Fatal("escape must drop the gesture")
	}
}

func TestShapeListRows(t *testing.T) {
	app := appstate.New()
	app.Add(shape.NewCircle(shape.Pt(0, 0), 5, shape.Options{ID: "a"}))
	app.Add(shape.NewCircle(shape.Pt(0, 0), 5, shape.Options{ID: "b"}))
	c := newController(t, app)

	r := c.rowRect(1)
	c.Press(float64(r.Min.X+60), float64(r.Min.Y+5))
	if app.Selected() != "b" {
		t.Fatalf("row click selected %q", app.Selected())
	}
	c.Press(float64(r.Min.X+8), float64(r.Min.Y+5))
	if app.Get("b").Visible() {
		t.Fatal("visibility box did not toggle")
	}
	c.Press(float64(r.Max.X-8), float64(r.Min.Y+5))
	if app.Get("b") != nil || app.Selected() != "" {
		t.Fatal("delete box must remove the row and clear the selection")
	}
}

func TestPropertyPanelCommit(t *testing.T) {
	app := appstate.New()
	app.Add(shape.NewCircle(shape.Pt(10, 10), 5, shape.Options{ID: "c"}))
	app.Select("c")
	c := newController(t, app)
	c.Paint(image.NewRGBA(image.Rect(0, 0, DefaultWidth, DefaultHeight)))

	if len(c.fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(c.fields))
	}
	radius := c.fields[2].rect
	c.Press(float64(radius.Min.X+2), float64(radius.Min.Y+2))
	if c.focus != 2 {
		t.Fatalf("focus %d", c.focus)
	}
	c.KeyPress(Key{Code: KeyBackspace})
	c.KeyPress(Key{Code: KeyRune, Rune: '8'})
	if app.Get("c").(*shape.Circle).Radius() != 5 {
		t.Fatal("typing must not touch the shape")
	}
	c.Paint(image.NewRGBA(image.Rect(0, 0, DefaultWidth, DefaultHeight)))
	if c.fields[2].text != "8" {
		t.Fatal("repaint discarded typed text")
	}
	c.Press(float64(c.updateBtn.Min.X+2), float64(c.updateBtn.Min.Y+2))
	if r := app.Get("c").(*shape.Circle).Radius(); r != 8 {
		t.Fatalf("radius %v", r)
	}

	c.Press(float64(c.visibleBox.Min.X+2), float64(c.visibleBox.Min.Y+2))
	if app.Get("c").Visible() {
		t.Fatal("visible checkbox did not toggle")
	}
	c.Press(float64(c.deleteBtn.Min.X+2), float64(c.deleteBtn.Min.Y+2))
	if app.Get("c") != nil {
		t.Fatal("delete button did not remove the shape")
	}
}

func TestSaveLoadButtons(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.json")
	app := appstate.New()
	app.Add(shape.NewLine(shape.Pt(0, 0), shape.Pt(9, 9), shape.Options{ID: "l"}))
	var saved string
	var loaded int
	c := newController(t, app, WithFile(path),
		WithSaveHook(func(p string) { saved = p }),
		WithLoadHook(func(_ string, n int) { loaded = n }))
	c.Press(buttonCenter(t, c, "Save"))
	if saved != path {
		t.Fatalf("save hook %q", saved)
	}
	app.Remove("l")
	c.Press(buttonCenter(t, c, "Load"))
	if loaded != 1 || app.Get("l") == nil {
		t.Fatalf("load: %d shapes", loaded)
	}
}

func TestPaintDrawsCanvasAndSelection(t *testing.T) {
	app := appstate.New()
	app.Add(shape.NewLine(shape.Pt(20, 20), shape.Pt(200, 20), shape.Options{ID: "l", Color: shape.FinalColor}))
	app.Select("l")
	c := newController(t, app)
	img := image.NewRGBA(image.Rect(0, 0, DefaultWidth, DefaultHeight))
	c.Paint(img)
	if got := img.RGBAAt(100, toolbarHeight+20); got.R > 60 {
		t.Fatalf("expected dark stroke on canvas, got %v", got)
	}
	sel := app.Theme().Selection
	halo := img.RGBAAt(100, toolbarHeight+20+4)
	if halo == app.Theme().Canvas {
		t.Fatalf("expected halo near the selected line, got canvas colour (selection %v)", sel)
	}
}
