package document

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/shape"
)

const mixed = `[
  {"type":"unknown","id":"u1"},
  {"type":"circle","id":"c1","center":{"x":0,"y":0},"radius":5,"visible":true,"color":"#000"}
]`

func TestLoadDropsUnknownRecords(t *testing.T) {
	app := appstate.New()
	dropped, err := Load(app, strings.NewReader(mixed))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dropped != 1 {
		t.Fatalf("expected one dropped record, got %d", dropped)
	}
	all := app.Shapes()
	if len(all) != 1 || all[0].ID() != "c1" {
		t.Fatalf("unexpected shapes %v", all)
	}
	if c := all[0].(*shape.Circle); c.Radius() != 5 || c.Color() != "#000" {
		t.Fatalf("unexpected circle %+v", c.Record())
	}
}

func TestLoadMalformedLeavesStateUntouched(t *testing.T) {
	app := appstate.New()
	app.Add(shape.NewCircle(shape.Pt(0, 0), 1, shape.Options{ID: "keep"}))
	app.Select("keep")
	for _, in := range []string{`{"type":"circle"}`, `[{"type":"circle",`, `null`, `[1,2]`, `[] []`} {
		_, err := Load(app, strings.NewReader(in))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("%q: expected ErrMalformed, got %v", in, err)
		}
	}
	if all := app.Shapes(); len(all) != 1 || all[0].ID() != "keep" {
		t.Fatalf("registry changed: %v", all)
	}
	if app.Selected() != "keep" {
		t.Fatal("selection changed on failed load")
	}
}

func TestLoadClearsSelection(t *testing.T) {
	app := appstate.New()
	app.Add(shape.NewCircle(shape.Pt(0, 0), 1, shape.Options{ID: "c1"}))
	app.Select("c1")
	if _, err := Load(app, strings.NewReader(mixed)); err != nil {
		t.Fatal(err)
	}
	if app.Selected() != "" {
		t.Fatalf("selection not cleared: %q", app.Selected())
	}
}

func TestSaveRoundTripKeepsOrder(t *testing.T) {
	app := appstate.New()
	app.Add(shape.NewLine(shape.Pt(0, 0), shape.Pt(5, 5), shape.Options{ID: "l", Color: "#000000"}))
	app.Add(shape.NewEllipse(shape.Pt(1, 2), 3, 4, shape.Options{ID: "e", Hidden: true}))
	app.Add(shape.NewPolyline([]shape.Point{shape.Pt(0, 0), shape.Pt(1, 0)}, shape.Options{ID: "p"}))
	app.SetPreview(shape.NewCircle(shape.Pt(0, 0), 3, shape.Options{Preview: true}))

	var buf bytes.Buffer
	if err := Save(app, &buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Contains(buf.String(), "preview") {
		t.Fatal("preview written to document")
	}
	shapes, dropped, err := Decode(buf.Bytes())
	if err != nil || dropped != 0 {
		t.Fatalf("decode: %v dropped=%d", err, dropped)
	}
	if len(shapes) != 3 || shapes[0].ID() != "l" || shapes[1].ID() != "e" || shapes[2].ID() != "p" {
		t.Fatalf("unexpected order %v", shapes)
	}
	if shapes[1].Visible() {
		t.Fatal("hidden flag lost")
	}
	e := shapes[1].(*shape.Ellipse)
	if e.Center != shape.Pt(1, 2) || e.RadiusX() != 3 || e.RadiusY() != 4 {
		t.Fatalf("ellipse geometry lost: %+v", e.Record())
	}
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode([]shape.Shape{shape.NewEllipse(shape.Pt(0, 0), 1, 2, shape.Options{ID: "e"})})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"radiusX": 1`, `"radiusY": 2`, `"type": "ellipse"`, `"visible": true`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("missing %s in %s", want, data)
		}
	}
	if strings.Contains(string(data), `"start"`) {
		t.Error("foreign geometry fields written")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "drawing.json")
	shapes := []shape.Shape{shape.NewCircle(shape.Pt(1, 1), 2, shape.Options{ID: "c"})}
	if err := WriteFile(path, shapes); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, _, err := ReadFile(path)
	if err != nil || len(got) != 1 || got[0].ID() != "c" {
		t.Fatalf("read back: %v %v", got, err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestWriteFileFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drawing.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	// A directory in place of the target makes the final rename fail.
	target := filepath.Join(dir, "taken")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(target, nil); err == nil {
		t.Fatal("expected rename onto a non-empty directory to fail")
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".taken.") {
			t.Fatalf("temporary file %s left behind", e.Name())
		}
	}
	if data, _ := os.ReadFile(path); string(data) != "[]" {
		t.Fatal("unrelated file modified")
	}
}

func TestReadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ReadFile(path); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
