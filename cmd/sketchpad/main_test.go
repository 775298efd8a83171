package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/store"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

func newTestRoot(t *testing.T) (*root, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &root{
		program:     "sketchpad",
		stdout:      &out,
		config:      config.New(),
		activeTheme: theme.Default(),
		startTool:   tool.KindSelect,
	}, &out
}

func run(t *testing.T, r *root, parse func([]string, *root) (runnable, error), args ...string) error {
	t.Helper()
	cmd, err := parse(args, r)
	if err != nil {
		return err
	}
	return cmd.Run()
}

func shapesParser(args []string, r *root) (runnable, error) { return parseShapesCmd(args, r) }
func renderParser(args []string, r *root) (runnable, error) { return parseRenderCmd(args, r) }
func storeParser(args []string, r *root) (runnable, error) { return parseStoreCmd(args, r) }

func TestShapesAddSetHitRemove(t *testing.T) {
	r, out := newTestRoot(t)
	path := filepath.Join(t.TempDir(), "drawing.json")

	if err := run(t, r, shapesParser, "-file", path, "-id", "c1", "add", "circle", "10", "10", "5"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := run(t, r, shapesParser, "-file", path, "-id", "l1", "-color", "blue", "add", "line", "0", "50", "100", "50"); err != nil {
		t.Fatalf("add line: %v", err)
	}
	out.Reset()
	if err := run(t, r, shapesParser, "-file", path, "list"); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.Contains(got, "circle") || !strings.Contains(got, "l1") || !strings.Contains(got, "blue") {
		t.Fatalf("unexpected list output %q", got)
	}

	if err := run(t, r, shapesParser, "-file", path, "set", "c1", "p0=40,40", "radius=8", "color=#00ff00"); err != nil {
		t.Fatalf("set: %v", err)
	}
	shapes, _, err := document.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	c := shapes[0].(*shape.Circle)
	if c.Center != shape.Pt(40, 40) || c.Radius() != 8 || c.Color() != "#00ff00" {
		t.Fatalf("set not applied: %+v", c.Record())
	}

	out.Reset()
	if err := run(t, r, shapesParser, "-file", path, "hit", "43", "40"); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if strings.TrimSpace(out.String()) != "c1" {
		t.Fatalf("hit printed %q", out.String())
	}
	if err := run(t, r, shapesParser, "-file", path, "hit", "400", "400"); err == nil {
		t.Fatal("expected miss to report an error")
	}

	if err := run(t, r, shapesParser, "-file", path, "remove", "c1"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, r, shapesParser, "-file", path, "remove", "c1"); err == nil {
		t.Fatal("expected error removing a missing shape")
	}
	shapes, _, _ = document.ReadFile(path)
	if len(shapes) != 1 || shapes[0].ID() != "l1" {
		t.Fatalf("unexpected shapes after remove: %v", shapes)
	}
}

func TestShapesAddRejectsBadInput(t *testing.T) {
	r, _ := newTestRoot(t)
	path := filepath.Join(t.TempDir(), "drawing.json")
	for _, args := range [][]string{
		{"add", "circle", "1", "2"},
		{"add", "polyline", "1", "2", "3"},
		{"add", "square", "1", "2", "3", "4"},
		{"add", "line", "a", "b", "c", "d"},
		{"-color", "notacolor", "add", "circle", "1", "1", "1"},
	} {
		if err := run(t, r, shapesParser, append([]string{"-file", path}, args...)...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("failed adds must not write the file")
	}
}

func TestShapesRequiresFile(t *testing.T) {
	r, _ := newTestRoot(t)
	_, err := parseShapesCmd([]string{"list"}, r)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "sketchpad shapes -file") {
		t.Fatalf("help not rendered: %q", uerr.Error())
	}
}

func TestRenderSVGAndPNG(t *testing.T) {
	r, out := newTestRoot(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "drawing.json")
	if err := document.WriteFile(path, []shape.Shape{
		shape.NewLine(shape.Pt(0, 0), shape.Pt(30, 20), shape.Options{ID: "l"}),
	}); err != nil {
		t.Fatal(err)
	}

	if err := run(t, r, renderParser, "-file", path, "-format", "svg"); err != nil {
		t.Fatalf("svg: %v", err)
	}
	if !strings.Contains(out.String(), "<svg") {
		t.Fatalf("expected svg output, got %q", out.String())
	}

	pngPath := filepath.Join(dir, "out.png")
	if err := run(t, r, renderParser, "-file", path, "-output", pngPath, "-width", "40", "-height", "30"); err != nil {
		t.Fatalf("png: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("unexpected size %v", b)
	}

	if _, err := parseRenderCmd([]string{"-file", path, "-format", "gif"}, r); err == nil {
		t.Fatal("expected unknown format error")
	}
	c, err := parseRenderCmd([]string{"-file", path, "-output", "x.svg"}, r)
	if err != nil || c.format != "svg" {
		t.Fatalf("format not inferred from extension: %v %q", err, c.format)
	}
}

func TestFitSize(t *testing.T) {
	if w, h := fitSize(render.Scene{}, 0, 0, 10); w != defaultRenderWidth || h != defaultRenderHeight {
		t.Fatalf("empty scene got %dx%d", w, h)
	}
	sc := render.Scene{Shapes: []shape.Shape{shape.NewCircle(shape.Pt(50, 50), 10, shape.Options{})}}
	w, h := fitSize(sc, 0, 0, 5)
	if w < 60 || w > 70 || h < 60 || h > 70 {
		t.Fatalf("fit got %dx%d", w, h)
	}
	if w, h := fitSize(sc, 200, 0, 5); w != 200 || h < 60 {
		t.Fatalf("explicit width ignored: %dx%d", w, h)
	}
}

func TestStoreCommands(t *testing.T) {
	r, out := newTestRoot(t)
	dir := t.TempDir()
	r.config.Store = filepath.Join(dir, "drawings.db")
	path := filepath.Join(dir, "drawing.json")
	if err := document.WriteFile(path, []shape.Shape{
		shape.NewEllipse(shape.Pt(5, 5), 4, 2, shape.Options{ID: "e"}),
	}); err != nil {
		t.Fatal(err)
	}

	if err := run(t, r, storeParser, "-file", path, "put", "sketch"); err != nil {
		t.Fatalf("put: %v", err)
	}
	out.Reset()
	if err := run(t, r, storeParser, "list"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "sketch") || !strings.Contains(out.String(), "1 shapes") {
		t.Fatalf("unexpected list %q", out.String())
	}

	out.Reset()
	if err := run(t, r, storeParser, "get", "sketch"); err != nil {
		t.Fatal(err)
	}
	shapes, _, err := document.Decode(out.Bytes())
	if err != nil || len(shapes) != 1 || shapes[0].ID() != "e" {
		t.Fatalf("get returned %v %v", shapes, err)
	}

	if err := run(t, r, storeParser, "delete", "sketch"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, r, storeParser, "get", "sketch"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := parseStoreCmd([]string{"put", "x"}, r); err == nil {
		t.Fatal("put without -file must fail")
	}
}

func TestSamplesCommand(t *testing.T) {
	r, out := newTestRoot(t)
	cmd, err := parseSamplesCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "house") {
		t.Fatalf("sample list %q", out.String())
	}
	path := filepath.Join(t.TempDir(), "house.json")
	cmd, err = parseSamplesCmd([]string{"-file", path, "house"}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	if shapes, _, err := document.ReadFile(path); err != nil || len(shapes) == 0 {
		t.Fatalf("sample not written: %v", err)
	}
}

func TestConfigPrintFoldsFlags(t *testing.T) {
	r, out := newTestRoot(t)
	r.themeName = "dark"
	r.startTool = tool.KindEllipse
	r.copyAlerts = true
	cmd, err := parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"theme = dark", "tool = ellipse", "copy = true"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in %q", want, out.String())
		}
	}
	if r.config.Theme != "" {
		t.Fatal("print modified the loaded config")
	}
}

func TestRootDispatch(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	var out bytes.Buffer
	r.stdout = &out
	if err := r.Run([]string{"-tool", "circle", "version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "sketchpad version dev") {
		t.Fatalf("unexpected version output %q", out.String())
	}
	if r.startTool != tool.KindCircle {
		t.Fatalf("-tool not applied: %v", r.startTool)
	}

	r = newRoot()
	var uerr *UsageError
	if err := r.Run([]string{"bogus"}); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "Commands:") {
		t.Fatalf("root help not rendered: %q", uerr.Error())
	}
}

func TestRootRejectsUnknownTool(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	if err := r.Run([]string{"-tool", "spray", "version"}); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestConfigThemesListsBuiltins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r, out := newTestRoot(t)
	r.config.Themes["paper"] = theme.Light()
	cmd, err := parseConfigCmd([]string{"themes"}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"dark\n", "light\n", "paper\n"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in %q", want, out.String())
		}
	}
}

func TestClipArguments(t *testing.T) {
	r, _ := newTestRoot(t)
	cmd, err := parseClipCmd([]string{"paste-png"}, r)
	if err != nil {
		t.Fatalf("paste-png without -file: %v", err)
	}
	if cmd.output != "-" {
		t.Fatalf("expected stdout default, got %q", cmd.output)
	}
	var ue *UsageError
	if _, err := parseClipCmd([]string{"copy"}, r); !errors.As(err, &ue) {
		t.Fatalf("copy without -file must be a usage error, got %v", err)
	}
	if _, err := parseClipCmd([]string{"-file", "x.json", "cut"}, r); !errors.As(err, &ue) {
		t.Fatalf("unknown op must be a usage error, got %v", err)
	}
}
