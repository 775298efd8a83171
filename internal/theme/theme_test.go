package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: Custom\nDark: true\nCanvas: #102030\n# comment\nUnknown: #ffffff\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if th.Name != "Custom" || !th.Dark {
		t.Fatalf("unexpected header %q dark=%v", th.Name, th.Dark)
	}
	if th.Canvas != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Fatalf("canvas %v", th.Canvas)
	}
	if th.Foreground != Light().Foreground {
		t.Fatalf("expected default foreground, got %v", th.Foreground)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Canvas: #12")); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseColorForms(t *testing.T) {
	cases := map[string]color.RGBA{
		"#000":      {0, 0, 0, 255},
		"#f80":      {0xff, 0x88, 0x00, 255},
		"#ff5555":   {0xff, 0x55, 0x55, 255},
		"#ff000080": {0xff, 0, 0, 0x80},
		"Red":       {0xff, 0, 0, 255},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Errorf("%s: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%s: got %v want %v", in, got, want)
		}
	}
	if _, err := ParseColor("nocolor"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestHex(t *testing.T) {
	if h := Hex(color.RGBA{0xff, 0x55, 0x55, 255}); h != "#ff5555" {
		t.Fatalf("got %s", h)
	}
	if h := Hex(color.RGBA{1, 2, 3, 4}); h != "#01020304" {
		t.Fatalf("got %s", h)
	}
}

func TestLoaderEmbeddedAndFile(t *testing.T) {
	l := &Loader{ConfigDir: t.TempDir(), SystemDir: t.TempDir()}
	th, err := l.Load("Dark")
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if !th.Dark || th.Canvas != Dark().Canvas {
		t.Fatalf("embedded dark theme does not match built-in: %+v", th)
	}
	path := filepath.Join(l.ConfigDir, "mine.theme")
	if err := os.WriteFile(path, []byte("Name: Mine\nSelection: #00ff00\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err = l.Load("mine")
	if err != nil {
		t.Fatalf("load config dir: %v", err)
	}
	if th.Name != "Mine" || th.Selection != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("unexpected theme %+v", th)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for missing theme")
	}
	names := l.Names()
	if len(names) != 3 || names[0] != "dark" || names[1] != "light" || names[2] != "mine" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestLoaderBadFileIsAnError(t *testing.T) {
	l := &Loader{ConfigDir: t.TempDir()}
	if err := os.WriteFile(filepath.Join(l.ConfigDir, "broken.theme"), []byte("Canvas: nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load("broken"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSetAndOpposite(t *testing.T) {
	th := Light()
	if err := th.Set("Canvas", "#000000"); err != nil {
		t.Fatal(err)
	}
	if th.Canvas != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("canvas %v", th.Canvas)
	}
	if err := th.Set("Name", "#000000"); err == nil {
		t.Fatal("expected error for non color key")
	}
	if !Opposite(th).Dark || Opposite(Dark()).Dark {
		t.Fatal("opposite theme mismatch")
	}
}
