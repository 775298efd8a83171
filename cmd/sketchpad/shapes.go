package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/editor"
	"github.com/example/sketchpad/internal/registry"
	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/theme"
)

// shapesCmd lists and edits the shapes of a drawing file.
type shapesCmd struct {
	file   string
	color  string
	id     string
	hidden bool
	op     string
	args   []string
	*root
	fs *flag.FlagSet
}

func (s *shapesCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseShapesCmd(args []string, r *root) (*shapesCmd, error) {
	fs := flag.NewFlagSet("shapes", flag.ExitOnError)
	cmd := &shapesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "drawing JSON to read and update")
	fs.StringVar(&cmd.color, "color", shape.FinalColor, "stroke color for add (hex or CSS name)")
	fs.StringVar(&cmd.id, "id", "", "id for add (generated when empty)")
	fs.BoolVar(&cmd.hidden, "hidden", false, "add the shape hidden")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.file == "" {
		return nil, &UsageError{of: cmd}
	}
	cmd.op = "list"
	if fs.NArg() > 0 {
		cmd.op = strings.ToLower(fs.Arg(0))
		cmd.args = fs.Args()[1:]
	}
	return cmd, nil
}

func (s *shapesCmd) Run() error {
	app := s.newState()
	if err := s.openDrawing(app, s.file); err != nil {
		return err
	}
	var (
		changed bool
		err     error
	)
	switch s.op {
	case "list":
		s.list(app)
	case "add":
		changed, err = s.add(app)
	case "remove", "rm":
		changed, err = s.withID(func(id string) bool { return app.Remove(id) })
	case "toggle":
		changed, err = s.withID(func(id string) bool {
			if app.Get(id) == nil {
				return false
			}
			app.ToggleVisible(id)
			return true
		})
	case "set":
		changed, err = s.set(app)
	case "hit":
		err = s.hit(app)
	default:
		return &UsageError{of: s}
	}
	if err != nil || !changed {
		return err
	}
	if err := document.WriteFile(s.file, app.Shapes()); err != nil {
		return err
	}
	s.notifySave(s.file)
	return nil
}

func (s *shapesCmd) list(app *appstate.AppState) {
	rows := editor.ShapeList{App: app}.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(s.out(), "no shapes")
		return
	}
	for i, row := range rows {
		vis := "shown"
		if !row.Visible {
			vis = "hidden"
		}
		color := ""
		if sh := app.Get(row.ID); sh != nil {
			color = sh.Color()
		}
		fmt.Fprintf(s.out(), "%2d: %-9s %-36s %-6s %s\n", i, row.Type, row.ID, vis, color)
	}
}

func (s *shapesCmd) withID(fn func(id string) bool) (bool, error) {
	if len(s.args) != 1 {
		return false, &UsageError{of: s}
	}
	if !fn(s.args[0]) {
		return false, fmt.Errorf("no shape with id %q", s.args[0])
	}
	return true, nil
}

func (s *shapesCmd) add(app *appstate.AppState) (bool, error) {
	if len(s.args) < 1 {
		return false, &UsageError{of: s}
	}
	if _, err := theme.ParseColor(s.color); err != nil {
		return false, fmt.Errorf("invalid color %q: %w", s.color, err)
	}
	nums, err := parseFloats(s.args[1:])
	if err != nil {
		return false, err
	}
	opts := shape.Options{ID: s.id, Color: s.color, Hidden: s.hidden}
	sh, err := buildShape(shape.Type(strings.ToLower(s.args[0])), nums, opts)
	if err != nil {
		return false, err
	}
	app.Add(sh)
	fmt.Fprintln(s.out(), sh.ID())
	return true, nil
}

// buildShape creates a shape of type t from its coordinate list.
func buildShape(t shape.Type, n []float64, o shape.Options) (shape.Shape, error) {
	want := map[shape.Type]int{shape.TypeLine: 4, shape.TypeCircle: 3, shape.TypeEllipse: 4}
	switch t {
	case shape.TypeLine, shape.TypeCircle, shape.TypeEllipse:
		if len(n) != want[t] {
			return nil, fmt.Errorf("%s takes %d numbers, got %d", t, want[t], len(n))
		}
	case shape.TypePolyline:
		if len(n) < 4 || len(n)%2 != 0 {
			return nil, fmt.Errorf("polyline takes at least two x y pairs")
		}
	default:
		return nil, fmt.Errorf("unknown shape type %q", t)
	}
	switch t {
	case shape.TypeLine:
		return shape.NewLine(shape.Pt(n[0], n[1]), shape.Pt(n[2], n[3]), o), nil
	case shape.TypeCircle:
		return shape.NewCircle(shape.Pt(n[0], n[1]), n[2], o), nil
	case shape.TypeEllipse:
		return shape.NewEllipse(shape.Pt(n[0], n[1]), n[2], n[3], o), nil
	}
	pts := make([]shape.Point, 0, len(n)/2)
	for i := 0; i < len(n); i += 2 {
		pts = append(pts, shape.Pt(n[i], n[i+1]))
	}
	return shape.NewPolyline(pts, o), nil
}

// set applies key=value edits through a draft: pN=x,y moves an editable
// point, color=... recolors, and any other key names an editable number.
func (s *shapesCmd) set(app *appstate.AppState) (bool, error) {
	if len(s.args) < 2 {
		return false, &UsageError{of: s}
	}
	id := s.args[0]
	target := app.Get(id)
	if target == nil {
		return false, fmt.Errorf("no shape with id %q", id)
	}
	d := editor.NewDraft(target)
	for _, kv := range s.args[1:] {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return false, fmt.Errorf("expected key=value, got %q", kv)
		}
		switch {
		case key == "color":
			if _, err := theme.ParseColor(val); err != nil {
				return false, fmt.Errorf("invalid color %q: %w", val, err)
			}
			d.SetColor(val)
		case strings.HasPrefix(key, "p"):
			idx, err := strconv.Atoi(key[1:])
			if err != nil {
				return false, fmt.Errorf("bad point key %q", key)
			}
			xy, err := parseFloats(strings.Split(val, ","))
			if err != nil || len(xy) != 2 {
				return false, fmt.Errorf("point %s wants x,y, got %q", key, val)
			}
			if idx < 0 || idx >= len(d.Points()) {
				return false, fmt.Errorf("%s has no point %d", id, idx)
			}
			d.SetPoint(idx, xy[0], xy[1])
		default:
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return false, fmt.Errorf("bad number for %s: %q", key, val)
			}
			d.SetNumber(key, v)
		}
	}
	if !d.Dirty() {
		return false, nil
	}
	return app.Edit(id, d.Apply), nil
}

func (s *shapesCmd) hit(app *appstate.AppState) error {
	if len(s.args) != 2 {
		return &UsageError{of: s}
	}
	xy, err := parseFloats(s.args)
	if err != nil {
		return err
	}
	reg := registry.New()
	reg.Replace(app.Shapes())
	if sh := reg.HitTest(xy[0], xy[1]); sh != nil {
		fmt.Fprintln(s.out(), sh.ID())
		return nil
	}
	return fmt.Errorf("no shape at %g,%g", xy[0], xy[1])
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out = append(out, v)
	}
	return out, nil
}
