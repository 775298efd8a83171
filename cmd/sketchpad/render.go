package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/render"
)

// Canvas size used when a drawing has nothing visible to measure.
const (
	defaultRenderWidth  = 800
	defaultRenderHeight = 600
)

// renderCmd exports a drawing as PNG or SVG.
type renderCmd struct {
	file     string
	output   string
	format   string
	width    int
	height   int
	margin   int
	selected string
	*root
	fs *flag.FlagSet
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	cmd := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "drawing JSON to render")
	fs.StringVar(&cmd.output, "output", "-", "output path, - for stdout")
	fs.StringVar(&cmd.format, "format", "", "png or svg (defaults to the output extension, then png)")
	fs.IntVar(&cmd.width, "width", 0, "image width (0 fits the drawing)")
	fs.IntVar(&cmd.height, "height", 0, "image height (0 fits the drawing)")
	fs.IntVar(&cmd.margin, "margin", 10, "padding around the drawing when fitting")
	fs.StringVar(&cmd.selected, "select", "", "id of a shape to draw highlighted")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.file == "" || fs.NArg() > 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.format == "" {
		cmd.format = strings.TrimPrefix(strings.ToLower(filepath.Ext(cmd.output)), ".")
		if cmd.format != "svg" {
			cmd.format = "png"
		}
	}
	cmd.format = strings.ToLower(cmd.format)
	if cmd.format != "png" && cmd.format != "svg" {
		return nil, fmt.Errorf("unknown format %q", cmd.format)
	}
	if cmd.width < 0 || cmd.height < 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", cmd.width, cmd.height)
	}
	return cmd, nil
}

// scene loads the drawing and returns its snapshot and output size.
func (c *renderCmd) scene() (render.Scene, int, int, error) {
	shapes, dropped, err := document.ReadFile(c.file)
	if err != nil {
		return render.Scene{}, 0, 0, err
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: %s: skipped %d unknown shapes\n", c.file, dropped)
	}
	app := c.newState()
	app.LoadShapes(shapes)
	if c.selected != "" {
		app.Select(c.selected)
	}
	sc := app.Scene()
	w, h := fitSize(sc, c.width, c.height, c.margin)
	return sc, w, h, nil
}

// fitSize fills in zero dimensions from the drawing's bounds.
func fitSize(sc render.Scene, width, height, margin int) (int, int) {
	b := render.Bounds(sc.Shapes, margin)
	if width == 0 {
		width = defaultRenderWidth
		if !b.Empty() {
			width = max(b.Max.X, 1)
		}
	}
	if height == 0 {
		height = defaultRenderHeight
		if !b.Empty() {
			height = max(b.Max.Y, 1)
		}
	}
	return width, height
}

func (c *renderCmd) Run() error {
	sc, w, h, err := c.scene()
	if err != nil {
		return err
	}
	var (
		buf bytes.Buffer
		img image.Image
	)
	switch c.format {
	case "svg":
		buf.WriteString(render.SVG(sc, w, h))
	default:
		img = render.Image(sc, w, h)
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	}
	if c.output == "-" {
		_, err := io.Copy(c.out(), &buf)
		return err
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.output, err)
	}
	c.notifyExport(c.output, img)
	return nil
}
