package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/sketchpad/internal/clipboard"
	"github.com/example/sketchpad/internal/document"
)

// clipCmd moves drawings between a file and the system clipboard.
type clipCmd struct {
	file    string
	replace bool
	width   int
	height  int
	output  string
	op      string
	*root
	fs *flag.FlagSet
}

func (c *clipCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseClipCmd(args []string, r *root) (*clipCmd, error) {
	fs := flag.NewFlagSet("clip", flag.ExitOnError)
	cmd := &clipCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "drawing JSON to copy from or paste into")
	fs.BoolVar(&cmd.replace, "replace", false, "paste replaces the drawing instead of adding to it")
	fs.IntVar(&cmd.width, "width", 0, "png width (0 fits the drawing)")
	fs.IntVar(&cmd.height, "height", 0, "png height (0 fits the drawing)")
	fs.StringVar(&cmd.output, "output", "-", "where paste-png writes the image (- for stdout)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: cmd}
	}
	cmd.op = strings.ToLower(fs.Arg(0))
	switch cmd.op {
	case "copy", "paste", "png":
		if cmd.file == "" {
			return nil, &UsageError{of: cmd}
		}
	case "paste-png":
	default:
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *clipCmd) Run() error {
	if c.op == "paste-png" {
		return c.pastePNG()
	}
	app := c.newState()
	if err := c.openDrawing(app, c.file); err != nil {
		return err
	}
	switch c.op {
	case "copy":
		shapes := app.Shapes()
		if err := clipboard.CopyDrawing(shapes); err != nil {
			return fmt.Errorf("copy drawing: %w", err)
		}
		c.notifyCopy(fmt.Sprintf("%d shapes", len(shapes)))
		return nil
	case "png":
		sc := app.Scene()
		w, h := fitSize(sc, c.width, c.height, 10)
		if err := clipboard.CopyImage(sc, w, h); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
		c.notifyCopy(fmt.Sprintf("%dx%d image", w, h))
		return nil
	}
	shapes, dropped, err := clipboard.PasteDrawing()
	if err != nil {
		return fmt.Errorf("paste drawing: %w", err)
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: clipboard: skipped %d unknown shapes\n", dropped)
	}
	if c.replace {
		app.LoadShapes(shapes)
	} else {
		clipboard.Merge(app, shapes)
	}
	if err := document.WriteFile(c.file, app.Shapes()); err != nil {
		return err
	}
	c.notifySave(c.file)
	return nil
}

func (c *clipCmd) pastePNG() error {
	if c.output == "-" {
		if _, err := clipboard.PasteImage(c.out()); err != nil {
			return fmt.Errorf("paste image: %w", err)
		}
		return nil
	}
	f, err := os.Create(c.output)
	if err != nil {
		return err
	}
	img, err := clipboard.PasteImage(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(c.output)
		return fmt.Errorf("paste image: %w", err)
	}
	c.notifyExport(c.output, img)
	return nil
}
