package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/sketchpad/internal/window"
)

// windowCmd opens the drawing in a desktop window.
type windowCmd struct {
	file    string
	backend string
	width   int
	height  int
	*root
	fs *flag.FlagSet
}

func (w *windowCmd) FlagSet() *flag.FlagSet {
	return w.fs
}

func parseWindowCmd(args []string, r *root) (*windowCmd, error) {
	fs := flag.NewFlagSet("window", flag.ExitOnError)
	cmd := &windowCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "drawing JSON to open and save")
	fs.StringVar(&cmd.backend, "backend", "shiny", "window backend (shiny or ebiten)")
	fs.IntVar(&cmd.width, "width", window.DefaultWidth, "initial window width")
	fs.IntVar(&cmd.height, "height", window.DefaultHeight, "initial window height")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: cmd}
	}
	cmd.backend = strings.ToLower(strings.TrimSpace(cmd.backend))
	switch cmd.backend {
	case "shiny", "ebiten":
	default:
		return nil, fmt.Errorf("unknown backend %q", cmd.backend)
	}
	if cmd.width <= 0 || cmd.height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cmd.width, cmd.height)
	}
	return cmd, nil
}

func (w *windowCmd) controller() (*window.Controller, error) {
	app := w.newState()
	if err := w.openDrawing(app, w.file); err != nil {
		return nil, err
	}
	c := window.NewController(app,
		window.WithFile(w.file),
		window.WithSaveHook(w.notifySave),
		window.WithLoadHook(w.notifyLoad),
	)
	c.Resize(w.width, w.height)
	return c, nil
}

func (w *windowCmd) Run() error {
	c, err := w.controller()
	if err != nil {
		return err
	}
	defer c.Close()
	if w.backend == "ebiten" {
		return window.RunEbiten(c)
	}
	return window.RunShiny(c)
}
