package main

import (
	"flag"

	"github.com/example/sketchpad/internal/tui"
)

// tuiCmd edits the drawing in the terminal.
type tuiCmd struct {
	file string
	*root
	fs *flag.FlagSet
}

func (t *tuiCmd) FlagSet() *flag.FlagSet {
	return t.fs
}

func parseTUICmd(args []string, r *root) (*tuiCmd, error) {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	cmd := &tuiCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "drawing JSON to open and save")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (t *tuiCmd) Run() error {
	app := t.newState()
	if err := t.openDrawing(app, t.file); err != nil {
		return err
	}
	return tui.Run(app,
		tui.WithFile(t.file),
		tui.WithSaveHook(t.notifySave),
		tui.WithLoadHook(t.notifyLoad),
	)
}
