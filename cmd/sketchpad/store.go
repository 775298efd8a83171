package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/store"
)

// storeCmd manages named drawings in the SQLite store.
type storeCmd struct {
	db   string
	file string
	op   string
	args []string
	*root
	fs *flag.FlagSet
}

func (s *storeCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseStoreCmd(args []string, r *root) (*storeCmd, error) {
	fs := flag.NewFlagSet("store", flag.ExitOnError)
	cmd := &storeCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.db, "store", r.config.Store, "SQLite database holding named drawings")
	fs.StringVar(&cmd.file, "file", "", "drawing JSON to put from or get into (get prints to stdout when empty)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 || cmd.db == "" {
		return nil, &UsageError{of: cmd}
	}
	cmd.op = strings.ToLower(fs.Arg(0))
	cmd.args = fs.Args()[1:]
	switch cmd.op {
	case "list":
		if len(cmd.args) != 0 {
			return nil, &UsageError{of: cmd}
		}
	case "put", "get", "delete":
		if len(cmd.args) != 1 {
			return nil, &UsageError{of: cmd}
		}
		if cmd.op == "put" && cmd.file == "" {
			return nil, fmt.Errorf("store put requires -file")
		}
	default:
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (s *storeCmd) Run() error {
	ctx := context.Background()
	st, err := store.Open(ctx, s.db)
	if err != nil {
		return fmt.Errorf("open store %s: %w", s.db, err)
	}
	defer st.Close()

	switch s.op {
	case "list":
		entries, err := st.List(ctx)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(s.out(), "no drawings stored")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(s.out(), "%-24s %4d shapes  %s\n", e.Name, e.Shapes, e.UpdatedAt)
		}
		return nil
	case "put":
		shapes, dropped, err := document.ReadFile(s.file)
		if err != nil {
			return err
		}
		if dropped > 0 {
			fmt.Fprintf(os.Stderr, "warning: %s: skipped %d unknown shapes\n", s.file, dropped)
		}
		if err := st.Put(ctx, s.args[0], shapes); err != nil {
			return err
		}
		s.notifySave(s.args[0])
		return nil
	case "get":
		shapes, _, err := st.Get(ctx, s.args[0])
		if err != nil {
			return err
		}
		if s.file == "" {
			data, err := document.Encode(shapes)
			if err != nil {
				return err
			}
			_, err = s.out().Write(data)
			return err
		}
		if err := document.WriteFile(s.file, shapes); err != nil {
			return err
		}
		s.notifySave(s.file)
		return nil
	default:
		return st.Delete(ctx, s.args[0])
	}
}
