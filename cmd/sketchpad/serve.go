package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/document"
	"github.com/example/sketchpad/internal/server"
	"github.com/example/sketchpad/internal/shape"
	"github.com/example/sketchpad/internal/store"
)

// serveCmd exposes a drawing session over HTTP.
type serveCmd struct {
	file    string
	listen  string
	store   string
	originX float64
	originY float64
	save    bool
	*root
	fs *flag.FlagSet
}

func (s *serveCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseServeCmd(args []string, r *root) (*serveCmd, error) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cmd := &serveCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "drawing JSON to open at startup")
	fs.StringVar(&cmd.listen, "listen", r.config.Listen, "address to listen on")
	fs.StringVar(&cmd.store, "store", r.config.Store, "SQLite database for named drawings (empty disables /drawings)")
	fs.Float64Var(&cmd.originX, "origin-x", 0, "x offset subtracted from pointer positions")
	fs.Float64Var(&cmd.originY, "origin-y", 0, "y offset subtracted from pointer positions")
	fs.BoolVar(&cmd.save, "save-on-exit", false, "write the drawing back to -file on shutdown")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.save && cmd.file == "" {
		return nil, fmt.Errorf("-save-on-exit requires -file")
	}
	return cmd, nil
}

// build opens the drawing and store and assembles the server. The returned
// cleanup closes the store.
func (s *serveCmd) build(ctx context.Context) (*server.Server, *appstate.AppState, func(), error) {
	app := s.newState()
	if err := s.openDrawing(app, s.file); err != nil {
		return nil, nil, nil, err
	}
	opts := []server.Option{server.WithSurface(appstate.Surface{Origin: shape.Pt(s.originX, s.originY)})}
	cleanup := func() {}
	if s.store != "" {
		st, err := store.Open(ctx, s.store)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open store %s: %w", s.store, err)
		}
		opts = append(opts, server.WithStore(st))
		cleanup = func() {
			if err := st.Close(); err != nil {
				log.Printf("[STORE] close: %v", err)
			}
		}
	}
	return server.New(app, opts...), app, cleanup, nil
}

func (s *serveCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, app, cleanup, err := s.build(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(s.listen) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Printf("Shutting down")
	if err := srv.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if s.save {
		if err := document.WriteFile(s.file, app.Shapes()); err != nil {
			return err
		}
		s.notifySave(s.file)
	}
	return nil
}
