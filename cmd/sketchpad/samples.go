package main

import (
	"flag"
	"fmt"

	"github.com/example/sketchpad/assets"
	"github.com/example/sketchpad/internal/document"
)

// samplesCmd lists the bundled drawings or writes one out.
type samplesCmd struct {
	file string
	*root
	fs *flag.FlagSet
}

func (s *samplesCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSamplesCmd(args []string, r *root) (*samplesCmd, error) {
	fs := flag.NewFlagSet("samples", flag.ExitOnError)
	cmd := &samplesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "write the sample here instead of stdout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (s *samplesCmd) Run() error {
	if s.fs.NArg() == 0 {
		for _, name := range assets.SampleNames() {
			fmt.Fprintln(s.out(), name)
		}
		return nil
	}
	data, err := assets.Sample(s.fs.Arg(0))
	if err != nil {
		return err
	}
	if s.file == "" {
		_, err = s.out().Write(data)
		return err
	}
	shapes, _, err := document.Decode(data)
	if err != nil {
		return err
	}
	if err := document.WriteFile(s.file, shapes); err != nil {
		return err
	}
	s.notifySave(s.file)
	return nil
}
