package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/theme"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		fmt.Fprint(c.out(), c.effective().String())
		return nil
	case "save":
		path, err := config.NewLoader(version, c.configPath).Save(c.effective())
		if err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
		return nil
	case "themes":
		names := theme.NewLoader().Names()
		for name := range c.config.Themes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range slices.Compact(names) {
			fmt.Fprintln(c.out(), name)
		}
		return nil
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

// effective returns the loaded configuration with root flags folded in.
func (c *configCmd) effective() *config.Config {
	cfg := *c.config
	if c.themeName != "" {
		cfg.Theme = c.themeName
	}
	cfg.Tool = c.startTool.String()
	cfg.Notify = config.Notify{
		Save:   c.saveAlerts,
		Load:   c.loadAlerts,
		Copy:   c.copyAlerts,
		Export: c.exportAlerts,
	}
	return &cfg
}
