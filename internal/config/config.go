// Package config reads and writes the sketchpad RC file.
package config

import (
	"fmt"
	"image/color"
	"reflect"
	"sort"
	"strings"

	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Load   bool
	Copy   bool
	Export bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Store   string // SQLite database for named drawings
	Listen  string // Address for the HTTP surface
	Tool    string // Tool active at startup
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// Default values used when neither flags, environment nor the RC file say
// otherwise.
const (
	DefaultListen = "127.0.0.1:7420"
	DefaultStore  = "sketchpad.db"
)

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Empty falls back to env then the built-in default
		Listen: DefaultListen,
		Store:  DefaultStore,
		Tool:   tool.KindSelect.String(),
		Themes: make(map[string]*theme.Theme),
	}
}

// StartTool resolves the configured startup tool, falling back to Select.
func (c *Config) StartTool() tool.Kind {
	k, err := tool.ParseKind(c.Tool)
	if err != nil {
		return tool.KindSelect
	}
	return k
}

// ThemeByName returns a theme defined in the config, or nil.
func (c *Config) ThemeByName(name string) *theme.Theme {
	if t, ok := c.Themes[name]; ok {
		return t
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Store != "" {
		fmt.Fprintf(&sb, "store = %s\n", c.Store)
	}
	if c.Listen != "" {
		fmt.Fprintf(&sb, "listen = %s\n", c.Listen)
	}
	if c.Tool != "" {
		fmt.Fprintf(&sb, "tool = %s\n", c.Tool)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "load = %v\n", c.Notify.Load)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Dark: %v\n", t.Dark)
		val := reflect.ValueOf(t).Elem()
		typ := val.Type()
		for i := 0; i < typ.NumField(); i++ {
			col, ok := val.Field(i).Interface().(color.RGBA)
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "%s: %s\n", typ.Field(i).Name, theme.Hex(col))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
