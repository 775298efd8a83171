package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader resolves theme names to parsed themes.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a Loader with the per-user and system theme directories.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "sketchpad", "themes"),
		SystemDir: "/usr/share/sketchpad/themes",
	}
}

// sources lists the theme directories in lookup order.
func (l *Loader) sources() []fs.FS {
	out := []fs.FS{mustSub(EmbeddedThemes, "defaults")}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			out = append(out, os.DirFS(dir))
		}
	}
	return out
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Load resolves name in order: an existing file path, the embedded
// defaults, ConfigDir, then SystemDir. An empty name returns Default; an
// unknown name is an error.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return Parse(f)
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	for i, src := range l.sources() {
		lookup := filename
		if i == 0 {
			lookup = strings.ToLower(filename)
		}
		f, err := src.Open(lookup)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		th, err := Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("theme %s: %w", name, err)
		}
		return th, nil
	}
	return nil, fmt.Errorf("theme '%s' not found", name)
}

// Names lists every theme name reachable by Load, without the .theme suffix.
func (l *Loader) Names() []string {
	seen := map[string]bool{}
	for _, src := range l.sources() {
		matches, _ := fs.Glob(src, "*.theme")
		for _, m := range matches {
			seen[strings.TrimSuffix(m, ".theme")] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
