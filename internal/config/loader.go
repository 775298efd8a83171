package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set from -config or at compile time
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first config file found, then applies SKETCHPAD_*
// environment overrides.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		cfg, err = Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

// SavePath is where `config save` writes when no override is set.
func (l *Loader) SavePath() (string, error) {
	if l.OverridePath != "" {
		return l.OverridePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sketchpad", "config.rc"), nil
}

// Save writes cfg to SavePath.
func (l *Loader) Save(cfg *Config) (string, error) {
	path, err := l.SavePath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(cfg.String()), 0o644)
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".sketchpadrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	home, _ := os.UserHomeDir()
	xdgPath := filepath.Join(home, ".config", "sketchpad", "config.rc")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return ""
}

func applyEnv(cfg *Config) {
	for env, dst := range map[string]*string{
		"SKETCHPAD_THEME":    &cfg.Theme,
		"SKETCHPAD_SAVE_DIR": &cfg.SaveDir,
		"SKETCHPAD_STORE":    &cfg.Store,
		"SKETCHPAD_LISTEN":   &cfg.Listen,
		"SKETCHPAD_TOOL":     &cfg.Tool,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}
