package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader finds and reads the rc file.
type Loader struct {
	Version      string // "dev" also searches the working directory
	OverridePath string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first rc file found, or returns defaults when there is none.
func (l *Loader) Load() (*Config, error) {
	path := l.ConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ConfigPath returns the rc file to read, or "" when none exists.
func (l *Loader) ConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		local := filepath.Join(wd, ".annotatorrc")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	for _, p := range UserPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// UserPaths lists the per-user rc locations in search order.
func UserPaths() []string {
	home, _ := os.UserHomeDir()
	dir := filepath.Join(home, ".config", "annotator")
	return []string{
		filepath.Join(dir, "config.rc"),
		filepath.Join(dir, "annotator.rc"),
	}
}
