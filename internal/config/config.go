// Package config reads the annotator rc file.
package config

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/theme"
)

// ThemeEnv names the environment variable that selects a theme.
const ThemeEnv = "ANNOTATOR_THEME"

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration. Zero values mean "not set".
type Config struct {
	Theme            string
	SaveDir          string
	CounterStart     int
	DefaultColor     *color.RGBA
	DefaultThickness int
	Zoom             geom.Zoom
	Notify           Notify
	Themes           map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Themes: make(map[string]*theme.Theme),
	}
}

// ThemeName picks the theme: flag, then $ANNOTATOR_THEME, then the rc file.
func (c *Config) ThemeName(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(ThemeEnv); env != "" {
		return env
	}
	return c.Theme
}

// LoadTheme resolves name against the themes defined in the rc file first.
func (c *Config) LoadTheme(name string) (*theme.Theme, error) {
	if t, ok := c.Themes[name]; ok {
		return t, nil
	}
	return theme.NewLoader().Load(name)
}

// Style applies the configured element defaults to d.
func (c *Config) Style(d shape.Defaults) shape.Defaults {
	if c.DefaultColor != nil {
		d.LineColor = *c.DefaultColor
	}
	if c.DefaultThickness > 0 {
		d.LineThickness = c.DefaultThickness
	}
	return d
}

// String returns the configuration in rc format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.CounterStart != 0 {
		fmt.Fprintf(&sb, "counter_start = %d\n", c.CounterStart)
	}
	if c.DefaultColor != nil {
		fmt.Fprintf(&sb, "default_color = %s\n", theme.Hex(*c.DefaultColor))
	}
	if c.DefaultThickness != 0 {
		fmt.Fprintf(&sb, "default_thickness = %d\n", c.DefaultThickness)
	}
	if c.Zoom.Num != 0 {
		fmt.Fprintf(&sb, "zoom = %s\n", c.Zoom)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = c.Themes[name].Write(&sb)
		sb.WriteString("\n")
	}
	return sb.String()
}
