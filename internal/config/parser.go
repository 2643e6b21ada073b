package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/theme"
)

// Parse reads configuration in rc format: "key = value" lines, a [notify]
// section and any number of [theme.NAME] sections.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			if key, value, ok = strings.Cut(line, ":"); !ok {
				continue
			}
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"`)

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, section, err)
		}
	}
	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "counter_start":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid counter_start: %w", err)
		}
		cfg.CounterStart = n
	case "default_color":
		c, err := theme.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid default_color: %w", err)
		}
		cfg.DefaultColor = &c
	case "default_thickness":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid default_thickness %q", value)
		}
		cfg.DefaultThickness = n
	case "zoom":
		z, err := ParseZoom(value)
		if err != nil {
			return err
		}
		cfg.Zoom = z
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

// ParseZoom accepts "3/2", "150%" or a whole factor such as "2".
func ParseZoom(s string) (geom.Zoom, error) {
	s = strings.TrimSpace(s)
	bad := fmt.Errorf("invalid zoom %q", s)
	if p, ok := strings.CutSuffix(s, "%"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return geom.Zoom{}, bad
		}
		return geom.NewZoom(n, 100), nil
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		den = "1"
	}
	a, err1 := strconv.Atoi(strings.TrimSpace(num))
	b, err2 := strconv.Atoi(strings.TrimSpace(den))
	if err1 != nil || err2 != nil || a <= 0 || b <= 0 {
		return geom.Zoom{}, bad
	}
	return geom.NewZoom(a, b), nil
}
