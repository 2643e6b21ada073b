package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/example/annotator/internal/render"
)

// renderCmd draws a document over a background without opening a window.
type renderCmd struct {
	*root
	fs         *flag.FlagSet
	background string
	doc        string
	output     string
	effects    string
}

func (c *renderCmd) FlagSet() *flag.FlagSet { return c.fs }
func (c *renderCmd) Program() string        { return c.sub("render") }

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.StringVar(&c.background, "background", "", "background image")
	fs.StringVar(&c.doc, "doc", "", "element document")
	fs.StringVar(&c.output, "output", "annotated.png", "output PNG")
	fs.StringVar(&c.effects, "effect", "", "comma separated effects applied in order ("+strings.Join(render.Names(), ", ")+")")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.background == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *renderCmd) Run() error {
	var effects []render.Effect
	for _, name := range strings.Split(c.effects, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		e, err := render.Lookup(name)
		if err != nil {
			return err
		}
		effects = append(effects, e)
	}

	bg, err := loadImage(c.background)
	if err != nil {
		return err
	}
	surf, err := newSurface(c.root, bg, c.doc)
	if err != nil {
		return err
	}
	defer surf.Close()
	for _, e := range effects {
		if err := surf.ApplyEffect(e); err != nil {
			return err
		}
	}
	if err := imgio.Save(c.output, surf.Compositor().Export(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("write %s: %w", c.output, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", c.output)
	c.notifier.SaveImage(c.output, surf.Size())
	return nil
}
