package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"

	"github.com/example/annotator/internal/capture"
	"github.com/example/annotator/internal/editor"
	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/surface"
)

var (
	captureScreenshotFn = capture.Screenshot
	captureRegionFn     = capture.Region
	runEditorFn         = func(ed *editor.Editor) { ed.Run() }
)

// annotateCmd opens the editor on a screenshot or an image file.
type annotateCmd struct {
	*root
	fs       *flag.FlagSet
	source   string
	file     string
	doc      string
	output   string
	region   string
	cursor   bool
	interact bool
	mode     string
}

func (a *annotateCmd) FlagSet() *flag.FlagSet { return a.fs }
func (a *annotateCmd) Program() string        { return a.sub("annotate") }

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.StringVar(&a.file, "file", "", "image file to annotate (open-file)")
	fs.StringVar(&a.doc, "doc", "", "element document to load over the image")
	fs.StringVar(&a.output, "output", "", "PNG written on save (default: timestamped in save_dir)")
	fs.StringVar(&a.region, "rect", "", "region x,y,w,h (capture-region)")
	fs.BoolVar(&a.cursor, "cursor", false, "include the pointer in captures")
	fs.BoolVar(&a.interact, "interactive", false, "let the desktop ask which area to capture")
	fs.StringVar(&a.mode, "tool", "none", "initial drawing tool")
	fs.Usage = usageFunc(a)
	if len(args) < 1 {
		return nil, &UsageError{of: a}
	}
	a.source = args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *annotateCmd) background(ctx context.Context) (*image.RGBA, error) {
	switch a.source {
	case "capture-screen":
		img, err := captureScreenshotFn(ctx, capture.Options{Interactive: a.interact, IncludeCursor: a.cursor})
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		return img, nil
	case "capture-region":
		rect, err := parseRect(a.region)
		if err != nil {
			return nil, err
		}
		img, err := captureRegionFn(ctx, rect)
		if err != nil {
			return nil, fmt.Errorf("failed to capture region: %w", err)
		}
		return img, nil
	case "open-file":
		if a.file == "" {
			return nil, &UsageError{of: a}
		}
		return loadImage(a.file)
	default:
		return nil, &UsageError{of: a}
	}
}

func (a *annotateCmd) Run() error {
	mode, err := shape.ParseMode(a.mode)
	if err != nil {
		return err
	}
	bg, err := a.background(context.Background())
	if err != nil {
		return err
	}
	a.notifier.Capture(a.source, bg)

	surf, err := newSurface(a.root, bg, a.doc)
	if err != nil {
		return err
	}
	surf.SetDrawingMode(mode)
	ed := editor.New(surf, editor.Options{
		Title:    "Annotator",
		Theme:    a.activeTheme,
		Notifier: a.notifier,
		Output:   a.output,
		SaveDir:  a.config.SaveDir,
	})
	runEditorFn(ed)
	return nil
}

// newSurface builds a surface styled by the config and loads doc into it
// when given.
func newSurface(r *root, bg image.Image, doc string) (*surface.Surface, error) {
	opts := []surface.Option{surface.WithStyle(r.config.Style(shape.DefaultStyle()))}
	if r.config.CounterStart != 0 {
		opts = append(opts, surface.WithCounterStart(r.config.CounterStart))
	}
	if r.config.Zoom.Num != 0 {
		opts = append(opts, surface.WithZoom(r.config.Zoom))
	}
	surf := surface.New(bg, opts...)
	if doc == "" {
		return surf, nil
	}
	f, err := os.Open(doc)
	if err != nil {
		surf.Close()
		return nil, err
	}
	defer f.Close()
	if err := surf.Load(f); err != nil {
		surf.Close()
		return nil, fmt.Errorf("%s: %w", doc, err)
	}
	return surf, nil
}

func loadImage(path string) (*image.RGBA, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return clone.AsRGBA(img), nil
}

// parseRect reads "x,y,w,h".
func parseRect(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid rect %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid rect %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid rect %q: empty size", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}
