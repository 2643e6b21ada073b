// Package render holds the image effects applied to a surface background.
package render

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	"golang.org/x/image/math/f64"
)

// Result is the output of an Effect. Matrix maps positions in the input
// image to positions in Image so annotations can follow the pixels.
type Result struct {
	Image  *image.RGBA
	Matrix f64.Aff3
}

// Effect transforms a whole image.
type Effect interface {
	Name() string
	Apply(img *image.RGBA) (Result, error)
}

// ErrNoImage is returned when an effect is given a nil or empty image.
var ErrNoImage = errors.New("render: no image")

// CropError reports a crop region that does not fit the image.
type CropError struct {
	Rect image.Rectangle
	Size image.Point
}

func (e *CropError) Error() string {
	return fmt.Sprintf("crop %v outside %dx%d image", e.Rect, e.Size.X, e.Size.Y)
}

func checkImage(img *image.RGBA) error {
	if img == nil || img.Bounds().Empty() {
		return ErrNoImage
	}
	return nil
}

var named = map[string]func() Effect{
	"shadow":    func() Effect { return DefaultShadow() },
	"grayscale": func() Effect { return Grayscale{} },
	"invert":    func() Effect { return Invert{} },
	"blur":      func() Effect { return Blur{Radius: 3} },
	"rotate":    func() Effect { return Rotate90{} },
	"fliph":     func() Effect { return FlipH{} },
	"flipv":     func() Effect { return FlipV{} },
}

// Lookup returns the effect registered under name with default settings.
func Lookup(name string) (Effect, error) {
	if f, ok := named[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown effect %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the effects known to Lookup.
func Names() []string {
	out := make([]string, 0, len(named))
	for n := range named {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
