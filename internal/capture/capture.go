// Package capture grabs the screen to use as a background image.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
)

// ErrUnsupported is returned where no capture backend exists.
var ErrUnsupported = errors.New("capture: not supported on this platform")

// Options tune a screenshot request.
type Options struct {
	// Interactive lets the user pick the area in the desktop's own dialog.
	Interactive   bool
	IncludeCursor bool
}

// Screenshot captures the desktop. It asks the desktop portal first and
// falls back to reading the X11 root window.
func Screenshot(ctx context.Context, opts Options) (*image.RGBA, error) {
	img, perr := portalScreenshot(ctx, opts)
	if perr == nil {
		return img, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	log.Printf("portal screenshot: %v", perr)
	img, xerr := rootScreenshot()
	if xerr != nil {
		return nil, fmt.Errorf("screenshot: portal: %v; x11: %w", perr, xerr)
	}
	return img, nil
}

// Region captures the desktop and keeps r, given in screen coordinates.
func Region(ctx context.Context, r image.Rectangle) (*image.RGBA, error) {
	if r.Empty() {
		return nil, fmt.Errorf("region is empty")
	}
	shot, err := Screenshot(ctx, Options{})
	if err != nil {
		return nil, err
	}
	return cropToRect(shot, r)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
