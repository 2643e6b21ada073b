package surface

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/annotator/internal/shape"
)

const (
	checkerSize = 8
	// paintMargin widens a repaint so the scaler has neighbours to sample.
	paintMargin = 2
)

// Compositor paints the surface into view space and tracks which view
// regions are stale.
type Compositor struct {
	s      *Surface
	colors Colors
	buf    *image.RGBA
	damage image.Rectangle
	full   bool
	// usedBuffer records which path the last Paint took.
	usedBuffer bool
}

// Invalidate marks the image rectangle r as needing repaint.
func (c *Compositor) Invalidate(r image.Rectangle) {
	if r.Empty() {
		return
	}
	c.damage = c.damage.Union(c.s.ViewRect(r))
}

// InvalidateAll marks the whole view stale.
func (c *Compositor) InvalidateAll() {
	c.full = true
	c.damage = c.damage.Union(c.s.ViewRect(c.s.bg.Bounds()))
}

// Damage returns the stale view region and clears it. full reports that the
// view moved or was rescaled and should be repainted entirely.
func (c *Compositor) Damage() (r image.Rectangle, full bool) {
	r, full = c.damage, c.full
	c.damage = image.Rectangle{}
	c.full = false
	return r, full
}

func (c *Compositor) Colors() Colors     { return c.colors }
func (c *Compositor) SetColors(k Colors) { c.colors = k; c.InvalidateAll() }

// UsedBuffer reports whether the last Paint went through the scaling buffer.
func (c *Compositor) UsedBuffer() bool { return c.usedBuffer }

// Paint renders the view rectangle viewRect into dst, whose coordinates are
// view coordinates. Selection outlines and adorner handles are drawn on top
// at their on-screen size.
func (c *Compositor) Paint(dst *image.RGBA, viewRect image.Rectangle) {
	s := c.s
	viewRect = viewRect.Intersect(dst.Bounds())
	if viewRect.Empty() || s.closed {
		return
	}
	z := s.zoom
	imgRect := z.ToImageRect(viewRect.Sub(s.origin)).Inset(-paintMargin)
	if !z.IsUnity() {
		// Snap to multiples of the denominator so the rectangle maps onto
		// whole view pixels.
		imgRect.Min.X = floorTo(imgRect.Min.X, z.Den)
		imgRect.Min.Y = floorTo(imgRect.Min.Y, z.Den)
		imgRect.Max.X = ceilTo(imgRect.Max.X, z.Den)
		imgRect.Max.Y = ceilTo(imgRect.Max.Y, z.Den)
	}
	imgRect = imgRect.Intersect(s.bg.Bounds())
	if imgRect.Empty() {
		c.drawAdorners(dst, viewRect)
		return
	}
	target := s.ViewRect(imgRect).Intersect(viewRect)
	c.fillChecker(dst, target)

	if z.IsUnity() && !s.list.HasIntersectingFilters(imgRect) {
		c.usedBuffer = false
		// Shift the header so image coordinates address dst directly.
		shifted := *dst
		shifted.Rect = dst.Rect.Sub(s.origin)
		clip := target.Sub(s.origin)
		draw.Draw(&shifted, clip, s.bg, clip.Min, draw.Over)
		s.list.Draw(&shifted, s.bg, shape.RenderEdit, clip)
	} else {
		c.usedBuffer = true
		buf := c.buffer()
		draw.Draw(buf, imgRect, s.bg, imgRect.Min, draw.Src)
		s.list.Draw(buf, s.bg, shape.RenderEdit, imgRect)
		out, ok := dst.SubImage(viewRect).(*image.RGBA)
		if ok {
			var scaler xdraw.Scaler = xdraw.BiLinear
			if z.Magnifies() {
				scaler = xdraw.NearestNeighbor
			}
			scaler.Scale(out, s.ViewRect(imgRect), buf, imgRect, draw.Over, nil)
		}
	}
	c.drawAdorners(dst, viewRect)
}

// buffer returns the background-sized scratch image. It is reallocated only
// when the background geometry changes; Paint overwrites the damaged part
// with draw.Src before drawing elements.
func (c *Compositor) buffer() *image.RGBA {
	if b := c.s.bg.Bounds(); c.buf == nil || c.buf.Rect != b {
		c.buf = image.NewRGBA(b)
	}
	return c.buf
}

func (c *Compositor) fillChecker(dst *image.RGBA, r image.Rectangle) {
	light := image.NewUniform(c.colors.CheckerLight)
	dark := image.NewUniform(c.colors.CheckerDark)
	x0 := floorTo(r.Min.X, checkerSize)
	y0 := floorTo(r.Min.Y, checkerSize)
	for y := y0; y < r.Max.Y; y += checkerSize {
		for x := x0; x < r.Max.X; x += checkerSize {
			cell := image.Rect(x, y, x+checkerSize, y+checkerSize).Intersect(r)
			src := light
			if ((x/checkerSize)+(y/checkerSize))&1 != 0 {
				src = dark
			}
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}

func (c *Compositor) drawAdorners(dst *image.RGBA, viewRect image.Rectangle) {
	s := c.s
	toView := func(p image.Point) image.Point { return s.zoom.ViewPoint(p).Add(s.origin) }
	reach := viewRect.Inset(-shape.HandleSize)
	for _, e := range s.sel.Elements() {
		vr := s.ViewRect(e.Bounds())
		if !vr.Inset(-shape.HandleSize).Overlaps(reach) {
			continue
		}
		shape.DrawSelection(dst, vr, c.colors.Selection1, c.colors.Selection2)
		for _, a := range e.Adorners() {
			shape.DrawHandles(dst, a, toView, c.colors.HandleFill, c.colors.HandleBorder)
		}
	}
}

// Export renders the background and every element at full size for output.
func (c *Compositor) Export() *image.RGBA {
	s := c.s
	b := s.bg.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, s.bg, b.Min, draw.Src)
	s.list.Draw(out, s.bg, shape.RenderExport, b)
	return out
}

func (c *Compositor) release() {
	c.buf = nil
	c.damage = image.Rectangle{}
	c.full = false
}

func floorTo(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return v - r
}

func ceilTo(v, m int) int { return -floorTo(-v, m) }
