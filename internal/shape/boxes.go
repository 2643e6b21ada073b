package shape

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
)

// Rect is an outlined, optionally filled rectangle.
type Rect struct {
	Base
}

func NewRect(d Defaults) *Rect {
	r := &Rect{}
	f := strokeFields(d)
	f[FieldFillColor] = d.FillColor
	r.init(r, ModeRect, f)
	return r
}

func (r *Rect) Draw(dst *image.RGBA, _ image.Image, _ RenderMode, clip image.Rectangle) {
	t := clipTo(dst, clip)
	b := r.bounds
	if r.shadow() {
		drawRect(t, b.Add(image.Pt(shadowOffset, shadowOffset)), shadowColor, r.thickness())
	}
	fillRect(t, b, r.fillColor())
	if r.thickness() > 0 {
		drawRect(t, b, r.lineColor(), r.thickness())
	}
}

func (r *Rect) Clone() Element {
	c := &Rect{}
	c.Base = r.Base.clone(c)
	return c
}

// Ellipse is an outlined, optionally filled ellipse inscribed in its bounds.
type Ellipse struct {
	Base
}

func NewEllipse(d Defaults) *Ellipse {
	e := &Ellipse{}
	f := strokeFields(d)
	f[FieldFillColor] = d.FillColor
	e.init(e, ModeEllipse, f)
	return e
}

func (e *Ellipse) HitTest(p image.Point) bool {
	b := e.bounds.Inset(-(e.thickness()/2 + hitTolerance))
	rx := float64(b.Dx()) / 2
	ry := float64(b.Dy()) / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (float64(p.X) - (float64(b.Min.X) + rx)) / rx
	dy := (float64(p.Y) - (float64(b.Min.Y) + ry)) / ry
	return dx*dx+dy*dy <= 1
}

func (e *Ellipse) Draw(dst *image.RGBA, _ image.Image, _ RenderMode, clip image.Rectangle) {
	t := clipTo(dst, clip)
	b := e.bounds
	cx, cy := (b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2
	rx, ry := b.Dx()/2, b.Dy()/2
	if e.shadow() {
		drawEllipse(t, cx+shadowOffset, cy+shadowOffset, rx, ry, shadowColor, e.thickness())
	}
	fillEllipse(t, cx, cy, rx, ry, e.fillColor())
	if e.thickness() > 0 {
		drawEllipse(t, cx, cy, rx, ry, e.lineColor(), e.thickness())
	}
}

func (e *Ellipse) Clone() Element {
	c := &Ellipse{}
	c.Base = e.Base.clone(c)
	return c
}

// sourcePixels returns the image a filter reads from.
func sourcePixels(dst *image.RGBA, bg image.Image) image.Image {
	if bg != nil {
		return bg
	}
	return dst
}

// Highlight multiplies the pixels beneath it with a marker colour.
type Highlight struct {
	Base
}

func NewHighlight(d Defaults) *Highlight {
	h := &Highlight{}
	h.init(h, ModeHighlight, Fields{FieldHighlightColor: d.HighlightColor})
	return h
}

func (h *Highlight) NeedsPixels() bool { return true }

func (h *Highlight) DrawingBounds() image.Rectangle { return h.bounds }

func (h *Highlight) Draw(dst *image.RGBA, bg image.Image, _ RenderMode, clip image.Rectangle) {
	area := h.bounds.Intersect(clip).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	src := sourcePixels(dst, bg)
	hl := h.fields.Color(FieldHighlightColor)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
			dst.SetRGBA(x, y, color.RGBA{
				R: uint8(uint32(c.R) * uint32(hl.R) / 255),
				G: uint8(uint32(c.G) * uint32(hl.G) / 255),
				B: uint8(uint32(c.B) * uint32(hl.B) / 255),
				A: c.A,
			})
		}
	}
}

func (h *Highlight) Clone() Element {
	c := &Highlight{}
	c.Base = h.Base.clone(c)
	return c
}

// Obfuscate hides the pixels beneath it, pixelating by default and
// blurring when a blur radius is set.
type Obfuscate struct {
	Base
}

func NewObfuscate(d Defaults) *Obfuscate {
	o := &Obfuscate{}
	o.init(o, ModeObfuscate, Fields{
		FieldPixelSize:  d.PixelSize,
		FieldBlurRadius: 0,
	})
	return o
}

func (o *Obfuscate) NeedsPixels() bool { return true }

func (o *Obfuscate) DrawingBounds() image.Rectangle { return o.bounds }

func (o *Obfuscate) Draw(dst *image.RGBA, bg image.Image, _ RenderMode, clip image.Rectangle) {
	src := sourcePixels(dst, bg)
	area := o.bounds.Intersect(src.Bounds())
	if area.Empty() || area.Intersect(clip).Intersect(dst.Bounds()).Empty() {
		return
	}
	// Work on the whole element so blocks and blur do not depend on the clip.
	work := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	draw.Draw(work, work.Bounds(), src, area.Min, draw.Src)
	var out image.Image
	if radius := o.fields.Int(FieldBlurRadius); radius > 0 {
		out = blur.Gaussian(work, float64(radius))
	} else {
		pixelate(work, max(o.fields.Int(FieldPixelSize), 2))
		out = work
	}
	target := area.Intersect(clip)
	draw.Draw(dst, target, out, out.Bounds().Min.Add(target.Min.Sub(area.Min)), draw.Src)
}

// pixelate replaces each size×size block of img with its average colour.
func pixelate(img *image.RGBA, size int) {
	b := img.Bounds()
	for by := b.Min.Y; by < b.Max.Y; by += size {
		for bx := b.Min.X; bx < b.Max.X; bx += size {
			block := image.Rect(bx, by, bx+size, by+size).Intersect(b)
			var r, g, bl, a, n uint32
			for y := block.Min.Y; y < block.Max.Y; y++ {
				for x := block.Min.X; x < block.Max.X; x++ {
					c := img.RGBAAt(x, y)
					r += uint32(c.R)
					g += uint32(c.G)
					bl += uint32(c.B)
					a += uint32(c.A)
					n++
				}
			}
			if n == 0 {
				continue
			}
			avg := color.RGBA{uint8(r / n), uint8(g / n), uint8(bl / n), uint8(a / n)}
			draw.Draw(img, block, image.NewUniform(avg), image.Point{}, draw.Src)
		}
	}
}

func (o *Obfuscate) Clone() Element {
	c := &Obfuscate{}
	c.Base = o.Base.clone(c)
	return c
}

// Crop marks the region a pending crop will keep. It is only visible while editing.
type Crop struct {
	Base
}

func NewCrop() *Crop {
	c := &Crop{}
	c.init(c, ModeCrop, Fields{})
	return c
}

var (
	cropLight = color.RGBA{255, 255, 255, 255}
	cropDark  = color.RGBA{0, 0, 0, 255}
)

func (c *Crop) DrawingBounds() image.Rectangle { return c.bounds.Inset(-2) }

func (c *Crop) Draw(dst *image.RGBA, _ image.Image, mode RenderMode, clip image.Rectangle) {
	if mode == RenderExport {
		return
	}
	drawDashedRect(clipTo(dst, clip), c.bounds, 4, 2, cropLight, cropDark)
}

// FinalizeContent rejects an empty crop region.
func (c *Crop) FinalizeContent() bool { return !c.bounds.Empty() }

func (c *Crop) Clone() Element {
	n := &Crop{}
	n.Base = c.Base.clone(n)
	return n
}
