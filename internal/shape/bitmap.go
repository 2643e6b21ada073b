package shape

import (
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Bitmap is a pasted or dropped image scaled into its bounds.
type Bitmap struct {
	Base
	img *image.RGBA
}

// NewBitmap wraps a copy of img placed at the origin. A nil img yields an
// element that FinalizeContent rejects.
func NewBitmap(img image.Image) *Bitmap {
	b := &Bitmap{}
	b.init(b, ModeBitmap, Fields{FieldShadow: false})
	if img != nil {
		b.img = clone.AsRGBA(img)
		b.bounds = image.Rectangle{Max: b.img.Bounds().Size()}
	}
	return b
}

func (b *Bitmap) Image() *image.RGBA { return b.img }

// SetImage replaces the pixels without copying; bounds are unchanged.
func (b *Bitmap) SetImage(img *image.RGBA) { b.img = img }

func (b *Bitmap) DefaultEditMode() EditMode { return EditNone }

func (b *Bitmap) FinalizeContent() bool { return b.img != nil && !b.bounds.Empty() }

// Transform maps the bounds and turns the pixels with any rotation in m.
func (b *Bitmap) Transform(m f64.Aff3) {
	pts := []image.Point{b.bounds.Min, b.bounds.Max}
	transformPoints(pts, m)
	b.bounds = boundsOf(pts)
	if b.img == nil {
		return
	}
	if angle := math.Atan2(m[3], m[0]) * 180 / math.Pi; math.Abs(angle) > 0.5 {
		b.img = transform.Rotate(b.img, angle, &transform.RotationOptions{ResizeBounds: true})
	}
}

func (b *Bitmap) Draw(dst *image.RGBA, _ image.Image, _ RenderMode, clip image.Rectangle) {
	if b.img == nil || b.bounds.Empty() {
		return
	}
	t := clipTo(dst, clip)
	src := b.img.Bounds()
	if src.Size() == b.bounds.Size() {
		draw.Draw(t, b.bounds, b.img, src.Min, draw.Over)
		return
	}
	xdraw.BiLinear.Scale(t, b.bounds, b.img, src, draw.Over, nil)
}

func (b *Bitmap) Clone() Element {
	c := &Bitmap{}
	c.Base = b.Base.clone(c)
	if b.img != nil {
		c.img = clone.AsRGBA(b.img)
	}
	return c
}

// Release drops the pixels; the element is unusable afterwards.
func (b *Bitmap) Release() { b.img = nil }
