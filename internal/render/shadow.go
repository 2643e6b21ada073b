package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"

	"github.com/example/annotator/internal/geom"
)

// Shadow adds a blurred drop shadow behind the image, growing the canvas.
type Shadow struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadow returns a conservative drop shadow configuration that
// works well with most screenshots.
func DefaultShadow() Shadow {
	return Shadow{
		Radius:  24,
		Offset:  image.Pt(16, 16),
		Opacity: 0.55,
	}
}

func (Shadow) Name() string { return "shadow" }

// Apply composites img with a blurred drop shadow. The result always has a
// zero origin; the matrix is the translation of the original content inside
// the expanded canvas.
func (s Shadow) Apply(img *image.RGBA) (Result, error) {
	if err := checkImage(img); err != nil {
		return Result{}, err
	}
	if s.Opacity <= 0 {
		return Result{Image: img, Matrix: geom.Identity()}, nil
	}
	opacity := min(s.Opacity, 1)
	radius := max(s.Radius, 0)

	srcBounds := img.Bounds()
	paddedBounds := srcBounds.Inset(-radius)
	shadowBounds := paddedBounds.Add(s.Offset)
	compositeBounds := srcBounds.Union(shadowBounds)
	dstRect := compositeBounds.Sub(compositeBounds.Min)

	shadowOrigin := shadowBounds.Min.Sub(compositeBounds.Min)

	mask := image.NewRGBA(paddedBounds.Sub(paddedBounds.Min))
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			a := img.RGBAAt(x, y).A
			if a == 0 {
				continue
			}
			mask.SetRGBA(x-paddedBounds.Min.X, y-paddedBounds.Min.Y, color.RGBA{A: a})
		}
	}
	blurred := mask
	if radius > 0 {
		blurred = blur.Box(mask, float64(radius))
	}

	dst := image.NewRGBA(dstRect)
	if shadowAlpha := uint8(opacity*255 + 0.5); shadowAlpha > 0 {
		draw.DrawMask(dst, blurred.Bounds().Add(shadowOrigin), image.NewUniform(color.RGBA{0, 0, 0, shadowAlpha}), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	}
	draw.Draw(dst, srcBounds.Sub(compositeBounds.Min), img, srcBounds.Min, draw.Over)

	return Result{Image: dst, Matrix: geom.Translate(float64(-compositeBounds.Min.X), float64(-compositeBounds.Min.Y))}, nil
}
