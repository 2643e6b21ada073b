package render

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"

	"github.com/example/annotator/internal/geom"
)

// Grayscale drops colour information.
type Grayscale struct{}

func (Grayscale) Name() string { return "grayscale" }

func (Grayscale) Apply(img *image.RGBA) (Result, error) {
	if err := checkImage(img); err != nil {
		return Result{}, err
	}
	return Result{Image: effect.Grayscale(img), Matrix: geom.Identity()}, nil
}

// Invert negates every colour channel.
type Invert struct{}

func (Invert) Name() string { return "invert" }

func (Invert) Apply(img *image.RGBA) (Result, error) {
	if err := checkImage(img); err != nil {
		return Result{}, err
	}
	return Result{Image: effect.Invert(img), Matrix: geom.Identity()}, nil
}

// Blur smooths the whole image with a gaussian kernel.
type Blur struct {
	Radius float64
}

func (Blur) Name() string { return "blur" }

func (b Blur) Apply(img *image.RGBA) (Result, error) {
	if err := checkImage(img); err != nil {
		return Result{}, err
	}
	return Result{Image: blur.Gaussian(img, b.Radius), Matrix: geom.Identity()}, nil
}

// Resize scales the image to Width by Height pixels.
type Resize struct {
	Width, Height int
}

func (Resize) Name() string { return "resize" }

func (r Resize) Apply(img *image.RGBA) (Result, error) {
	if err := checkImage(img); err != nil {
		return Result{}, err
	}
	if r.Width <= 0 || r.Height <= 0 {
		return Result{}, fmt.Errorf("resize to %dx%d: size must be positive", r.Width, r.Height)
	}
	size := img.Bounds().Size()
	out := transform.Resize(img, r.Width, r.Height, transform.Linear)
	m := geom.Scale(float64(r.Width)/float64(size.X), float64(r.Height)/float64(size.Y))
	return Result{Image: out, Matrix: m}, nil
}

// Rotate90 turns the image a quarter clockwise.
type Rotate90 struct{}

func (Rotate90) Name() string { return "rotate" }

func (Rotate90) Apply(img *image.RGBA) (Result, error) {
	if err := checkImage(img); err != nil {
		return Result{}, err
	}
	out := transform.Rotate(img, 90, &transform.RotationOptions{ResizeBounds: true})
	return Result{Image: out, Matrix: geom.Rotate90(img.Bounds().Dy())}, nil
}

// FlipH mirrors the image left to right.
type FlipH struct{}

func (FlipH) Name() string { return "fliph" }

func (FlipH) Apply(img *image.RGBA) (Result, error) {
	if err := checkImage(img); err != nil {
		return Result{}, err
	}
	m := geom.Mul(geom.Translate(float64(img.Bounds().Dx()), 0), geom.Scale(-1, 1))
	return Result{Image: transform.FlipH(img), Matrix: m}, nil
}

// FlipV mirrors the image top to bottom.
type FlipV struct{}

func (FlipV) Name() string { return "flipv" }

func (FlipV) Apply(img *image.RGBA) (Result, error) {
	if err := checkImage(img); err != nil {
		return Result{}, err
	}
	m := geom.Mul(geom.Translate(0, float64(img.Bounds().Dy())), geom.Scale(1, -1))
	return Result{Image: transform.FlipV(img), Matrix: m}, nil
}

// Crop keeps Rect and moves it to the origin.
type Crop struct {
	Rect image.Rectangle
}

func (Crop) Name() string { return "crop" }

func (c Crop) Apply(img *image.RGBA) (Result, error) {
	if err := checkImage(img); err != nil {
		return Result{}, err
	}
	r := c.Rect.Canon()
	if r.Empty() || !r.In(img.Bounds()) {
		return Result{}, &CropError{Rect: c.Rect, Size: img.Bounds().Size()}
	}
	out := transform.Crop(img, r)
	out.Rect = out.Rect.Sub(out.Rect.Min)
	return Result{Image: out, Matrix: geom.Translate(float64(-r.Min.X), float64(-r.Min.Y))}, nil
}
