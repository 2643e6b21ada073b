package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/annotator/internal/geom"
)

func TestShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	s := Shadow{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out, err := s.Apply(img)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	expected := image.Rect(0, 0, 22, 20)
	if !out.Image.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", out.Image.Bounds(), expected)
	}
	// Spot check that the shadow alpha was written near the offset pixel.
	shadowPt := geom.Apply(out.Matrix, subject).Add(s.Offset)
	if out.Image.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
	if got := out.Image.RGBAAt(subject.X, subject.Y); got.R != 255 {
		t.Fatalf("content moved: %+v at %v", got, subject)
	}
}

func TestShadowNegativeOffsetMovesContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	out, err := Shadow{Radius: 2, Offset: image.Pt(-5, -3), Opacity: 1}.Apply(img)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	p := geom.Apply(out.Matrix, image.Pt(0, 0))
	if p != image.Pt(7, 5) {
		t.Fatalf("content origin %v, want (7,5)", p)
	}
	if got := out.Image.RGBAAt(p.X, p.Y); got.G != 255 {
		t.Fatalf("content pixel %+v", got)
	}
}

func TestShadowNoShadowWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	out, err := Shadow{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0}.Apply(img)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !out.Image.Bounds().Eq(img.Bounds()) {
		t.Fatalf("bounds changed unexpectedly: %v vs %v", out.Image.Bounds(), img.Bounds())
	}
	if !geom.IsIdentity(out.Matrix) {
		t.Fatalf("matrix %v, want identity", out.Matrix)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.Image.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestShadowBlurredAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	s := Shadow{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	out, err := s.Apply(img)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if out.Image.Bounds().Dx() <= img.Bounds().Dx() {
		t.Fatalf("expected wider output bounds")
	}
	// Check that blur spreads alpha beyond the exact offset location.
	base := geom.Apply(out.Matrix, image.Pt(0, 0)).Add(s.Offset)
	baseAlpha := out.Image.RGBAAt(base.X, base.Y).A
	if baseAlpha == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	// Neighbor pixel should also have alpha because of blur.
	if out.Image.RGBAAt(base.X+1, base.Y).A == 0 {
		t.Fatalf("expected blurred alpha to reach neighbor, base alpha=%d", baseAlpha)
	}
}

func TestShadowRejectsEmpty(t *testing.T) {
	if _, err := DefaultShadow().Apply(nil); err != ErrNoImage {
		t.Fatalf("err = %v, want ErrNoImage", err)
	}
}
