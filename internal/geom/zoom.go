package geom

import (
	"fmt"
	"image"
	"math/big"
)

// Zoom is the exact scale between image pixels and view pixels. A view
// length is the image length multiplied by Num/Den.
type Zoom struct {
	Num int
	Den int
}

// Unity is the 1:1 zoom factor.
var Unity = Zoom{Num: 1, Den: 1}

// ladder lists the zoom steps used by ZoomIn and ZoomOut.
var ladder = []Zoom{
	{1, 8}, {1, 6}, {1, 4}, {1, 3}, {1, 2}, {2, 3},
	{1, 1},
	{3, 2}, {2, 1}, {3, 1}, {4, 1}, {6, 1}, {8, 1},
}

// NewZoom returns num/den reduced to lowest terms. Non-positive parts yield Unity.
func NewZoom(num, den int) Zoom {
	if num <= 0 || den <= 0 {
		return Unity
	}
	g := gcd(num, den)
	return Zoom{Num: num / g, Den: den / g}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func (z Zoom) norm() Zoom {
	if z.Num <= 0 || z.Den <= 0 {
		return Unity
	}
	return z
}

func (z Zoom) String() string {
	z = z.norm()
	return fmt.Sprintf("%d/%d", z.Num, z.Den)
}

// Percent returns the zoom as a rounded percentage for display.
func (z Zoom) Percent() int {
	z = z.norm()
	return (z.Num*100 + z.Den/2) / z.Den
}

// Magnifies reports whether view pixels are larger than image pixels.
func (z Zoom) Magnifies() bool {
	z = z.norm()
	return z.Num > z.Den
}

// IsUnity reports whether the zoom is 1:1.
func (z Zoom) IsUnity() bool {
	z = z.norm()
	return z.Num == z.Den
}

// Less reports whether z is a smaller scale than o.
func (z Zoom) Less(o Zoom) bool {
	z, o = z.norm(), o.norm()
	return z.Num*o.Den < o.Num*z.Den
}

// In returns the next larger ladder step, or z when already at the top.
func (z Zoom) In() Zoom {
	for _, step := range ladder {
		if z.Less(step) {
			return step
		}
	}
	return z.norm()
}

// Out returns the next smaller ladder step, or z when already at the bottom.
func (z Zoom) Out() Zoom {
	for i := len(ladder) - 1; i >= 0; i-- {
		if ladder[i].Less(z) {
			return ladder[i]
		}
	}
	return z.norm()
}

// Point is an exact position in image space.
type Point struct {
	X, Y *big.Rat
}

// Pt converts an integer image point into an exact Point.
func Pt(p image.Point) Point {
	return Point{X: big.NewRat(int64(p.X), 1), Y: big.NewRat(int64(p.Y), 1)}
}

// Floor returns the image pixel containing p.
func (p Point) Floor() image.Point {
	return image.Pt(floorRat(p.X), floorRat(p.Y))
}

// Eq reports whether both coordinates are equal.
func (p Point) Eq(o Point) bool {
	return p.X.Cmp(o.X) == 0 && p.Y.Cmp(o.Y) == 0
}

func floorRat(r *big.Rat) int {
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(r.Num(), r.Denom(), m)
	return int(q.Int64())
}

// ToImage converts a view point into exact image coordinates.
func (z Zoom) ToImage(p image.Point) Point {
	z = z.norm()
	return Point{
		X: big.NewRat(int64(p.X)*int64(z.Den), int64(z.Num)),
		Y: big.NewRat(int64(p.Y)*int64(z.Den), int64(z.Num)),
	}
}

// ToView converts exact image coordinates into a view point. Points produced
// by ToImage convert back exactly; anything else is floored.
func (z Zoom) ToView(p Point) image.Point {
	z = z.norm()
	s := big.NewRat(int64(z.Num), int64(z.Den))
	x := new(big.Rat).Mul(p.X, s)
	y := new(big.Rat).Mul(p.Y, s)
	return image.Pt(floorRat(x), floorRat(y))
}

// ImagePoint converts a view point into the image pixel beneath it.
func (z Zoom) ImagePoint(p image.Point) image.Point {
	return z.ToImage(p).Floor()
}

// ViewPoint converts an image pixel position into view space.
func (z Zoom) ViewPoint(p image.Point) image.Point {
	z = z.norm()
	return image.Pt(floorDiv(p.X*z.Num, z.Den), floorDiv(p.Y*z.Num, z.Den))
}

// ToImageRect returns the smallest image rectangle covering the view rectangle r.
func (z Zoom) ToImageRect(r image.Rectangle) image.Rectangle {
	z = z.norm()
	r = r.Canon()
	return image.Rect(
		floorDiv(r.Min.X*z.Den, z.Num), floorDiv(r.Min.Y*z.Den, z.Num),
		ceilDiv(r.Max.X*z.Den, z.Num), ceilDiv(r.Max.Y*z.Den, z.Num),
	)
}

// ToViewRect returns the smallest view rectangle covering the image rectangle r.
func (z Zoom) ToViewRect(r image.Rectangle) image.Rectangle {
	z = z.norm()
	r = r.Canon()
	return image.Rect(
		floorDiv(r.Min.X*z.Num, z.Den), floorDiv(r.Min.Y*z.Num, z.Den),
		ceilDiv(r.Max.X*z.Num, z.Den), ceilDiv(r.Max.Y*z.Num, z.Den),
	)
}

// ScaleLen converts an image length into view pixels, rounding up.
func (z Zoom) ScaleLen(n int) int {
	z = z.norm()
	return ceilDiv(n*z.Num, z.Den)
}

// UnscaleLen converts a view length into image pixels, rounding up.
func (z Zoom) UnscaleLen(n int) int {
	z = z.norm()
	return ceilDiv(n*z.Den, z.Num)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
