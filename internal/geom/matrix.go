package geom

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

// Matrices use the x/image layout:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]

// Identity returns the identity transform.
func Identity() f64.Aff3 {
	return f64.Aff3{1, 0, 0, 0, 1, 0}
}

// Translate returns a translation by (dx, dy).
func Translate(dx, dy float64) f64.Aff3 {
	return f64.Aff3{1, 0, dx, 0, 1, dy}
}

// Scale returns a scale about the origin.
func Scale(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

// Rotate90 returns a clockwise quarter turn of an image that was h pixels
// high, keeping the result in positive coordinates.
func Rotate90(h int) f64.Aff3 {
	return f64.Aff3{0, -1, float64(h), 1, 0, 0}
}

// Mul returns the transform that applies b first and then a.
func Mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Invert returns the inverse of m and false when m is singular.
func Invert(m f64.Aff3) (f64.Aff3, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 {
		return f64.Aff3{}, false
	}
	return f64.Aff3{
		m[4] / det, -m[1] / det, (m[1]*m[5] - m[4]*m[2]) / det,
		-m[3] / det, m[0] / det, (m[3]*m[2] - m[0]*m[5]) / det,
	}, true
}

// IsIdentity reports whether m leaves every point unchanged.
func IsIdentity(m f64.Aff3) bool {
	return m == Identity()
}

// Apply transforms a point, rounding to the nearest pixel.
func Apply(m f64.Aff3, p image.Point) image.Point {
	x := float64(p.X)
	y := float64(p.Y)
	return image.Pt(
		int(math.Round(m[0]*x+m[1]*y+m[2])),
		int(math.Round(m[3]*x+m[4]*y+m[5])),
	)
}

// ApplyRect transforms the four corners of r and returns their bounding box.
func ApplyRect(m f64.Aff3, r image.Rectangle) image.Rectangle {
	r = r.Canon()
	corners := []image.Point{r.Min, {r.Max.X, r.Min.Y}, r.Max, {r.Min.X, r.Max.Y}}
	out := image.Rectangle{Min: Apply(m, corners[0]), Max: Apply(m, corners[0])}
	for _, c := range corners[1:] {
		p := Apply(m, c)
		out.Min.X = min(out.Min.X, p.X)
		out.Min.Y = min(out.Min.Y, p.Y)
		out.Max.X = max(out.Max.X, p.X)
		out.Max.Y = max(out.Max.Y, p.Y)
	}
	return out
}
