package shape

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"
)

func boundsOf(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

// remap moves v from the span [a0, a1] onto [b0, b1]. A collapsed source
// span sends first to b0 and everything else to b1.
func remap(v, a0, a1, b0, b1 int, first bool) int {
	if a1 == a0 {
		if first {
			return b0
		}
		return b1
	}
	return b0 + int(math.Round(float64(v-a0)*float64(b1-b0)/float64(a1-a0)))
}

func remapPoints(pts []image.Point, from, to image.Rectangle) []image.Point {
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		out[i] = image.Pt(
			remap(p.X, from.Min.X, from.Max.X, to.Min.X, to.Max.X, i == 0),
			remap(p.Y, from.Min.Y, from.Max.Y, to.Min.Y, to.Max.Y, i == 0),
		)
	}
	return out
}

func transformPoints(pts []image.Point, m f64.Aff3) {
	for i, p := range pts {
		x, y := float64(p.X), float64(p.Y)
		pts[i] = image.Pt(int(math.Round(m[0]*x+m[1]*y+m[2])), int(math.Round(m[3]*x+m[4]*y+m[5])))
	}
}

// Line is a straight stroke between two points.
type Line struct {
	Base
	pts  []image.Point
	head bool
}

func NewLine(d Defaults) *Line {
	l := &Line{pts: make([]image.Point, 2)}
	l.init(l, ModeLine, strokeFields(d))
	l.adorners = []Adorner{NewEndpointAdorner(l)}
	return l
}

// NewArrow returns a line with an arrow head at its end point.
func NewArrow(d Defaults) *Line {
	l := NewLine(d)
	l.mode = ModeArrow
	l.head = true
	return l
}

func (l *Line) Points() []image.Point {
	out := make([]image.Point, len(l.pts))
	copy(out, l.pts)
	return out
}

func (l *Line) SetPoints(pts []image.Point) {
	if len(pts) != 2 {
		return
	}
	l.pts = append(l.pts[:0], pts...)
	l.bounds = boundsOf(l.pts)
}

func (l *Line) SetBounds(r image.Rectangle) {
	r = r.Canon()
	l.pts = remapPoints(l.pts, l.bounds, r)
	l.bounds = boundsOf(l.pts)
}

func (l *Line) Transform(m f64.Aff3) {
	transformPoints(l.pts, m)
	l.bounds = boundsOf(l.pts)
}

func (l *Line) DrawingBounds() image.Rectangle {
	pad := l.thickness() + 2
	if l.head {
		pad += 6 + l.thickness()*2
	}
	if l.shadow() {
		pad += shadowOffset
	}
	return l.bounds.Inset(-pad)
}

func (l *Line) HitTest(p image.Point) bool {
	return distToSegment(p, l.pts[0], l.pts[1]) <= float64(l.thickness()/2+hitTolerance)
}

func (l *Line) MouseDown(p image.Point) bool {
	l.SetPoints([]image.Point{p, p})
	l.status = StatusDrawing
	return true
}

func (l *Line) MouseMove(p image.Point) bool {
	if l.status != StatusDrawing {
		return false
	}
	l.SetPoints([]image.Point{l.pts[0], p})
	return true
}

func (l *Line) Draw(dst *image.RGBA, _ image.Image, _ RenderMode, clip image.Rectangle) {
	t := clipTo(dst, clip)
	a, b := l.pts[0], l.pts[1]
	th := max(l.thickness(), 1)
	if l.shadow() {
		s := image.Pt(shadowOffset, shadowOffset)
		drawLine(t, a.X+s.X, a.Y+s.Y, b.X+s.X, b.Y+s.Y, shadowColor, th)
		if l.head {
			drawArrowHead(t, a.X+s.X, a.Y+s.Y, b.X+s.X, b.Y+s.Y, shadowColor, th)
		}
	}
	drawLine(t, a.X, a.Y, b.X, b.Y, l.lineColor(), th)
	if l.head {
		drawArrowHead(t, a.X, a.Y, b.X, b.Y, l.lineColor(), th)
	}
}

func (l *Line) Clone() Element {
	c := &Line{pts: l.Points(), head: l.head}
	c.Base = l.Base.clone(c)
	c.adorners = []Adorner{NewEndpointAdorner(c)}
	return c
}

// Path is a freehand stroke.
type Path struct {
	Base
	pts []image.Point
}

func NewPath(d Defaults) *Path {
	p := &Path{}
	p.init(p, ModePath, strokeFields(d))
	return p
}

func (p *Path) Points() []image.Point {
	out := make([]image.Point, len(p.pts))
	copy(out, p.pts)
	return out
}

func (p *Path) SetPoints(pts []image.Point) {
	p.pts = append(p.pts[:0], pts...)
	p.bounds = boundsOf(p.pts)
}

func (p *Path) SetBounds(r image.Rectangle) {
	r = r.Canon()
	p.pts = remapPoints(p.pts, p.bounds, r)
	p.bounds = boundsOf(p.pts)
}

func (p *Path) Transform(m f64.Aff3) {
	transformPoints(p.pts, m)
	p.bounds = boundsOf(p.pts)
}

func (p *Path) HitTest(pt image.Point) bool {
	tol := float64(p.thickness()/2 + hitTolerance)
	for i := 1; i < len(p.pts); i++ {
		if distToSegment(pt, p.pts[i-1], p.pts[i]) <= tol {
			return true
		}
	}
	return false
}

func (p *Path) MouseDown(pt image.Point) bool {
	p.SetPoints([]image.Point{pt})
	p.status = StatusDrawing
	return true
}

func (p *Path) MouseMove(pt image.Point) bool {
	if p.status != StatusDrawing {
		return false
	}
	if len(p.pts) > 0 && p.pts[len(p.pts)-1] == pt {
		return false
	}
	p.SetPoints(append(p.pts, pt))
	return true
}

// FinalizeContent rejects a stroke that never left its first point.
func (p *Path) FinalizeContent() bool { return len(p.pts) >= 2 }

func (p *Path) Draw(dst *image.RGBA, _ image.Image, _ RenderMode, clip image.Rectangle) {
	t := clipTo(dst, clip)
	th := max(p.thickness(), 1)
	for i := 1; i < len(p.pts); i++ {
		a, b := p.pts[i-1], p.pts[i]
		if p.shadow() {
			drawLine(t, a.X+shadowOffset, a.Y+shadowOffset, b.X+shadowOffset, b.Y+shadowOffset, shadowColor, th)
		}
	}
	for i := 1; i < len(p.pts); i++ {
		a, b := p.pts[i-1], p.pts[i]
		drawLine(t, a.X, a.Y, b.X, b.Y, p.lineColor(), th)
	}
}

func (p *Path) Clone() Element {
	c := &Path{pts: p.Points()}
	c.Base = p.Base.clone(c)
	return c
}
