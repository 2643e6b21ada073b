package shape

import (
	"image"
	"image/color"
)

// HandleSize is the on-screen size of an adorner handle in view pixels.
const HandleSize = 8

// Adorner is an interactive decoration attached to a selected element.
// Positions are image coordinates; tol is the handle half-size converted
// to image pixels at the current zoom.
type Adorner interface {
	Handles() []image.Point
	HitTest(p image.Point, tol int) bool
	Active() bool
	MouseDown(p image.Point, tol int) bool
	MouseMove(p image.Point) bool
	MouseUp(p image.Point) bool
	Owner() Element
}

type resizeHandle int

const (
	handleNone resizeHandle = iota - 1
	handleTL
	handleT
	handleTR
	handleR
	handleBR
	handleB
	handleBL
	handleL
)

// ResizeAdorner offers eight handles around the owner's bounds.
type ResizeAdorner struct {
	owner     Element
	active    resizeHandle
	start     image.Point
	startRect image.Rectangle
}

// NewResizeAdorner attaches a resize adorner to owner.
func NewResizeAdorner(owner Element) *ResizeAdorner {
	return &ResizeAdorner{owner: owner, active: handleNone}
}

func (a *ResizeAdorner) Owner() Element { return a.owner }

func (a *ResizeAdorner) Handles() []image.Point {
	r := a.owner.Bounds()
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	return []image.Point{
		r.Min,
		{cx, r.Min.Y},
		{r.Max.X, r.Min.Y},
		{r.Max.X, cy},
		r.Max,
		{cx, r.Max.Y},
		{r.Min.X, r.Max.Y},
		{r.Min.X, cy},
	}
}

func handleAt(handles []image.Point, p image.Point, tol int) int {
	for i, h := range handles {
		if p.In(image.Rect(h.X-tol, h.Y-tol, h.X+tol+1, h.Y+tol+1)) {
			return i
		}
	}
	return -1
}

func (a *ResizeAdorner) HitTest(p image.Point, tol int) bool {
	return handleAt(a.Handles(), p, tol) >= 0
}

func (a *ResizeAdorner) Active() bool { return a.active != handleNone }

func (a *ResizeAdorner) MouseDown(p image.Point, tol int) bool {
	idx := handleAt(a.Handles(), p, tol)
	if idx < 0 {
		return false
	}
	a.active = resizeHandle(idx)
	a.start = p
	a.startRect = a.owner.Bounds()
	a.owner.SetStatus(StatusResizing)
	return true
}

func (a *ResizeAdorner) MouseMove(p image.Point) bool {
	if a.active == handleNone {
		return false
	}
	dx := p.X - a.start.X
	dy := p.Y - a.start.Y
	r := a.startRect
	switch a.active {
	case handleTL:
		r.Min.X += dx
		r.Min.Y += dy
	case handleT:
		r.Min.Y += dy
	case handleTR:
		r.Min.Y += dy
		r.Max.X += dx
	case handleR:
		r.Max.X += dx
	case handleBR:
		r.Max.X += dx
		r.Max.Y += dy
	case handleB:
		r.Max.Y += dy
	case handleBL:
		r.Min.X += dx
		r.Max.Y += dy
	case handleL:
		r.Min.X += dx
	}
	a.owner.SetBounds(r.Canon())
	return true
}

func (a *ResizeAdorner) MouseUp(p image.Point) bool {
	if a.active == handleNone {
		return false
	}
	a.MouseMove(p)
	a.active = handleNone
	a.owner.SetStatus(StatusIdle)
	return true
}

// pointOwner is an element whose geometry is a list of points.
type pointOwner interface {
	Element
	Points() []image.Point
	SetPoints(pts []image.Point)
}

// EndpointAdorner drags the two ends of a line independently.
type EndpointAdorner struct {
	owner  pointOwner
	active int
}

func NewEndpointAdorner(owner pointOwner) *EndpointAdorner {
	return &EndpointAdorner{owner: owner, active: -1}
}

func (a *EndpointAdorner) Owner() Element { return a.owner }

func (a *EndpointAdorner) Handles() []image.Point {
	return a.owner.Points()
}

func (a *EndpointAdorner) HitTest(p image.Point, tol int) bool {
	return handleAt(a.Handles(), p, tol) >= 0
}

func (a *EndpointAdorner) Active() bool { return a.active >= 0 }

func (a *EndpointAdorner) MouseDown(p image.Point, tol int) bool {
	a.active = handleAt(a.Handles(), p, tol)
	if a.active < 0 {
		return false
	}
	a.owner.SetStatus(StatusResizing)
	return true
}

func (a *EndpointAdorner) MouseMove(p image.Point) bool {
	if a.active < 0 {
		return false
	}
	pts := a.owner.Points()
	pts[a.active] = p
	a.owner.SetPoints(pts)
	return true
}

func (a *EndpointAdorner) MouseUp(p image.Point) bool {
	if a.active < 0 {
		return false
	}
	a.MouseMove(p)
	a.active = -1
	a.owner.SetStatus(StatusIdle)
	return true
}

// DrawHandles paints the handles of a in view space. toView maps image
// coordinates to dst coordinates.
func DrawHandles(dst *image.RGBA, a Adorner, toView func(image.Point) image.Point, fill, border color.RGBA) {
	hs := HandleSize / 2
	for _, h := range a.Handles() {
		c := toView(h)
		r := image.Rect(c.X-hs, c.Y-hs, c.X+hs, c.Y+hs)
		fillRect(dst, r, fill)
		drawRect(dst, r, border, 1)
	}
}

// DrawSelection outlines a selected element's bounds in view space.
func DrawSelection(dst *image.RGBA, r image.Rectangle, c1, c2 color.RGBA) {
	drawDashedRect(dst, r, 4, 1, c1, c2)
}
