// Package scene holds the ordered element list of a surface and its selection.
package scene

import (
	"image"

	"golang.org/x/image/math/f64"

	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/shape"
)

// EventKind describes a change to a List.
type EventKind int

const (
	Added EventKind = iota
	Removed
	Reordered
)

// ListEvent is delivered to List subscribers after a change.
type ListEvent struct {
	Kind     EventKind
	Elements []shape.Element
}

// List is the z-ordered set of elements on a surface. Index 0 is painted first.
type List struct {
	elems      []shape.Element
	sel        *Selection
	subs       observers[ListEvent]
	invalidate func(image.Rectangle)
}

// NewList returns an empty list with an empty selection.
func NewList() *List {
	l := &List{}
	l.sel = &Selection{list: l}
	return l
}

// Selection returns the selection over this list.
func (l *List) Selection() *Selection { return l.sel }

// SetInvalidator installs the function told about regions, in image
// coordinates, whose appearance changed.
func (l *List) SetInvalidator(fn func(image.Rectangle)) { l.invalidate = fn }

func (l *List) damage(r image.Rectangle) {
	if l.invalidate != nil && !r.Empty() {
		l.invalidate(r)
	}
}

// Subscribe registers fn for change events and returns its cancel function.
func (l *List) Subscribe(fn func(ListEvent)) func() { return l.subs.add(fn) }

func (l *List) Len() int                      { return len(l.elems) }
func (l *List) At(i int) shape.Element        { return l.elems[i] }
func (l *List) Contains(e shape.Element) bool { return l.IndexOf(e) >= 0 }

// Elements returns a copy of the members bottom to top.
func (l *List) Elements() []shape.Element {
	return append([]shape.Element(nil), l.elems...)
}

func (l *List) IndexOf(e shape.Element) int {
	for i, x := range l.elems {
		if x == e {
			return i
		}
	}
	return -1
}

// Add puts e on top. Adding a member again does nothing.
func (l *List) Add(e shape.Element) {
	l.Insert(len(l.elems), e)
}

// Insert puts e at index i, clamped to the list.
func (l *List) Insert(i int, e shape.Element) {
	if e == nil || l.Contains(e) {
		return
	}
	i = min(max(i, 0), len(l.elems))
	l.elems = append(l.elems, nil)
	copy(l.elems[i+1:], l.elems[i:])
	l.elems[i] = e
	l.damage(e.DrawingBounds())
	l.subs.notify(ListEvent{Kind: Added, Elements: []shape.Element{e}})
}

// Remove takes e out of the list and the selection. It returns the index e
// had, or -1 when it was not a member.
func (l *List) Remove(e shape.Element) int {
	i := l.IndexOf(e)
	if i < 0 {
		return -1
	}
	l.sel.evict(e)
	l.elems = append(l.elems[:i], l.elems[i+1:]...)
	l.damage(e.DrawingBounds())
	l.subs.notify(ListEvent{Kind: Removed, Elements: []shape.Element{e}})
	return i
}

// ClickableElementAt returns the top-most element whose hit test accepts p.
func (l *List) ClickableElementAt(p image.Point) shape.Element {
	for i := len(l.elems) - 1; i >= 0; i-- {
		if l.elems[i].HitTest(p) {
			return l.elems[i]
		}
	}
	return nil
}

func memberSet(subset []shape.Element) map[shape.Element]bool {
	m := make(map[shape.Element]bool, len(subset))
	for _, e := range subset {
		m[e] = true
	}
	return m
}

func (l *List) reordered(subset []shape.Element) {
	var r image.Rectangle
	for _, e := range subset {
		r = r.Union(e.DrawingBounds())
	}
	l.damage(r)
	l.subs.notify(ListEvent{Kind: Reordered, Elements: subset})
}

// PullUp moves every member of subset one step towards the top, keeping the
// order within subset. It reports whether anything moved.
func (l *List) PullUp(subset []shape.Element) bool {
	in := memberSet(subset)
	moved := false
	for i := len(l.elems) - 2; i >= 0; i-- {
		if in[l.elems[i]] && !in[l.elems[i+1]] {
			l.elems[i], l.elems[i+1] = l.elems[i+1], l.elems[i]
			moved = true
		}
	}
	if moved {
		l.reordered(subset)
	}
	return moved
}

// PushDown moves every member of subset one step towards the bottom.
func (l *List) PushDown(subset []shape.Element) bool {
	in := memberSet(subset)
	moved := false
	for i := 1; i < len(l.elems); i++ {
		if in[l.elems[i]] && !in[l.elems[i-1]] {
			l.elems[i], l.elems[i-1] = l.elems[i-1], l.elems[i]
			moved = true
		}
	}
	if moved {
		l.reordered(subset)
	}
	return moved
}

func (l *List) partition(subset []shape.Element, toTop bool) bool {
	in := memberSet(subset)
	var members, others []shape.Element
	for _, e := range l.elems {
		if in[e] {
			members = append(members, e)
		} else {
			others = append(others, e)
		}
	}
	var next []shape.Element
	if toTop {
		next = append(others, members...)
	} else {
		next = append(members, others...)
	}
	if sameOrder(next, l.elems) {
		return false
	}
	l.elems = next
	l.reordered(subset)
	return true
}

func sameOrder(a, b []shape.Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// PullToTop moves subset above every other element.
func (l *List) PullToTop(subset []shape.Element) bool { return l.partition(subset, true) }

// PushToBottom moves subset below every other element.
func (l *List) PushToBottom(subset []shape.Element) bool { return l.partition(subset, false) }

// CanPullUp reports whether some member of subset has a non-member above it.
func (l *List) CanPullUp(subset []shape.Element) bool {
	in := memberSet(subset)
	seen := false
	for _, e := range l.elems {
		if in[e] {
			seen = true
		} else if seen {
			return true
		}
	}
	return false
}

// CanPushDown reports whether some member of subset has a non-member below it.
func (l *List) CanPushDown(subset []shape.Element) bool {
	in := memberSet(subset)
	seen := false
	for i := len(l.elems) - 1; i >= 0; i-- {
		if in[l.elems[i]] {
			seen = true
		} else if seen {
			return true
		}
	}
	return false
}

// SetOrder replaces the z-order with order, which must hold exactly the
// current members.
func (l *List) SetOrder(order []shape.Element) {
	if len(order) != len(l.elems) {
		return
	}
	in := memberSet(l.elems)
	for _, e := range order {
		if !in[e] {
			return
		}
	}
	l.elems = append(l.elems[:0:0], order...)
	l.reordered(order)
}

// BoundsUnion returns the smallest rectangle covering every member's bounds.
func (l *List) BoundsUnion() image.Rectangle {
	var r image.Rectangle
	for _, e := range l.elems {
		r = r.Union(e.Bounds())
	}
	return r
}

// Transform applies m to every element.
func (l *List) Transform(m f64.Aff3) {
	for _, e := range l.elems {
		TransformElement(e, m)
	}
}

// TransformElement applies m to one element, letting it map its own
// geometry when it knows how.
func TransformElement(e shape.Element, m f64.Aff3) {
	if t, ok := e.(shape.Transformer); ok {
		t.Transform(m)
		return
	}
	e.SetBounds(geom.ApplyRect(m, e.Bounds()))
}

// MoveBy translates every element of subset.
func (l *List) MoveBy(subset []shape.Element, dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	d := image.Pt(dx, dy)
	for _, e := range subset {
		before := e.DrawingBounds()
		e.SetBounds(e.Bounds().Add(d))
		l.damage(before.Union(e.DrawingBounds()))
	}
}

// HasIntersectingFilters reports whether an element that reads the pixels
// beneath it overlaps r.
func (l *List) HasIntersectingFilters(r image.Rectangle) bool {
	for _, e := range l.elems {
		if e.NeedsPixels() && e.DrawingBounds().Overlaps(r) {
			return true
		}
	}
	return false
}

// Draw paints every element overlapping clip, bottom to top.
func (l *List) Draw(dst *image.RGBA, bg image.Image, mode shape.RenderMode, clip image.Rectangle) {
	for _, e := range l.elems {
		if e.DrawingBounds().Overlaps(clip) {
			e.Draw(dst, bg, mode, clip)
		}
	}
}
