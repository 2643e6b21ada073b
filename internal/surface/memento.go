package surface

import (
	"image"
	"sort"

	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/undo"
)

// addElementsMemento undoes the addition of elems. The elements are live on
// the surface, so it owns nothing.
type addElementsMemento struct {
	s     *Surface
	elems []shape.Element
}

func (m *addElementsMemento) Restore() undo.Memento   { return m.s.detach(m.elems) }
func (m *addElementsMemento) Merge(undo.Memento) bool { return false }
func (m *addElementsMemento) Release()               {}

// detach removes elems from the list and returns the memento that puts them
// back. The memento owns the removed elements.
func (s *Surface) detach(elems []shape.Element) *deleteElementsMemento {
	type placed struct {
		e   shape.Element
		idx int
	}
	var ps []placed
	for _, e := range elems {
		if i := s.list.IndexOf(e); i >= 0 {
			ps = append(ps, placed{e, i})
		}
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].idx < ps[j].idx })
	m := &deleteElementsMemento{s: s}
	for i := len(ps) - 1; i >= 0; i-- {
		s.list.Remove(ps[i].e)
	}
	for _, p := range ps {
		m.elems = append(m.elems, p.e)
		m.idx = append(m.idx, p.idx)
	}
	return m
}

// deleteElementsMemento re-inserts removed elements at their former
// indices. It owns them until restored or released.
type deleteElementsMemento struct {
	s     *Surface
	elems []shape.Element
	idx   []int
}

func (m *deleteElementsMemento) Restore() undo.Memento {
	for i, e := range m.elems {
		m.s.list.Insert(m.idx[i], e)
	}
	back := &addElementsMemento{s: m.s, elems: m.elems}
	m.elems = nil
	return back
}

func (m *deleteElementsMemento) Merge(undo.Memento) bool { return false }

func (m *deleteElementsMemento) Release() {
	m.s.forget(m.elems)
	for _, e := range m.elems {
		e.Release()
	}
	m.elems = nil
}

type pointHolder interface {
	Points() []image.Point
	SetPoints(pts []image.Point)
}

// geometry is everything about an element's placement an undo step needs.
type geometry struct {
	bounds image.Rectangle
	points []image.Point
	tail   *image.Point
	pixels *image.RGBA
}

func captureGeometry(e shape.Element) geometry {
	g := geometry{bounds: e.Bounds()}
	if ph, ok := e.(pointHolder); ok {
		g.points = ph.Points()
	}
	switch x := e.(type) {
	case *shape.SpeechBubble:
		t := x.Tail()
		g.tail = &t
	case *shape.Bitmap:
		g.pixels = x.Image()
	}
	return g
}

func (g geometry) apply(e shape.Element) {
	if ph, ok := e.(pointHolder); ok && len(g.points) > 0 {
		ph.SetPoints(g.points)
	} else {
		e.SetBounds(g.bounds)
	}
	switch x := e.(type) {
	case *shape.SpeechBubble:
		if g.tail != nil {
			x.SetTail(*g.tail)
		}
	case *shape.Bitmap:
		if g.pixels != nil {
			x.SetImage(g.pixels)
		}
	}
}

// boundsChangeMemento restores the geometry of a fixed set of elements.
// Only mergeable entries combine, so a nudge never folds into a drag.
type boundsChangeMemento struct {
	s         *Surface
	elems     []shape.Element
	geoms     []geometry
	mergeable bool
}

func newBoundsChange(s *Surface, elems []shape.Element) *boundsChangeMemento {
	m := &boundsChangeMemento{s: s, elems: append([]shape.Element(nil), elems...)}
	for _, e := range m.elems {
		m.geoms = append(m.geoms, captureGeometry(e))
	}
	return m
}

func (m *boundsChangeMemento) Restore() undo.Memento {
	back := newBoundsChange(m.s, m.elems)
	back.mergeable = m.mergeable
	for i, e := range m.elems {
		before := e.DrawingBounds()
		m.geoms[i].apply(e)
		m.s.invalidate(before.Union(e.DrawingBounds()))
	}
	return back
}

// Merge absorbs a later change of exactly the same elements; the receiver
// already holds the older geometry.
func (m *boundsChangeMemento) Merge(next undo.Memento) bool {
	o, ok := next.(*boundsChangeMemento)
	return ok && m.mergeable && o.mergeable && sameElements(m.elems, o.elems)
}

func (m *boundsChangeMemento) Release() {}

func sameElements(a, b []shape.Element) bool {
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

// fieldChangeMemento restores one field of a set of elements.
type fieldChangeMemento struct {
	s      *Surface
	key    shape.FieldKey
	elems  []shape.Element
	values []any
}

func newFieldChange(s *Surface, elems []shape.Element, key shape.FieldKey) *fieldChangeMemento {
	m := &fieldChangeMemento{s: s, key: key, elems: append([]shape.Element(nil), elems...)}
	for _, e := range m.elems {
		v, _ := e.Field(key)
		m.values = append(m.values, v)
	}
	return m
}

func (m *fieldChangeMemento) Restore() undo.Memento {
	back := newFieldChange(m.s, m.elems, m.key)
	for i, e := range m.elems {
		before := e.DrawingBounds()
		e.SetField(m.key, m.values[i])
		m.s.invalidate(before.Union(e.DrawingBounds()))
	}
	return back
}

func (m *fieldChangeMemento) Merge(next undo.Memento) bool {
	o, ok := next.(*fieldChangeMemento)
	return ok && o.key == m.key && sameElements(m.elems, o.elems)
}

func (m *fieldChangeMemento) Release() {}

// backgroundChangeMemento restores the background image together with the
// geometry of every element, which an effect may have transformed.
type backgroundChangeMemento struct {
	s     *Surface
	bg    *image.RGBA
	elems []shape.Element
	geoms []geometry
}

func newBackgroundChange(s *Surface) *backgroundChangeMemento {
	elems := s.list.Elements()
	m := &backgroundChangeMemento{s: s, bg: s.bg, elems: elems}
	for _, e := range elems {
		m.geoms = append(m.geoms, captureGeometry(e))
	}
	return m
}

func (m *backgroundChangeMemento) Restore() undo.Memento {
	back := newBackgroundChange(m.s)
	m.s.bg = m.bg
	for i, e := range m.elems {
		m.geoms[i].apply(e)
	}
	m.s.comp.InvalidateAll()
	return back
}

func (m *backgroundChangeMemento) Merge(undo.Memento) bool { return false }

func (m *backgroundChangeMemento) Release() { m.bg = nil }

// reorderMemento restores a previous z-order.
type reorderMemento struct {
	s     *Surface
	order []shape.Element
}

func (m *reorderMemento) Restore() undo.Memento {
	back := &reorderMemento{s: m.s, order: m.s.list.Elements()}
	m.s.list.SetOrder(m.order)
	return back
}

func (m *reorderMemento) Merge(undo.Memento) bool { return false }
func (m *reorderMemento) Release()                {}
