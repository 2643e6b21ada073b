package scene

import (
	"image"
	"image/color"

	"github.com/example/annotator/internal/shape"
)

// Checkpointer records the state of elements before a mutation so the
// mutation can be undone. The surface provides it.
type Checkpointer interface {
	MakeBoundsChangeUndoable(elems []shape.Element, allowMerge bool)
	MakeFieldChangeUndoable(elems []shape.Element, key shape.FieldKey)
}

// Selection is the ordered subset of a List that is selected.
type Selection struct {
	list    *List
	members []shape.Element
	subs    observers[[]shape.Element]
	cp      Checkpointer
}

// SetCheckpointer installs the undo hook used by the mutators.
func (s *Selection) SetCheckpointer(cp Checkpointer) { s.cp = cp }

// Subscribe registers fn to receive the full selection after every change.
func (s *Selection) Subscribe(fn func([]shape.Element)) func() { return s.subs.add(fn) }

func (s *Selection) Len() int { return len(s.members) }

// Elements returns the members in the order they were selected.
func (s *Selection) Elements() []shape.Element {
	return append([]shape.Element(nil), s.members...)
}

func (s *Selection) Contains(e shape.Element) bool {
	for _, m := range s.members {
		if m == e {
			return true
		}
	}
	return false
}

// Bounds returns the union of the members' bounds.
func (s *Selection) Bounds() image.Rectangle {
	var r image.Rectangle
	for _, e := range s.members {
		r = r.Union(e.Bounds())
	}
	return r
}

func (s *Selection) changed(damage image.Rectangle) {
	s.list.damage(damage)
	s.subs.notify(s.Elements())
}

func (s *Selection) add(e shape.Element) bool {
	if e == nil || s.Contains(e) || !s.list.Contains(e) {
		return false
	}
	s.members = append(s.members, e)
	e.SetSelected(true)
	return true
}

func (s *Selection) drop(e shape.Element) bool {
	for i, m := range s.members {
		if m == e {
			s.members = append(s.members[:i], s.members[i+1:]...)
			e.SetSelected(false)
			return true
		}
	}
	return false
}

// Select adds e. Selecting a member or a non-list element does nothing.
func (s *Selection) Select(e shape.Element) {
	if s.add(e) {
		s.changed(e.DrawingBounds())
	}
}

func (s *Selection) Deselect(e shape.Element) {
	if s.drop(e) {
		s.changed(e.DrawingBounds())
	}
}

// Toggle flips membership of e.
func (s *Selection) Toggle(e shape.Element) {
	if s.Contains(e) {
		s.Deselect(e)
	} else {
		s.Select(e)
	}
}

// SelectOnly replaces the selection with e, or clears it when e is nil.
func (s *Selection) SelectOnly(e shape.Element) {
	if len(s.members) == 1 && s.members[0] == e {
		return
	}
	var r image.Rectangle
	changed := false
	for _, m := range s.Elements() {
		if m != e {
			r = r.Union(m.DrawingBounds())
			changed = s.drop(m) || changed
		}
	}
	if s.add(e) {
		r = r.Union(e.DrawingBounds())
		changed = true
	}
	if changed {
		s.changed(r)
	}
}

// SelectAll selects every list member, notifying once.
func (s *Selection) SelectAll() {
	var r image.Rectangle
	changed := false
	for _, e := range s.list.elems {
		if s.add(e) {
			r = r.Union(e.DrawingBounds())
			changed = true
		}
	}
	if changed {
		s.changed(r)
	}
}

// DeselectAll clears the selection, notifying once.
func (s *Selection) DeselectAll() {
	if len(s.members) == 0 {
		return
	}
	var r image.Rectangle
	for _, e := range s.Elements() {
		r = r.Union(e.DrawingBounds())
		s.drop(e)
	}
	s.changed(r)
}

// evict is called by the list when a member leaves it.
func (s *Selection) evict(e shape.Element) {
	if s.drop(e) {
		s.subs.notify(s.Elements())
	}
}

// MakeBoundsChangeUndoable opens an undo checkpoint over the current
// members. Call it once per gesture before the first mutation.
func (s *Selection) MakeBoundsChangeUndoable(allowMerge bool) {
	if s.cp != nil && len(s.members) > 0 {
		s.cp.MakeBoundsChangeUndoable(s.Elements(), allowMerge)
	}
}

// MakeFieldChangeUndoable opens an undo checkpoint over one field of the
// members that carry it.
func (s *Selection) MakeFieldChangeUndoable(key shape.FieldKey) {
	if s.cp == nil {
		return
	}
	var with []shape.Element
	for _, e := range s.members {
		if _, ok := e.Field(key); ok {
			with = append(with, e)
		}
	}
	if len(with) > 0 {
		s.cp.MakeFieldChangeUndoable(with, key)
	}
}

// MoveBy translates every member.
func (s *Selection) MoveBy(dx, dy int) {
	s.list.MoveBy(s.members, dx, dy)
}

func (s *Selection) setField(key shape.FieldKey, v any) {
	s.MakeFieldChangeUndoable(key)
	var r image.Rectangle
	for _, e := range s.members {
		before := e.DrawingBounds()
		if e.SetField(key, v) {
			r = r.Union(before).Union(e.DrawingBounds())
		}
	}
	s.list.damage(r)
}

// SetForegroundColor sets the line or text colour of every member and
// returns the colour applied.
func (s *Selection) SetForegroundColor(c color.RGBA) color.RGBA {
	s.setField(shape.FieldLineColor, c)
	return c
}

// SetBackgroundColor sets the fill colour of every member.
func (s *Selection) SetBackgroundColor(c color.RGBA) color.RGBA {
	s.setField(shape.FieldFillColor, c)
	return c
}

// IncreaseLineThickness adds delta to every member's line thickness, never
// going below zero. It returns the thickness of the first member that has one.
func (s *Selection) IncreaseLineThickness(delta int) int {
	s.MakeFieldChangeUndoable(shape.FieldLineThickness)
	result := 0
	first := true
	var r image.Rectangle
	for _, e := range s.members {
		v, ok := e.Field(shape.FieldLineThickness)
		if !ok {
			continue
		}
		n, _ := v.(int)
		n = max(n+delta, 0)
		before := e.DrawingBounds()
		e.SetField(shape.FieldLineThickness, n)
		r = r.Union(before).Union(e.DrawingBounds())
		if first {
			result, first = n, false
		}
	}
	s.list.damage(r)
	return result
}

// FlipShadow inverts the shadow of the first member that has one and
// applies that value to all members. It returns the value applied.
func (s *Selection) FlipShadow() bool {
	next, found := false, false
	for _, e := range s.members {
		if v, ok := e.Field(shape.FieldShadow); ok {
			b, _ := v.(bool)
			next, found = !b, true
			break
		}
	}
	if found {
		s.setField(shape.FieldShadow, next)
	}
	return next
}
