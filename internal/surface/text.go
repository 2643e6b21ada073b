package surface

import (
	"github.com/example/annotator/internal/shape"
)

// TextEditable is an element whose text is typed in place.
type TextEditable interface {
	shape.Element
	Text() string
	SetText(s string)
	InsertRune(r rune)
	Backspace() bool
	Editing() bool
	SetEditing(v bool)
}

// EditingText returns the element receiving typed text, or nil.
func (s *Surface) EditingText() TextEditable { return s.editing }

// EditText starts typing into an element already on the surface.
func (s *Surface) EditText(e shape.Element) bool {
	t, ok := e.(TextEditable)
	if !ok || !s.list.Contains(e) || s.closed {
		return false
	}
	if s.editing == t {
		return true
	}
	s.EndTextEdit()
	s.sel.SelectOnly(e)
	s.beginTextEdit(t, false)
	return true
}

func (s *Surface) beginTextEdit(t TextEditable, isNew bool) {
	s.editing = t
	s.editingNew = isNew
	s.editStart = t.Text()
	t.SetEditing(true)
	s.invalidate(t.DrawingBounds())
}

// TypeRune appends r to the text being edited. A newline starts a new line.
func (s *Surface) TypeRune(r rune) bool {
	if s.editing == nil {
		return false
	}
	before := s.editing.DrawingBounds()
	s.editing.InsertRune(r)
	s.invalidate(before.Union(s.editing.DrawingBounds()))
	return true
}

// Backspace deletes the last rune of the text being edited.
func (s *Surface) Backspace() bool {
	if s.editing == nil {
		return false
	}
	before := s.editing.DrawingBounds()
	if !s.editing.Backspace() {
		return false
	}
	s.invalidate(before.Union(s.editing.DrawingBounds()))
	return true
}

// EndTextEdit commits the text being edited. A new element becomes one
// undoable addition, or disappears without a trace when left empty. An
// edit to an existing element records its previous text.
func (s *Surface) EndTextEdit() {
	t := s.editing
	if t == nil {
		return
	}
	s.editing = nil
	t.SetEditing(false)
	s.invalidate(t.DrawingBounds())

	if s.editingNew {
		if t.Text() == "" {
			s.list.Remove(t)
			t.Release()
			return
		}
		s.undo.Do(&addElementsMemento{s: s, elems: []shape.Element{t}}, false)
		return
	}
	if t.Text() == s.editStart {
		return
	}
	m := newFieldChange(s, []shape.Element{t}, shape.FieldText)
	m.values[0] = s.editStart
	s.undo.Do(m, false)
	if t.Text() == "" {
		s.undo.Do(s.detach([]shape.Element{t}), false)
	}
}

// CancelTextEdit drops the typing session: the text reverts and a new
// element is removed.
func (s *Surface) CancelTextEdit() {
	t := s.editing
	if t == nil {
		return
	}
	s.editing = nil
	t.SetEditing(false)
	before := t.DrawingBounds()
	if s.editingNew {
		s.list.Remove(t)
		t.Release()
		s.invalidate(before)
		return
	}
	t.SetText(s.editStart)
	s.invalidate(before.Union(t.DrawingBounds()))
}
