package surface

import (
	"image"

	"github.com/example/annotator/internal/shape"
)

// State is the gesture the controller is tracking.
type State int

const (
	Idle State = iota
	CreatingElement
	DraggingElement
	DraggingSelection
	AdornerActive
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CreatingElement:
		return "creating"
	case DraggingElement:
		return "dragging element"
	case DraggingSelection:
		return "dragging selection"
	case AdornerActive:
		return "adorner"
	}
	return "unknown"
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Modifiers are the keyboard modifiers held during a pointer event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
)

const (
	minElementSize     = 5
	defaultElementSize = 25
)

// Controller turns pointer gestures in view coordinates into edits.
type Controller struct {
	s         *Surface
	state     State
	down      bool
	mods      Modifiers
	anchor    image.Point
	candidate shape.Element
	adorner   shape.Adorner
	creating  shape.Element
	// pending holds the adorner owner's geometry from pointer-down until the
	// first move commits it to history.
	pending *boundsChangeMemento
	// moved is set once the first move of a drag has opened its checkpoint.
	moved bool
}

func (c *Controller) State() State { return c.state }

// PointerDown starts a gesture.
func (c *Controller) PointerDown(view image.Point, b Button, m Modifiers) {
	s := c.s
	if s.closed {
		return
	}
	p := s.ImagePoint(view)
	if b == ButtonRight {
		s.requestContextMenu(p, view)
		return
	}
	if b != ButtonLeft {
		return
	}
	if s.editing != nil && !s.editing.HitTest(p) {
		s.EndTextEdit()
	}
	c.reset()
	c.down = true
	c.mods = m
	c.anchor = p

	if a := c.adornerAt(p); a != nil {
		c.pending = newBoundsChange(s, []shape.Element{a.Owner()})
		before := a.Owner().DrawingBounds()
		a.MouseDown(p, s.handleTolerance())
		s.invalidate(before.Union(a.Owner().DrawingBounds()))
		c.adorner = a
		c.state = AdornerActive
		return
	}

	if s.mode == shape.ModeNone {
		c.candidate = s.list.ClickableElementAt(p)
		return
	}

	if s.mode == shape.ModeCrop && s.crop != nil {
		s.CancelCrop()
	}
	e := shape.New(s.mode, s.style)
	if e == nil {
		return
	}
	e.SetParent(s)
	if !e.MouseDown(p) {
		e.SetBounds(image.Rectangle{Min: p, Max: p})
	}
	s.sel.DeselectAll()
	s.list.Add(e)
	s.sel.Select(e)
	c.creating = e
	c.state = CreatingElement
}

func (c *Controller) adornerAt(p image.Point) shape.Adorner {
	tol := c.s.handleTolerance()
	sel := c.s.sel.Elements()
	for i := len(sel) - 1; i >= 0; i-- {
		for _, a := range sel[i].Adorners() {
			if a.HitTest(p, tol) {
				return a
			}
		}
	}
	return nil
}

// PointerMove continues a gesture. Moves without a held button are ignored.
func (c *Controller) PointerMove(view image.Point) {
	if !c.down {
		return
	}
	s := c.s
	p := s.ImagePoint(view)
	if p == c.anchor {
		return
	}
	switch c.state {
	case AdornerActive:
		c.commitAdorner()
		owner := c.adorner.Owner()
		before := owner.DrawingBounds()
		c.adorner.MouseMove(p)
		s.invalidate(before.Union(owner.DrawingBounds()))
	case CreatingElement:
		before := c.creating.DrawingBounds()
		c.creating.MouseMove(p)
		s.invalidate(before.Union(c.creating.DrawingBounds()))
	default:
		if c.candidate == nil {
			return
		}
		if !c.moved {
			if c.candidate.Selected() {
				c.state = DraggingSelection
				s.sel.MakeBoundsChangeUndoable(false)
			} else {
				c.state = DraggingElement
				s.MakeBoundsChangeUndoable([]shape.Element{c.candidate}, false)
			}
			c.moved = true
		}
		d := p.Sub(c.anchor)
		if c.state == DraggingSelection {
			s.sel.MoveBy(d.X, d.Y)
		} else {
			s.list.MoveBy([]shape.Element{c.candidate}, d.X, d.Y)
		}
	}
	c.anchor = p
}

// PointerUp ends a gesture.
func (c *Controller) PointerUp(view image.Point) {
	if !c.down {
		return
	}
	s := c.s
	p := s.ImagePoint(view)
	switch c.state {
	case AdornerActive:
		if p != c.anchor {
			c.commitAdorner()
		}
		owner := c.adorner.Owner()
		before := owner.DrawingBounds()
		c.adorner.MouseUp(p)
		s.invalidate(before.Union(owner.DrawingBounds()))
	case CreatingElement:
		e := c.creating
		before := e.DrawingBounds()
		if p != c.anchor {
			e.MouseMove(p)
		}
		e.MouseUp(p)
		s.invalidate(before.Union(e.DrawingBounds()))
		c.finishCreation(e)
	default:
		if !c.moved {
			target := s.list.ClickableElementAt(p)
			if c.mods&(ModShift|ModControl) != 0 {
				if target != nil {
					s.sel.Toggle(target)
				}
			} else {
				s.sel.SelectOnly(target)
			}
		}
	}
	c.reset()
}

// commitAdorner records the pre-gesture geometry once the adorner moves.
func (c *Controller) commitAdorner() {
	if c.moved || c.pending == nil {
		return
	}
	c.s.undo.Do(c.pending, false)
	c.pending = nil
	c.moved = true
}

func (c *Controller) finishCreation(e shape.Element) {
	s := c.s
	if !e.FinalizeContent() {
		s.list.Remove(e)
		e.Release()
		return
	}
	if b := e.Bounds(); b.Dx() < minElementSize && b.Dy() < minElementSize {
		e.SetBounds(image.Rectangle{Min: b.Min, Max: b.Min.Add(image.Pt(defaultElementSize, defaultElementSize))})
		s.invalidate(e.DrawingBounds())
	}
	e.SetStatus(shape.StatusIdle)
	s.sel.Select(e)
	switch {
	case e.Mode() == shape.ModeCrop:
		s.crop = e
	case e.DefaultEditMode() == shape.EditText:
		if t, ok := e.(TextEditable); ok {
			s.beginTextEdit(t, true)
			return
		}
		fallthrough
	default:
		s.undo.Do(&addElementsMemento{s: s, elems: []shape.Element{e}}, false)
	}
}

// Cancel aborts the gesture in progress. An element being created is
// removed without leaving a history entry.
func (c *Controller) Cancel() {
	if c.state == CreatingElement && c.creating != nil {
		c.s.list.Remove(c.creating)
		c.creating.Release()
	}
	if c.state == AdornerActive && c.adorner != nil {
		c.adorner.MouseUp(c.anchor)
	}
	c.reset()
}

func (c *Controller) reset() {
	c.state = Idle
	c.down = false
	c.moved = false
	c.mods = 0
	c.candidate = nil
	c.adorner = nil
	c.creating = nil
	c.pending = nil
}
