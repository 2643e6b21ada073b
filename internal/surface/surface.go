// Package surface is the editing canvas: a background image, the elements
// drawn over it, their selection and the undo history.
package surface

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/scene"
	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/undo"
)

// ErrClosed is returned by operations on a closed surface.
var ErrClosed = errors.New("surface: closed")

// Colors are the canvas decoration colours.
type Colors struct {
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	HandleFill   color.RGBA
	HandleBorder color.RGBA
	Selection1   color.RGBA
	Selection2   color.RGBA
}

// DefaultColors matches the default theme.
func DefaultColors() Colors {
	return Colors{
		CheckerLight: color.RGBA{220, 220, 220, 255},
		CheckerDark:  color.RGBA{192, 192, 192, 255},
		HandleFill:   color.RGBA{255, 255, 255, 255},
		HandleBorder: color.RGBA{0, 0, 0, 255},
		Selection1:   color.RGBA{255, 255, 255, 255},
		Selection2:   color.RGBA{0, 0, 0, 255},
	}
}

// Option configures a Surface.
type Option func(*Surface)

// WithStyle sets the style applied to new elements.
func WithStyle(d shape.Defaults) Option { return func(s *Surface) { s.style = d } }

// WithCounterStart sets the number of the first step label.
func WithCounterStart(n int) Option { return func(s *Surface) { s.counterStart = n } }

// WithZoom sets the initial zoom.
func WithZoom(z geom.Zoom) Option { return func(s *Surface) { s.zoom = z } }

// WithColors sets the canvas decoration colours.
func WithColors(c Colors) Option { return func(s *Surface) { s.comp.colors = c } }

// ContextMenuRequest is raised by a right click.
type ContextMenuRequest struct {
	// Elements is the selection, or the element under the pointer when
	// nothing is selected. It may be empty.
	Elements []shape.Element
	// At is the pointer position in view coordinates.
	At image.Point
}

// Surface owns the background, the elements and the history of one image.
// It is not safe for concurrent use; the host drives it from one goroutine.
type Surface struct {
	bg           *image.RGBA
	list         *scene.List
	sel          *scene.Selection
	undo         *undo.Stack
	zoom         geom.Zoom
	origin       image.Point
	mode         shape.DrawingMode
	style        shape.Defaults
	counterStart int
	stepLabels   []*shape.StepLabel

	comp *Compositor
	ctl  *Controller

	editing    TextEditable
	editingNew bool
	editStart  string

	crop  shape.Element
	paste pasteState

	menuSubs []func(ContextMenuRequest)
	closed   bool
}

// New returns a surface over a copy of bg rebased to the origin.
func New(bg image.Image, opts ...Option) *Surface {
	s := &Surface{
		list:         scene.NewList(),
		undo:         undo.New(),
		zoom:         geom.Unity,
		style:        shape.DefaultStyle(),
		counterStart: 1,
	}
	s.sel = s.list.Selection()
	s.comp = &Compositor{s: s, colors: DefaultColors()}
	s.ctl = &Controller{s: s}
	s.setBackground(bg)
	for _, o := range opts {
		o(s)
	}
	s.sel.SetCheckpointer(s)
	s.list.SetInvalidator(s.invalidate)
	s.list.Subscribe(s.listChanged)
	return s
}

func (s *Surface) setBackground(bg image.Image) {
	if bg == nil {
		s.bg = image.NewRGBA(image.Rect(0, 0, 1, 1))
		return
	}
	b := bg.Bounds()
	img := image.NewRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(img, img.Bounds(), bg, b.Min, draw.Src)
	s.bg = img
}

func (s *Surface) listChanged(ev scene.ListEvent) {
	if ev.Kind != scene.Added {
		return
	}
	for _, e := range ev.Elements {
		e.SetParent(s)
		if sl, ok := e.(*shape.StepLabel); ok && !s.registered(sl) {
			s.stepLabels = append(s.stepLabels, sl)
		}
	}
}

func (s *Surface) registered(sl *shape.StepLabel) bool {
	for _, x := range s.stepLabels {
		if x == sl {
			return true
		}
	}
	return false
}

// forget drops released step labels from the numbering order.
func (s *Surface) forget(elems []shape.Element) {
	for _, e := range elems {
		for i, x := range s.stepLabels {
			if shape.Element(x) == e {
				s.stepLabels = append(s.stepLabels[:i], s.stepLabels[i+1:]...)
				break
			}
		}
	}
}

// StepLabelNumber returns the number shown by stop: the counter start plus
// the step labels on the surface registered before it.
func (s *Surface) StepLabelNumber(stop shape.Element) int {
	n := s.counterStart
	for _, sl := range s.stepLabels {
		if shape.Element(sl) == stop {
			break
		}
		if s.list.Contains(sl) {
			n++
		}
	}
	return n
}

func (s *Surface) CounterStart() int { return s.counterStart }

// SetCounterStart renumbers every step label.
func (s *Surface) SetCounterStart(n int) {
	if n == s.counterStart {
		return
	}
	s.counterStart = n
	for _, sl := range s.stepLabels {
		if s.list.Contains(sl) {
			s.invalidate(sl.DrawingBounds())
		}
	}
}

// invalidate records an image-space region as needing repaint, widened by
// the size of adorner handles at the current zoom.
func (s *Surface) invalidate(r image.Rectangle) {
	m := s.zoom.UnscaleLen(shape.HandleSize) + 2
	s.comp.Invalidate(r.Inset(-m))
}

func (s *Surface) Background() *image.RGBA     { return s.bg }
func (s *Surface) Elements() *scene.List       { return s.list }
func (s *Surface) Selection() *scene.Selection { return s.sel }
func (s *Surface) History() *undo.Stack        { return s.undo }
func (s *Surface) Compositor() *Compositor     { return s.comp }
func (s *Surface) Controller() *Controller     { return s.ctl }
func (s *Surface) Style() shape.Defaults       { return s.style }
func (s *Surface) SetStyle(d shape.Defaults)   { s.style = d }

// Size returns the background size in image pixels.
func (s *Surface) Size() image.Point { return s.bg.Bounds().Size() }

func (s *Surface) DrawingMode() shape.DrawingMode { return s.mode }

// SetDrawingMode selects what the next creation gesture makes. Leaving the
// crop mode drops a pending crop region.
func (s *Surface) SetDrawingMode(m shape.DrawingMode) {
	if m == s.mode {
		return
	}
	s.ctl.Cancel()
	s.EndTextEdit()
	if s.mode == shape.ModeCrop {
		s.CancelCrop()
	}
	s.mode = m
	if m != shape.ModeNone {
		s.sel.DeselectAll()
	}
}

// Zoom returns the current zoom factor.
func (s *Surface) Zoom() geom.Zoom { return s.zoom }

func (s *Surface) SetZoom(z geom.Zoom) {
	z = geom.NewZoom(z.Num, z.Den)
	if z == s.zoom {
		return
	}
	s.zoom = z
	s.comp.InvalidateAll()
}

func (s *Surface) ZoomIn()  { s.SetZoom(s.zoom.In()) }
func (s *Surface) ZoomOut() { s.SetZoom(s.zoom.Out()) }

// Origin is the view position of the image's top-left corner.
func (s *Surface) Origin() image.Point { return s.origin }

func (s *Surface) SetOrigin(p image.Point) {
	if p == s.origin {
		return
	}
	s.origin = p
	s.comp.InvalidateAll()
}

// ToImageCoordinates converts a view point into exact image coordinates.
func (s *Surface) ToImageCoordinates(p image.Point) geom.Point {
	return s.zoom.ToImage(p.Sub(s.origin))
}

// ToSurfaceCoordinates converts exact image coordinates into a view point.
func (s *Surface) ToSurfaceCoordinates(p geom.Point) image.Point {
	return s.zoom.ToView(p).Add(s.origin)
}

// ImagePoint returns the image pixel under the view point p.
func (s *Surface) ImagePoint(p image.Point) image.Point {
	return s.ToImageCoordinates(p).Floor()
}

// ViewRect returns the view rectangle covering the image rectangle r.
func (s *Surface) ViewRect(r image.Rectangle) image.Rectangle {
	return s.zoom.ToViewRect(r).Add(s.origin)
}

// handleTolerance is half a handle in image pixels.
func (s *Surface) handleTolerance() int {
	return s.zoom.UnscaleLen(shape.HandleSize / 2)
}

// AddElement puts e on top of the surface as one undoable step.
func (s *Surface) AddElement(e shape.Element) {
	if s.closed || e == nil {
		return
	}
	s.list.Add(e)
	s.undo.Do(&addElementsMemento{s: s, elems: []shape.Element{e}}, false)
}

// RemoveElements removes elems as one undoable step. The history keeps the
// elements alive until that step is discarded. A pending crop region among
// elems is cancelled instead and leaves no history.
func (s *Surface) RemoveElements(elems []shape.Element) {
	var present []shape.Element
	for _, e := range elems {
		if s.crop != nil && e == s.crop {
			s.CancelCrop()
			continue
		}
		if s.list.Contains(e) {
			present = append(present, e)
		}
	}
	if len(present) == 0 {
		return
	}
	if s.editing != nil {
		for _, e := range present {
			if e == shape.Element(s.editing) {
				s.EndTextEdit()
				break
			}
		}
	}
	s.undo.Do(s.detach(present), false)
}

// DeleteSelected removes the selection as one undoable step.
func (s *Surface) DeleteSelected() {
	s.RemoveElements(s.sel.Elements())
}

// SelectAll selects every element.
func (s *Surface) SelectAll() { s.sel.SelectAll() }

// NudgeSelection moves the selection; consecutive nudges undo together.
func (s *Surface) NudgeSelection(dx, dy int) {
	if s.sel.Len() == 0 {
		return
	}
	s.sel.MakeBoundsChangeUndoable(true)
	s.sel.MoveBy(dx, dy)
}

func (s *Surface) reorder(op func([]shape.Element) bool) {
	elems := s.sel.Elements()
	if len(elems) == 0 {
		return
	}
	before := s.list.Elements()
	if op(elems) {
		s.undo.Do(&reorderMemento{s: s, order: before}, false)
	}
}

func (s *Surface) PullSelectionUp()       { s.reorder(s.list.PullUp) }
func (s *Surface) PushSelectionDown()     { s.reorder(s.list.PushDown) }
func (s *Surface) PullSelectionToTop()    { s.reorder(s.list.PullToTop) }
func (s *Surface) PushSelectionToBottom() { s.reorder(s.list.PushToBottom) }

func (s *Surface) CanPullSelectionUp() bool   { return s.list.CanPullUp(s.sel.Elements()) }
func (s *Surface) CanPushSelectionDown() bool { return s.list.CanPushDown(s.sel.Elements()) }

// MakeBoundsChangeUndoable records the geometry of elems as one undo step.
// With allowMerge, it folds into a directly preceding mergeable step on the
// same elements.
func (s *Surface) MakeBoundsChangeUndoable(elems []shape.Element, allowMerge bool) {
	m := newBoundsChange(s, elems)
	m.mergeable = allowMerge
	s.undo.Do(m, allowMerge)
}

// MakeFieldChangeUndoable records one field of elems as one undo step.
func (s *Surface) MakeFieldChangeUndoable(elems []shape.Element, key shape.FieldKey) {
	s.undo.Do(newFieldChange(s, elems, key), true)
}

func (s *Surface) Undo() {
	s.ctl.Cancel()
	s.EndTextEdit()
	s.undo.Undo()
}

func (s *Surface) Redo() {
	s.ctl.Cancel()
	s.EndTextEdit()
	s.undo.Redo()
}

// OnContextMenu registers fn for right-click requests and returns its
// cancel function.
func (s *Surface) OnContextMenu(fn func(ContextMenuRequest)) func() {
	s.menuSubs = append(s.menuSubs, fn)
	idx := len(s.menuSubs) - 1
	return func() { s.menuSubs[idx] = nil }
}

func (s *Surface) requestContextMenu(p, view image.Point) {
	elems := s.sel.Elements()
	if len(elems) == 0 {
		if e := s.list.ClickableElementAt(p); e != nil {
			elems = []shape.Element{e}
		}
	}
	req := ContextMenuRequest{Elements: elems, At: view}
	for _, fn := range s.menuSubs {
		if fn != nil {
			fn(req)
		}
	}
}

// Close releases the history, the elements and the buffers. The surface
// cannot be used afterwards.
func (s *Surface) Close() {
	if s.closed {
		return
	}
	s.ctl.Cancel()
	s.EndTextEdit()
	s.undo.Clear()
	for _, e := range s.list.Elements() {
		s.list.Remove(e)
		e.Release()
	}
	s.stepLabels = nil
	s.comp.release()
	s.closed = true
}

func (s *Surface) Closed() bool { return s.closed }
