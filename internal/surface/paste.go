package surface

import (
	"errors"
	"image"

	"github.com/google/uuid"

	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/scene"
	"github.com/example/annotator/internal/shape"
)

// ErrUnsupportedPayload is returned when a payload carries nothing the
// surface can place.
var ErrUnsupportedPayload = errors.New("surface: unsupported payload")

// pasteOffset shifts each repeated paste of the same payload.
const pasteOffset = 10

// Payload is clipboard or drag-and-drop content. ID identifies the content
// so repeated pastes of it can be told apart from a new copy.
type Payload interface {
	ID() uuid.UUID
	ContainsElements() bool
	Elements() []shape.Element
	ContainsImage() bool
	Image() image.Image
	ContainsText() bool
	Text() string
}

type pasteState struct {
	id    uuid.UUID
	count int
}

// Paste places the payload on the surface as one undoable step and selects
// the result. at is an image position; nil keeps element positions and
// centres images and text on the background. Pasting the same payload
// again offsets it so copies do not stack.
func (s *Surface) Paste(p Payload, at *image.Point) ([]shape.Element, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if p == nil {
		return nil, ErrUnsupportedPayload
	}
	if p.ID() == s.paste.id && s.paste.id != uuid.Nil {
		s.paste.count++
	} else {
		s.paste = pasteState{id: p.ID()}
	}
	off := pasteOffset * s.paste.count
	return s.place(p, at, image.Pt(off, off))
}

// Drop places the payload at the view point where it was released.
func (s *Surface) Drop(p Payload, view image.Point) ([]shape.Element, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if p == nil {
		return nil, ErrUnsupportedPayload
	}
	s.paste = pasteState{}
	at := s.ImagePoint(view)
	return s.place(p, &at, image.Point{})
}

func (s *Surface) place(p Payload, at *image.Point, off image.Point) ([]shape.Element, error) {
	var elems []shape.Element
	switch {
	case p.ContainsElements() && len(p.Elements()) > 0:
		for _, e := range p.Elements() {
			elems = append(elems, e.Clone())
		}
		if at != nil {
			u := elems[0].Bounds()
			for _, e := range elems[1:] {
				u = u.Union(e.Bounds())
			}
			off = off.Add(at.Sub(u.Min))
		}
	case p.ContainsImage() && p.Image() != nil:
		b := shape.NewBitmap(p.Image())
		if !b.FinalizeContent() {
			return nil, ErrUnsupportedPayload
		}
		b.SetBounds(centredOn(b.Bounds(), s.anchor(at)))
		elems = append(elems, b)
	case p.ContainsText() && p.Text() != "":
		t := shape.NewText(s.style)
		c := s.anchor(at)
		t.SetBounds(image.Rectangle{Min: c, Max: c})
		t.SetText(p.Text())
		if at == nil {
			t.SetBounds(centredOn(t.Bounds(), c))
		}
		elems = append(elems, t)
	default:
		return nil, ErrUnsupportedPayload
	}

	s.ctl.Cancel()
	s.EndTextEdit()
	s.sel.DeselectAll()
	for _, e := range elems {
		if off != (image.Point{}) {
			scene.TransformElement(e, geom.Translate(float64(off.X), float64(off.Y)))
		}
		e.SetStatus(shape.StatusIdle)
		s.list.Add(e)
	}
	s.undo.Do(&addElementsMemento{s: s, elems: elems}, false)
	for _, e := range elems {
		s.sel.Select(e)
	}
	return elems, nil
}

// anchor is at, or the centre of the background.
func (s *Surface) anchor(at *image.Point) image.Point {
	if at != nil {
		return *at
	}
	b := s.bg.Bounds()
	return b.Min.Add(b.Size().Div(2))
}

func centredOn(r image.Rectangle, c image.Point) image.Rectangle {
	return r.Sub(r.Min).Add(c.Sub(r.Size().Div(2)))
}
