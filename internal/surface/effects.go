package surface

import (
	"errors"
	"fmt"
	"image"

	"github.com/example/annotator/internal/render"
	"github.com/example/annotator/internal/shape"
)

// ErrNoCrop is returned by ConfirmCrop when no crop region is pending.
var ErrNoCrop = errors.New("surface: no crop region")

// ApplyEffect replaces the background with the effect's output and moves
// every element along with the pixels, as one undoable step. On error the
// surface is unchanged.
func (s *Surface) ApplyEffect(e render.Effect) error {
	if s.closed {
		return ErrClosed
	}
	s.ctl.Cancel()
	s.EndTextEdit()
	res, err := e.Apply(s.bg)
	if err != nil {
		return fmt.Errorf("apply %s: %w", e.Name(), err)
	}
	m := newBackgroundChange(s)
	s.bg = res.Image
	s.list.Transform(res.Matrix)
	s.undo.Do(m, false)
	s.comp.InvalidateAll()
	return nil
}

// Crop keeps only r of the background, as one undoable step.
func (s *Surface) Crop(r image.Rectangle) error {
	return s.ApplyEffect(render.Crop{Rect: r})
}

// PendingCrop returns the crop region being edited, if any.
func (s *Surface) PendingCrop() (image.Rectangle, bool) {
	if s.crop == nil {
		return image.Rectangle{}, false
	}
	return s.crop.Bounds(), true
}

// ConfirmCrop applies the pending crop region clipped to the image.
func (s *Surface) ConfirmCrop() error {
	if s.crop == nil {
		return ErrNoCrop
	}
	r := s.crop.Bounds().Intersect(s.bg.Bounds())
	s.CancelCrop()
	s.mode = shape.ModeNone
	return s.Crop(r)
}

// CancelCrop drops the pending crop region.
func (s *Surface) CancelCrop() {
	c := s.crop
	if c == nil {
		return
	}
	s.crop = nil
	s.list.Remove(c)
	c.Release()
}
