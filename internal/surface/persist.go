package surface

import (
	"fmt"
	"image/png"
	"io"
	"log"
	"sort"

	"github.com/example/annotator/internal/codec"
	"github.com/example/annotator/internal/shape"
)

// Save writes the elements and the step counter as a document.
func (s *Surface) Save(w io.Writer) error {
	if s.closed {
		return ErrClosed
	}
	s.EndTextEdit()
	// Encode fully before writing so a failure leaves w untouched.
	data, err := codec.Marshal(codec.Document{CounterStart: s.counterStart, Elements: s.list.Elements()})
	if err != nil {
		log.Printf("save elements: %v", err)
		return fmt.Errorf("save: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Load replaces the elements with those read from r and clears the
// history. On error the surface is left as it was.
func (s *Surface) Load(r io.Reader) error {
	if s.closed {
		return ErrClosed
	}
	doc, err := codec.Decode(r)
	if err != nil {
		log.Printf("load elements: %v", err)
		return fmt.Errorf("load: %w", err)
	}

	s.ctl.Cancel()
	s.CancelTextEdit()
	s.CancelCrop()
	s.undo.Clear()
	s.sel.DeselectAll()
	for _, e := range s.list.Elements() {
		s.list.Remove(e)
		e.Release()
	}
	s.stepLabels = nil
	if doc.CounterStart != 0 {
		s.counterStart = doc.CounterStart
	}

	stored := map[*shape.StepLabel]int{}
	for _, e := range doc.Elements {
		if sl, ok := e.(*shape.StepLabel); ok {
			stored[sl] = sl.Number()
		}
	}
	for _, e := range doc.Elements {
		s.list.Add(e)
	}
	sort.SliceStable(s.stepLabels, func(i, j int) bool {
		return stored[s.stepLabels[i]] < stored[s.stepLabels[j]]
	})
	s.comp.InvalidateAll()
	return nil
}

// SaveImage writes the annotated image as PNG.
func (s *Surface) SaveImage(w io.Writer) error {
	if s.closed {
		return ErrClosed
	}
	s.EndTextEdit()
	if err := png.Encode(w, s.comp.Export()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
