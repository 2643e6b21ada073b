package shape

import (
	"image"
	"strconv"
)

// StepLabel is a numbered disc. Its number comes from the surface so that
// labels count up in the order they were placed.
type StepLabel struct {
	Base
	number int
}

func NewStepLabel(d Defaults) *StepLabel {
	s := &StepLabel{}
	s.init(s, ModeStepLabel, Fields{
		FieldFillColor: d.LineColor,
		FieldFontSize:  d.FontSize,
		FieldShadow:    d.Shadow,
	})
	return s
}

func (s *StepLabel) diameter() int {
	return max(s.fields.Int(FieldFontSize)*2, 16)
}

func (s *StepLabel) centreOn(p image.Point) {
	d := s.diameter()
	tl := p.Sub(image.Pt(d/2, d/2))
	s.bounds = image.Rectangle{Min: tl, Max: tl.Add(image.Pt(d, d))}
}

func (s *StepLabel) MouseDown(p image.Point) bool {
	s.origin = p
	s.status = StatusDrawing
	s.centreOn(p)
	return true
}

func (s *StepLabel) MouseMove(p image.Point) bool {
	if s.status != StatusDrawing {
		return false
	}
	s.centreOn(p)
	return true
}

// Number returns the label's position in the sequence, asking the parent
// when one is attached.
func (s *StepLabel) Number() int {
	if s.parent != nil {
		s.number = s.parent.StepLabelNumber(s)
	}
	return s.number
}

// SetNumber sets the number shown while detached.
func (s *StepLabel) SetNumber(n int) { s.number = n }

func (s *StepLabel) HitTest(p image.Point) bool {
	b := s.bounds
	r := b.Dx() / 2
	if r <= 0 {
		return false
	}
	c := image.Pt((b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2)
	dx, dy := p.X-c.X, p.Y-c.Y
	r += hitTolerance
	return dx*dx+dy*dy <= r*r
}

func (s *StepLabel) DrawingBounds() image.Rectangle {
	pad := 2
	if s.shadow() {
		pad += shadowOffset
	}
	return s.bounds.Inset(-pad)
}

func (s *StepLabel) Draw(dst *image.RGBA, _ image.Image, _ RenderMode, clip image.Rectangle) {
	t := clipTo(dst, clip)
	b := s.bounds
	cx, cy := (b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2
	rx, ry := b.Dx()/2, b.Dy()/2
	if s.shadow() {
		fillEllipse(t, cx+shadowOffset, cy+shadowOffset, rx, ry, shadowColor)
	}
	fill := s.fillColor()
	fillEllipse(t, cx, cy, rx, ry, fill)
	label := strconv.Itoa(s.Number())
	size := s.fields.Int(FieldFontSize)
	w, h, err := MeasureText(label, size)
	if err != nil {
		return
	}
	at := image.Pt(cx-w/2, cy-h/2)
	drawText(t, image.Rectangle{Min: at, Max: at.Add(image.Pt(w+1, h+1))}, label, contrastText(fill), size)
}

func (s *StepLabel) Clone() Element {
	c := &StepLabel{number: s.number}
	c.Base = s.Base.clone(c)
	return c
}
